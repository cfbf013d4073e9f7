package competitor

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Topic is one entry of the question taxonomy. A question belongs to the
// topic when a word of its lowercased text starts with any of the patterns,
// so "medida" matches "medidas" but "alto" does not match "faltó".
type Topic struct {
	Name     string
	Patterns []string
}

// DefaultTaxonomy classifies Spanish buyer questions.
var DefaultTaxonomy = []Topic{
	{Name: "medidas", Patterns: []string{"medida", "tamaño", "dimensi", "largo", "ancho", "alto", "altura", "mide"}},
	{Name: "material", Patterns: []string{"material", "hecho de", "madera", "metal", "plástico", "plastico", "acero", "tela"}},
	{Name: "compatibilidad", Patterns: []string{"compatib", "sirve para", "sirve con", "funciona con", "anda con", "le va a"}},
	{Name: "stock", Patterns: []string{"stock", "disponible", "disponibilidad", "quedan"}},
	{Name: "envío", Patterns: []string{"envío", "envio", "llega", "demora", "entrega", "retiro"}},
	{Name: "garantía", Patterns: []string{"garantía", "garantia"}},
	{Name: "originalidad", Patterns: []string{"original", "réplica", "replica", "genuino", "trucho"}},
	{Name: "color", Patterns: []string{"color", "colores"}},
	{Name: "precio", Patterns: []string{"precio", "descuento", "oferta", "barato"}},
}

// DefaultAdvice holds the recommendation for topics worth acting on.
var DefaultAdvice = map[string]string{
	"medidas":        "Add the exact dimensions to the title or description",
	"material":       "Describe the materials the product is made of",
	"compatibilidad": "List the compatible models in the description",
	"envío":          "Clarify shipping times and options in the description",
	"garantía":       "State the warranty terms clearly in the listing",
}

// recommendationThreshold is the topic share, in percent, that must be
// exceeded before a recommendation is made.
const (
	recommendationThreshold = 20
	recommendationTopics    = 3
	maxTopicExamples        = 3
)

type TopicSummary struct {
	Topic      string   `json:"topic"`
	Count      int      `json:"count"`
	Percentage int      `json:"percentage"`
	Examples   []string `json:"examples"`
}

type QuestionAnalysis struct {
	TotalQuestions  int            `json:"totalQuestions"`
	CommonTopics    []TopicSummary `json:"commonTopics"`
	Recommendations []string       `json:"recommendations"`
}

type QuestionAnalyzer struct {
	taxonomy []Topic
	advice   map[string]string
}

func NewQuestionAnalyzer(taxonomy []Topic, advice map[string]string) *QuestionAnalyzer {
	return &QuestionAnalyzer{taxonomy: taxonomy, advice: advice}
}

// Analyze counts questions per topic. A question can count toward several
// topics. Topics are returned by count, descending, ties in taxonomy order.
func (a *QuestionAnalyzer) Analyze(questions []BuyerQuestion) QuestionAnalysis {
	result := QuestionAnalysis{
		TotalQuestions:  len(questions),
		CommonTopics:    []TopicSummary{},
		Recommendations: []string{},
	}
	if len(questions) == 0 {
		return result
	}

	summaries := make([]TopicSummary, len(a.taxonomy))
	for i, topic := range a.taxonomy {
		summaries[i] = TopicSummary{Topic: topic.Name, Examples: []string{}}
	}
	for _, q := range questions {
		text := strings.ToLower(q.Text)
		for i, topic := range a.taxonomy {
			if !containsAny(text, topic.Patterns) {
				continue
			}
			summaries[i].Count++
			if len(summaries[i].Examples) < maxTopicExamples {
				summaries[i].Examples = append(summaries[i].Examples, q.Text)
			}
		}
	}

	for _, s := range summaries {
		if s.Count == 0 {
			continue
		}
		s.Percentage = percentage(s.Count, len(questions))
		result.CommonTopics = append(result.CommonTopics, s)
	}
	sort.SliceStable(result.CommonTopics, func(i, j int) bool {
		return result.CommonTopics[i].Count > result.CommonTopics[j].Count
	})

	for i, s := range result.CommonTopics {
		if i == recommendationTopics {
			break
		}
		if s.Percentage <= recommendationThreshold {
			continue
		}
		if advice, ok := a.advice[s.Topic]; ok {
			result.Recommendations = append(result.Recommendations, advice)
		}
	}
	return result
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if hasWordPrefix(text, p) {
			return true
		}
	}
	return false
}

// hasWordPrefix reports whether p occurs in text at the start of a word.
func hasWordPrefix(text, p string) bool {
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], p)
		if i < 0 {
			return false
		}
		at := offset + i
		prev, _ := utf8.DecodeLastRuneInString(text[:at])
		if at == 0 || !(unicode.IsLetter(prev) || unicode.IsDigit(prev)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[at:])
		offset = at + size
	}
	return false
}
