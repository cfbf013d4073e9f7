package keyword

import (
	"reflect"
	"testing"
)

func TestScoreTitle(t *testing.T) {
	title := "Taladro Percutor Inalámbrico Bosch 18V con Batería"
	scores := ScoreTitle(title, []string{
		"taladro inalambrico",
		"taladro percutor makita",
		"bateria de litio",
		"amoladora",
		"a",
	})

	want := []Score{
		{Keyword: "taladro inalambrico", Relevance: 100, InTitle: true},
		{Keyword: "taladro percutor makita", Relevance: 67},
		{Keyword: "bateria de litio", Relevance: 50},
		{Keyword: "amoladora", Relevance: 0},
		{Keyword: "a", Relevance: 0},
	}
	if !reflect.DeepEqual(scores, want) {
		t.Fatalf("got %+v\nwant %+v", scores, want)
	}

	missing := Missing(scores)
	if len(missing) != 4 || missing[0] != "taladro percutor makita" {
		t.Fatalf("unexpected missing keywords %v", missing)
	}
}

func TestSignificantWords(t *testing.T) {
	got := significantWords("¡Cañería de PVC, 3/4 pulgadas!")
	want := []string{"caneria", "pvc", "pulgadas"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
