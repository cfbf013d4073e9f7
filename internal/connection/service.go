package connection

import "time"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Active returns the user's connection when it exists and its token has not
// expired; otherwise ErrNotFound.
func (s *Service) Active(userID int) (Connection, error) {
	c, err := s.repo.Get(userID)
	if err != nil {
		return Connection{}, err
	}
	if c.Expired(s.now()) {
		return Connection{}, ErrNotFound
	}
	return c, nil
}

func (s *Service) Get(userID int) (Connection, error) {
	return s.repo.Get(userID)
}

func (s *Service) Save(conn Connection) (Connection, error) {
	conn.UpdatedAt = s.now().UTC()
	return s.repo.Save(conn)
}

func (s *Service) Disconnect(userID int) error {
	return s.repo.Delete(userID)
}
