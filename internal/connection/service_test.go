package connection

import (
	"testing"
	"time"
)

func TestActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewInMemoryRepository([]Connection{
		{UserID: 1, AccessToken: "live", ExpiresAt: now.Add(time.Hour)},
		{UserID: 2, AccessToken: "old", ExpiresAt: now.Add(-time.Minute)},
		{UserID: 3, AccessToken: "forever"},
	})
	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	if c, err := svc.Active(1); err != nil || c.AccessToken != "live" {
		t.Fatalf("expected live connection, got %+v %v", c, err)
	}
	if _, err := svc.Active(2); err != ErrNotFound {
		t.Fatalf("expired connection should be ErrNotFound, got %v", err)
	}
	if _, err := svc.Active(3); err != nil {
		t.Fatalf("connection without expiry should be active, got %v", err)
	}
	if _, err := svc.Active(4); err != ErrNotFound {
		t.Fatalf("missing connection should be ErrNotFound, got %v", err)
	}
}
