package product

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/meli-optimizer/internal/connection"
	"github.com/wichananm65/meli-optimizer/internal/meli"
)

// maxSyncItems bounds one sync run.
const maxSyncItems = 500

// MeliClient is the part of the MELI API the sync needs.
type MeliClient interface {
	ListSellerItems(ctx context.Context, token string, sellerID int64, limit int) ([]string, error)
	GetItem(ctx context.Context, token, id string) (meli.Item, error)
	GetDescription(ctx context.Context, token, itemID string) (string, error)
}

type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

type Service struct {
	repo        Repository
	meli        MeliClient
	concurrency int
	now         func() time.Time
}

func NewService(repo Repository, client MeliClient, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Service{repo: repo, meli: client, concurrency: concurrency, now: time.Now}
}

func (s *Service) List(userID int) ([]Listing, error) {
	return s.repo.List(userID)
}

func (s *Service) Get(userID int, id string) (Listing, error) {
	return s.repo.Get(userID, id)
}

func (s *Service) Delete(userID int, id string) error {
	return s.repo.Delete(userID, id)
}

// Sync pulls every item of the connected seller account into the store.
// Items that fail to fetch or save are counted and skipped; only failing to
// list the seller's items aborts the run.
func (s *Service) Sync(ctx context.Context, userID int, conn connection.Connection) (SyncResult, error) {
	ids, err := s.meli.ListSellerItems(ctx, conn.AccessToken, conn.MeliUserID, maxSyncItems)
	if err != nil {
		return SyncResult{}, err
	}

	var synced, failed atomic.Int64
	syncedAt := s.now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			item, err := s.meli.GetItem(gctx, conn.AccessToken, id)
			if err != nil {
				zap.L().Warn("failed to fetch listing for sync", zap.String("item_id", id), zap.Error(err))
				failed.Add(1)
				return nil
			}
			desc, err := s.meli.GetDescription(gctx, conn.AccessToken, id)
			if err != nil {
				zap.L().Debug("listing has no description", zap.String("item_id", id), zap.Error(err))
				desc = ""
			}
			if err := s.repo.Upsert(FromItem(userID, item, desc, syncedAt)); err != nil {
				zap.L().Warn("failed to store listing", zap.String("item_id", id), zap.Error(err))
				failed.Add(1)
				return nil
			}
			synced.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return SyncResult{Synced: int(synced.Load()), Failed: int(failed.Load())}, nil
}
