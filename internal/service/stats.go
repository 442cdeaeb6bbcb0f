package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/lending-service/internal/model"
)

const defaultRankingLimit = 5

func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	return s.repo.Stats(ctx, model.LoanPeriodDays)
}

func (s *Service) MostBorrowedItems(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	return s.repo.MostBorrowedItems(ctx, limit)
}

func (s *Service) MostActiveBorrowers(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	return s.repo.MostActiveBorrowers(ctx, limit)
}

// Snapshot gathers the counters and both rankings in one call, for report
// building on the caller's side.
func (s *Service) Snapshot(ctx context.Context, limit int) (model.Snapshot, error) {
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	var snap model.Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.repo.Stats(ctx, model.LoanPeriodDays)
		if err != nil {
			return err
		}
		snap.Stats = stats
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.MostBorrowedItems(ctx, limit)
		if err != nil {
			return err
		}
		snap.MostBorrowedItems = items
		return nil
	})
	g.Go(func() error {
		borrowers, err := s.repo.MostActiveBorrowers(ctx, limit)
		if err != nil {
			return err
		}
		snap.MostActiveBorrowers = borrowers
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}
