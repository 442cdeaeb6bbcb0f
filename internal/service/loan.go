package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/model"
)

// Lend moves an item on loan. The loan period is the single system-wide
// constant, so the due date written here is the one overdue checks use.
func (s *Service) Lend(ctx context.Context, itemID, borrowerID int64) (model.Loan, error) {
	loan, err := s.repo.Lend(ctx, itemID, borrowerID, model.LoanPeriodDays)
	if err != nil {
		return model.Loan{}, err
	}
	s.log.Info("lend",
		zap.Int64("itemID", itemID),
		zap.Int64("borrowerID", borrowerID),
		zap.String("loanUid", loan.LoanUID))
	return loan, nil
}

func (s *Service) Return(ctx context.Context, itemID, borrowerID int64) error {
	if err := s.repo.Return(ctx, itemID, borrowerID); err != nil {
		return err
	}
	s.log.Info("return",
		zap.Int64("itemID", itemID),
		zap.Int64("borrowerID", borrowerID))
	return nil
}

func (s *Service) ActiveLoans(ctx context.Context) ([]model.LoanView, error) {
	return s.repo.ActiveLoans(ctx)
}

// OverdueLoans lists active loans past the grace period. A non-positive
// graceDays falls back to the loan period.
func (s *Service) OverdueLoans(ctx context.Context, graceDays int) ([]model.LoanView, error) {
	if graceDays <= 0 {
		graceDays = model.LoanPeriodDays
	}
	return s.repo.OverdueLoans(ctx, graceDays)
}

func (s *Service) History(ctx context.Context, borrowerID int64) ([]model.LoanView, error) {
	return s.repo.History(ctx, borrowerID)
}
