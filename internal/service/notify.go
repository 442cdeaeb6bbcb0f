package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/model"
)

// SweepOverdue publishes one OverdueNotice per overdue loan and returns how
// many were sent. Triggered on demand; there is no background scheduler.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	overdue, err := s.repo.OverdueLoans(ctx, model.LoanPeriodDays)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	sent := 0
	for _, lv := range overdue {
		notice := model.OverdueNotice{
			LoanUID:       lv.LoanUID,
			ItemTitle:     lv.ItemTitle,
			ItemAuthor:    lv.ItemAuthor,
			BorrowerName:  lv.BorrowerName,
			BorrowerEmail: lv.BorrowerEmail,
			LoanDate:      lv.LoanDate,
			DueDate:       lv.DueDate,
			DaysOverdue:   lv.DaysOverdue(now),
		}
		payload, err := json.Marshal(notice)
		if err != nil {
			return sent, errors.Wrap(err, "marshal notice")
		}
		if err := s.publisher.Publish(ctx, lv.LoanUID, payload); err != nil {
			return sent, errors.Wrap(err, "publish notice")
		}
		sent++
	}
	s.log.Info("overdue sweep", zap.Int("sent", sent))
	return sent, nil
}
