package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/errs"
	"github.com/Astemirdum/lending-service/internal/model"
	repo_mocks "github.com/Astemirdum/lending-service/internal/repository/mocks"
	"github.com/Astemirdum/lending-service/internal/service"
	service_mocks "github.com/Astemirdum/lending-service/internal/service/mocks"
)

func newService(t *testing.T) (*service.Service, *repo_mocks.MockRepository, *service_mocks.MockEventPublisher) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	repo := repo_mocks.NewMockRepository(c)
	publisher := service_mocks.NewMockEventPublisher(c)
	return service.NewService(repo, publisher, zap.NewExample().Named("test")), repo, publisher
}

func TestService_Lend(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	want := model.Loan{ID: 1, LoanUID: "9d45e3c5-9f06-4f0b-b9e0-1b5c3f4f2a11", ItemID: 3, BorrowerID: 7}
	repo.EXPECT().
		Lend(ctx, int64(3), int64(7), model.LoanPeriodDays).
		Return(want, nil)

	loan, err := svc.Lend(ctx, 3, 7)
	require.NoError(t, err)
	require.Equal(t, want, loan)
}

func TestService_Lend_NotAvailable(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	repo.EXPECT().
		Lend(ctx, int64(3), int64(7), model.LoanPeriodDays).
		Return(model.Loan{}, errs.ErrItemNotAvailable)

	_, err := svc.Lend(ctx, 3, 7)
	require.ErrorIs(t, err, errs.ErrItemNotAvailable)
}

func TestService_Return_NoActiveLoan(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	repo.EXPECT().
		Return(ctx, int64(3), int64(7)).
		Return(errs.ErrNoActiveLoan)

	err := svc.Return(ctx, 3, 7)
	require.ErrorIs(t, err, errs.ErrNoActiveLoan)
}

func TestService_OverdueLoans_DefaultGrace(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	repo.EXPECT().
		OverdueLoans(ctx, model.LoanPeriodDays).
		Return([]model.LoanView{}, nil)

	_, err := svc.OverdueLoans(ctx, 0)
	require.NoError(t, err)
}

func TestService_OverdueLoans_CustomGrace(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	repo.EXPECT().
		OverdueLoans(ctx, 7).
		Return([]model.LoanView{}, nil)

	_, err := svc.OverdueLoans(ctx, 7)
	require.NoError(t, err)
}

func TestService_Snapshot(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	stats := model.Stats{TotalItems: 10, AvailableItems: 8, TotalBorrowers: 4, ActiveLoans: 2, OverdueLoans: 1}
	items := []model.RankingEntry{{Name: "Dune", LoanCount: 5}, {Name: "Ubik", LoanCount: 3}}
	borrowers := []model.RankingEntry{{Name: "Alice", LoanCount: 6}}

	repo.EXPECT().Stats(gomock.Any(), model.LoanPeriodDays).Return(stats, nil)
	repo.EXPECT().MostBorrowedItems(gomock.Any(), 2).Return(items, nil)
	repo.EXPECT().MostActiveBorrowers(gomock.Any(), 2).Return(borrowers, nil)

	snap, err := svc.Snapshot(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, stats, snap.Stats)
	require.Equal(t, items, snap.MostBorrowedItems)
	require.Equal(t, borrowers, snap.MostActiveBorrowers)
}

func TestService_Snapshot_RepoError(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	dbErr := errors.New("db down")
	repo.EXPECT().Stats(gomock.Any(), model.LoanPeriodDays).Return(model.Stats{}, dbErr)
	repo.EXPECT().MostBorrowedItems(gomock.Any(), 5).Return(nil, nil).AnyTimes()
	repo.EXPECT().MostActiveBorrowers(gomock.Any(), 5).Return(nil, nil).AnyTimes()

	_, err := svc.Snapshot(ctx, 0)
	require.ErrorIs(t, err, dbErr)
}

func TestService_SweepOverdue(t *testing.T) {
	t.Parallel()
	svc, repo, publisher := newService(t)
	ctx := context.Background()

	loanDate := time.Now().UTC().AddDate(0, 0, -20)
	overdue := []model.LoanView{
		{
			Loan: model.Loan{
				ID: 1, LoanUID: "4a3f2c8e-0a50-4c0c-a4ff-12f87c2ee601",
				LoanDate: loanDate, DueDate: model.DueDateFor(loanDate),
			},
			ItemTitle:     "Dune",
			ItemAuthor:    "Frank Herbert",
			BorrowerName:  "Alice",
			BorrowerEmail: "alice@example.com",
		},
	}
	repo.EXPECT().OverdueLoans(ctx, model.LoanPeriodDays).Return(overdue, nil)
	publisher.EXPECT().
		Publish(ctx, overdue[0].LoanUID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, payload []byte) error {
			var notice model.OverdueNotice
			require.NoError(t, json.Unmarshal(payload, &notice))
			require.Equal(t, "alice@example.com", notice.BorrowerEmail)
			require.Equal(t, "Dune", notice.ItemTitle)
			require.Equal(t, 6, notice.DaysOverdue)
			return nil
		})

	sent, err := svc.SweepOverdue(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, sent)
}

func TestService_SweepOverdue_PublishError(t *testing.T) {
	t.Parallel()
	svc, repo, publisher := newService(t)
	ctx := context.Background()

	loanDate := time.Now().UTC().AddDate(0, 0, -20)
	overdue := []model.LoanView{
		{Loan: model.Loan{ID: 1, LoanUID: "uid-1", LoanDate: loanDate, DueDate: model.DueDateFor(loanDate)}},
		{Loan: model.Loan{ID: 2, LoanUID: "uid-2", LoanDate: loanDate, DueDate: model.DueDateFor(loanDate)}},
	}
	repo.EXPECT().OverdueLoans(ctx, model.LoanPeriodDays).Return(overdue, nil)
	publisher.EXPECT().Publish(ctx, "uid-1", gomock.Any()).Return(nil)
	publisher.EXPECT().Publish(ctx, "uid-2", gomock.Any()).Return(errors.New("broker down"))

	sent, err := svc.SweepOverdue(ctx)
	require.Error(t, err)
	require.Equal(t, 1, sent)
}
