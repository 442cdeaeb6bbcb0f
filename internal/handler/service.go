package handler

import (
	"context"

	"github.com/Astemirdum/lending-service/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=service_mocks

type LendingService interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	ListItems(ctx context.Context, keyword string, page, size int) (model.ListItems, error)
	UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) (model.Item, error)
	DeleteItem(ctx context.Context, id int64) error

	CreateBorrower(ctx context.Context, req model.CreateBorrowerRequest) (model.Borrower, error)
	GetBorrower(ctx context.Context, id int64) (model.Borrower, error)
	ListBorrowers(ctx context.Context, keyword string, page, size int) (model.ListBorrowers, error)
	UpdateBorrower(ctx context.Context, id int64, req model.UpdateBorrowerRequest) (model.Borrower, error)
	DeleteBorrower(ctx context.Context, id int64) error

	Lend(ctx context.Context, itemID, borrowerID int64) (model.Loan, error)
	Return(ctx context.Context, itemID, borrowerID int64) error
	ActiveLoans(ctx context.Context) ([]model.LoanView, error)
	OverdueLoans(ctx context.Context, graceDays int) ([]model.LoanView, error)
	History(ctx context.Context, borrowerID int64) ([]model.LoanView, error)

	Snapshot(ctx context.Context, limit int) (model.Snapshot, error)
	SweepOverdue(ctx context.Context) (int, error)
}
