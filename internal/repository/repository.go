package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/model"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=repo_mocks

// Repository is the record store behind the lending service. Lend and Return
// are the only mutating entry points for loans and item availability; both
// run as a single transaction.
type Repository interface {
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

	Lend(ctx context.Context, itemID, borrowerID int64, periodDays int) (model.Loan, error)
	Return(ctx context.Context, itemID, borrowerID int64) error

	ActiveLoans(ctx context.Context) ([]model.LoanView, error)
	OverdueLoans(ctx context.Context, graceDays int) ([]model.LoanView, error)
	History(ctx context.Context, borrowerID int64) ([]model.LoanView, error)

	Stats(ctx context.Context, graceDays int) (model.Stats, error)
	MostBorrowedItems(ctx context.Context, limit int) ([]model.RankingEntry, error)
	MostActiveBorrowers(ctx context.Context, limit int) ([]model.RankingEntry, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	itemsTableName     = `items`
	borrowersTableName = `borrowers`
	loansTableName     = `loans`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
