package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/errs"
	"github.com/Astemirdum/lending-service/internal/model"
)

const loanColumns = "id, loan_uid, item_id, borrower_id, loan_date, due_date, return_date"

// @period_days needs the ::int cast: without it the parameter arrives untyped
// and postgres cannot resolve `date + unknown`.
func lendInsertQuery() string {
	return fmt.Sprintf(`insert into %s (loan_uid, item_id, borrower_id, loan_date, due_date)
	values (@loan_uid, @item_id, @borrower_id, current_date, current_date + @period_days::int)
	returning %s`, loansTableName, loanColumns)
}

const closeLoanQuery = `
	update loans set return_date = current_date
	where item_id = $1 and borrower_id = $2 and return_date is null`

// Lend creates a loan and flips the item to unavailable as one unit of work.
// The item row is locked first, so two concurrent lends of the same item
// serialize and the loser sees available = false.
func (r *repository) Lend(ctx context.Context, itemID, borrowerID int64, periodDays int) (model.Loan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Loan{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var borrowerExists bool
	if err = tx.QueryRow(ctx,
		`select exists (select 1 from borrowers where id = $1)`, borrowerID).
		Scan(&borrowerExists); err != nil {
		return model.Loan{}, errors.Wrap(err, "check borrower")
	}
	if !borrowerExists {
		return model.Loan{}, errs.ErrNotFound
	}

	var available bool
	err = tx.QueryRow(ctx,
		`select available from items where id = $1 for update`, itemID).
		Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, errors.Wrap(err, "lock item")
	}
	if !available {
		return model.Loan{}, errs.ErrItemNotAvailable
	}

	q := lendInsertQuery()
	args := pgx.NamedArgs{
		"loan_uid":    uuid.New().String(),
		"item_id":     itemID,
		"borrower_id": borrowerID,
		"period_days": periodDays,
	}
	rows, err := tx.Query(ctx, q, args)
	if err != nil {
		return model.Loan{}, errors.Wrap(err, "insert loan")
	}
	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		r.log.Error("Lend", zap.String("q", q), zap.Any("args", args))
		return model.Loan{}, errors.Wrap(err, "insert loan")
	}

	if _, err = tx.Exec(ctx,
		`update items set available = false where id = $1`, itemID); err != nil {
		return model.Loan{}, errors.Wrap(err, "mark item unavailable")
	}

	if err = tx.Commit(ctx); err != nil {
		return model.Loan{}, errors.Wrap(err, "commit")
	}
	return loan, nil
}

// Return closes the active loan for (item, borrower) and makes the item
// available again, atomically. The double predicate keeps the update from
// ever touching another borrower's loan.
func (r *repository) Return(ctx context.Context, itemID, borrowerID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tag, err := tx.Exec(ctx, closeLoanQuery, itemID, borrowerID)
	if err != nil {
		return errors.Wrap(err, "close loan")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNoActiveLoan
	}

	if _, err = tx.Exec(ctx,
		`update items set available = true where id = $1`, itemID); err != nil {
		return errors.Wrap(err, "mark item available")
	}

	return errors.Wrap(tx.Commit(ctx), "commit")
}

func loanViewQuery() sq.SelectBuilder {
	return qb.Select(
		"l.id", "l.loan_uid", "l.item_id", "l.borrower_id",
		"l.loan_date", "l.due_date", "l.return_date",
		"i.title", "i.author",
		"b.name as borrower_name", "b.email as borrower_email").
		From(loansTableName + " l").
		Join(fmt.Sprintf("%s i on i.id = l.item_id", itemsTableName)).
		Join(fmt.Sprintf("%s b on b.id = l.borrower_id", borrowersTableName))
}

func (r *repository) ActiveLoans(ctx context.Context) ([]model.LoanView, error) {
	query, args, err := loanViewQuery().
		Where("l.return_date is null").
		OrderBy("l.id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectLoanViews(ctx, query, args)
}

func (r *repository) OverdueLoans(ctx context.Context, graceDays int) ([]model.LoanView, error) {
	query, args, err := loanViewQuery().
		Where("l.return_date is null").
		Where("l.loan_date + ?::int < current_date", graceDays).
		OrderBy("l.id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectLoanViews(ctx, query, args)
}

func (r *repository) History(ctx context.Context, borrowerID int64) ([]model.LoanView, error) {
	query, args, err := loanViewQuery().
		Where(sq.Eq{"l.borrower_id": borrowerID}).
		OrderBy("l.loan_date desc", "l.id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectLoanViews(ctx, query, args)
}

func (r *repository) selectLoanViews(ctx context.Context, query string, args []interface{}) ([]model.LoanView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	views, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.LoanView])
	if err != nil {
		r.log.Error("selectLoanViews", zap.String("q", query), zap.Any("args", args))
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return views, nil
}
