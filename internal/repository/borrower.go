package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/errs"
	"github.com/Astemirdum/lending-service/internal/model"
)

const borrowerColumns = "id, name, email, phone, address"

func (r *repository) CreateBorrower(ctx context.Context, req model.CreateBorrowerRequest) (model.Borrower, error) {
	query, args, err := qb.Insert(borrowersTableName).
		Columns("name", "email", "phone", "address").
		Values(req.Name, req.Email, req.Phone, req.Address).
		Suffix("returning " + borrowerColumns).
		ToSql()
	if err != nil {
		return model.Borrower{}, err
	}

	b, err := collectOneBorrower(r.db.Query(ctx, query, args...))
	if err != nil {
		r.log.Error("CreateBorrower", zap.String("q", query), zap.Any("args", args))
		return model.Borrower{}, mapPgError(err)
	}
	return b, nil
}

func (r *repository) GetBorrower(ctx context.Context, id int64) (model.Borrower, error) {
	query, args, err := qb.Select(borrowerColumns).
		From(borrowersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Borrower{}, err
	}

	b, err := collectOneBorrower(r.db.Query(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Borrower{}, errs.ErrNotFound
		}
		return model.Borrower{}, err
	}
	return b, nil
}

func (r *repository) ListBorrowers(ctx context.Context, keyword string, page, size int) (model.ListBorrowers, error) {
	q := qb.Select(borrowerColumns).
		From(borrowersTableName).
		OrderBy("id asc")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		})
	}
	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBorrowers{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.ListBorrowers{}, err
	}
	borrowers, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Borrower])
	if err != nil {
		return model.ListBorrowers{}, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	return model.ListBorrowers{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: len(borrowers),
		},
		Items: borrowers,
	}, nil
}

func (r *repository) UpdateBorrower(ctx context.Context, id int64, req model.UpdateBorrowerRequest) (model.Borrower, error) {
	query, args, err := qb.Update(borrowersTableName).
		Set("name", req.Name).
		Set("email", req.Email).
		Set("phone", req.Phone).
		Set("address", req.Address).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + borrowerColumns).
		ToSql()
	if err != nil {
		return model.Borrower{}, err
	}

	b, err := collectOneBorrower(r.db.Query(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Borrower{}, errs.ErrNotFound
		}
		return model.Borrower{}, mapPgError(err)
	}
	return b, nil
}

func (r *repository) DeleteBorrower(ctx context.Context, id int64) error {
	query, args, err := qb.Delete(borrowersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func collectOneBorrower(rows pgx.Rows, err error) (model.Borrower, error) {
	if err != nil {
		return model.Borrower{}, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Borrower])
}
