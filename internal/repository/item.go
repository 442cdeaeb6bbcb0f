package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/errs"
	"github.com/Astemirdum/lending-service/internal/model"
)

const itemColumns = "id, title, author, code, available"

func (r *repository) CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error) {
	query, args, err := qb.Insert(itemsTableName).
		Columns("title", "author", "code").
		Values(req.Title, req.Author, req.Code).
		Suffix("returning " + itemColumns).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}

	item, err := collectOneItem(r.db.Query(ctx, query, args...))
	if err != nil {
		r.log.Error("CreateItem", zap.String("q", query), zap.Any("args", args))
		return model.Item{}, mapPgError(err)
	}
	return item, nil
}

func (r *repository) GetItem(ctx context.Context, id int64) (model.Item, error) {
	query, args, err := qb.Select(itemColumns).
		From(itemsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}

	item, err := collectOneItem(r.db.Query(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, errs.ErrNotFound
		}
		return model.Item{}, err
	}
	return item, nil
}

func (r *repository) ListItems(ctx context.Context, keyword string, page, size int) (model.ListItems, error) {
	q := qb.Select(itemColumns).
		From(itemsTableName).
		OrderBy("id asc")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"author": pattern},
			sq.ILike{"code": pattern},
		})
	}
	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListItems{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.ListItems{}, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return model.ListItems{}, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	return model.ListItems{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: len(items),
		},
		Items: items,
	}, nil
}

func (r *repository) UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) (model.Item, error) {
	query, args, err := qb.Update(itemsTableName).
		Set("title", req.Title).
		Set("author", req.Author).
		Set("code", req.Code).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + itemColumns).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}

	item, err := collectOneItem(r.db.Query(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, errs.ErrNotFound
		}
		return model.Item{}, mapPgError(err)
	}
	return item, nil
}

func (r *repository) DeleteItem(ctx context.Context, id int64) error {
	query, args, err := qb.Delete(itemsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		// loans reference items with on delete restrict, so an item with loan
		// history cannot be removed
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func collectOneItem(rows pgx.Rows, err error) (model.Item, error) {
	if err != nil {
		return model.Item{}, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errs.ErrConflict
		case pgerrcode.ForeignKeyViolation:
			return errs.ErrConflict
		}
	}
	return err
}
