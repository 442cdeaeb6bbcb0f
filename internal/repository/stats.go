package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Astemirdum/lending-service/internal/model"
)

func (r *repository) Stats(ctx context.Context, graceDays int) (model.Stats, error) {
	const q = `
	select
	    (select count(*) from items) as total_items,
	    (select count(*) from items where available) as available_items,
	    (select count(*) from borrowers) as total_borrowers,
	    (select count(*) from loans where return_date is null) as active_loans,
	    (select count(*) from loans
	        where return_date is null and loan_date + $1::int < current_date) as overdue_loans
`
	rows, err := r.db.Query(ctx, q, graceDays)
	if err != nil {
		return model.Stats{}, err
	}
	stats, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Stats])
	if err != nil {
		return model.Stats{}, fmt.Errorf("pgx.CollectOneRow: %w", err)
	}
	return stats, nil
}

func (r *repository) MostBorrowedItems(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	const q = `
	select i.title as name, count(l.id) as loan_count
	from items i
	left join loans l on l.item_id = i.id
	group by i.id, i.title
	order by loan_count desc, name asc
	limit $1
`
	return r.selectRanking(ctx, q, limit)
}

func (r *repository) MostActiveBorrowers(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	const q = `
	select b.name as name, count(l.id) as loan_count
	from borrowers b
	left join loans l on l.borrower_id = b.id
	group by b.id, b.name
	order by loan_count desc, name asc
	limit $1
`
	return r.selectRanking(ctx, q, limit)
}

func (r *repository) selectRanking(ctx context.Context, query string, limit int) ([]model.RankingEntry, error) {
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	ranking, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.RankingEntry])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return ranking, nil
}
