package repository

import (
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/lending-service/internal/errs"
)

func TestMapPgError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			want: errs.ErrConflict,
		},
		{
			name: "fk violation",
			err:  &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			want: errs.ErrConflict,
		},
		{
			name: "wrapped unique violation",
			err:  errors.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "insert"),
			want: errs.ErrConflict,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, mapPgError(tt.err), tt.want)
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		t.Parallel()
		dbErr := errors.New("connection refused")
		require.Equal(t, dbErr, mapPgError(dbErr))
	})
}

func TestLendInsertQuery(t *testing.T) {
	t.Parallel()

	q := lendInsertQuery()
	require.Contains(t, q, "insert into loans")
	// the named parameter must carry an explicit int cast; `date + unknown`
	// does not resolve server-side
	require.Contains(t, q, "current_date + @period_days::int")
	require.NotContains(t, q, "@period_days\n")
	require.Contains(t, q, "returning "+loanColumns)
	for _, param := range []string{"@loan_uid", "@item_id", "@borrower_id"} {
		require.Contains(t, q, param)
	}
}

func TestCloseLoanQuery(t *testing.T) {
	t.Parallel()

	require.Contains(t, closeLoanQuery, "set return_date = current_date")
	require.Contains(t, closeLoanQuery, "item_id = $1 and borrower_id = $2")
	require.Contains(t, closeLoanQuery, "return_date is null")
}

func TestOverdueQuery(t *testing.T) {
	t.Parallel()

	query, args, err := loanViewQuery().
		Where("l.return_date is null").
		Where("l.loan_date + ?::int < current_date", 14).
		OrderBy("l.id asc").
		ToSql()
	require.NoError(t, err)
	require.Contains(t, query, "l.loan_date + $1::int < current_date")
	require.Contains(t, query, "l.return_date is null")
	require.Equal(t, []interface{}{14}, args)
}
