package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/lending-service/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueDateFor(t *testing.T) {
	t.Parallel()
	loanDate := date(2026, time.August, 1)
	require.Equal(t, date(2026, time.August, 15), model.DueDateFor(loanDate))
}

func TestLoan_Overdue(t *testing.T) {
	t.Parallel()
	asOf := date(2026, time.August, 29)

	tests := []struct {
		name        string
		loanDate    time.Time
		returned    bool
		wantOverdue bool
		wantDays    int
	}{
		{
			name:        "due today is not overdue",
			loanDate:    asOf.AddDate(0, 0, -model.LoanPeriodDays),
			wantOverdue: false,
			wantDays:    0,
		},
		{
			name:        "one day past due",
			loanDate:    asOf.AddDate(0, 0, -(model.LoanPeriodDays + 1)),
			wantOverdue: true,
			wantDays:    1,
		},
		{
			name:        "fresh loan",
			loanDate:    asOf,
			wantOverdue: false,
			wantDays:    0,
		},
		{
			name:        "returned loan is never overdue",
			loanDate:    asOf.AddDate(0, 0, -30),
			returned:    true,
			wantOverdue: false,
			wantDays:    0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loan := model.Loan{
				LoanDate: tt.loanDate,
				DueDate:  model.DueDateFor(tt.loanDate),
			}
			if tt.returned {
				rd := asOf
				loan.ReturnDate = &rd
			}
			require.Equal(t, !tt.returned, loan.Active())
			require.Equal(t, tt.wantOverdue, loan.Overdue(asOf))
			require.Equal(t, tt.wantDays, loan.DaysOverdue(asOf))
		})
	}
}

func TestLoan_Overdue_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()
	loanDate := date(2026, time.August, 1)
	loan := model.Loan{
		LoanDate: loanDate,
		DueDate:  model.DueDateFor(loanDate),
	}
	// still due on the due date, whatever the wall clock says
	asOf := time.Date(2026, time.August, 15, 23, 59, 59, 0, time.UTC)
	require.False(t, loan.Overdue(asOf))
	require.True(t, loan.Overdue(asOf.Add(time.Second)))
}
