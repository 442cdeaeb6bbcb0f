package model

import (
	"time"
)

// LoanPeriodDays is the system-wide loan period. Due dates and the default
// overdue grace period are both derived from it.
const LoanPeriodDays = 14

type Item struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Author    string `json:"author" db:"author"`
	Code      string `json:"code" db:"code"`
	Available bool   `json:"available" db:"available"`
}

type Borrower struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Phone   string `json:"phone" db:"phone"`
	Address string `json:"address" db:"address"`
}

type Loan struct {
	ID         int64      `json:"id" db:"id"`
	LoanUID    string     `json:"loanUid" db:"loan_uid"`
	ItemID     int64      `json:"itemId" db:"item_id"`
	BorrowerID int64      `json:"borrowerId" db:"borrower_id"`
	LoanDate   time.Time  `json:"loanDate" db:"loan_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate" db:"return_date"`
}

// Active reports whether the loan has not been returned yet.
func (l Loan) Active() bool {
	return l.ReturnDate == nil
}

// Overdue reports whether an active loan is past its due date as of the
// given day. The due date itself is not overdue.
func (l Loan) Overdue(asOf time.Time) bool {
	return l.Active() && toDate(asOf).After(toDate(l.DueDate))
}

// DaysOverdue returns how many days past due the loan is, zero if it is not
// overdue.
func (l Loan) DaysOverdue(asOf time.Time) int {
	if !l.Overdue(asOf) {
		return 0
	}
	return int(toDate(asOf).Sub(toDate(l.DueDate)).Hours() / 24)
}

// DueDateFor derives the due date from a loan date.
func DueDateFor(loanDate time.Time) time.Time {
	return toDate(loanDate).AddDate(0, 0, LoanPeriodDays)
}

func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LoanView is a loan enriched with item and borrower attributes for the
// read-side queries.
type LoanView struct {
	Loan          `json:",inline"`
	ItemTitle     string `json:"itemTitle" db:"title"`
	ItemAuthor    string `json:"itemAuthor" db:"author"`
	BorrowerName  string `json:"borrowerName" db:"borrower_name"`
	BorrowerEmail string `json:"borrowerEmail" db:"borrower_email"`
}

type Stats struct {
	TotalItems     int `json:"totalItems" db:"total_items"`
	AvailableItems int `json:"availableItems" db:"available_items"`
	TotalBorrowers int `json:"totalBorrowers" db:"total_borrowers"`
	ActiveLoans    int `json:"activeLoans" db:"active_loans"`
	OverdueLoans   int `json:"overdueLoans" db:"overdue_loans"`
}

type RankingEntry struct {
	Name      string `json:"name" db:"name"`
	LoanCount int    `json:"loanCount" db:"loan_count"`
}

type Snapshot struct {
	Stats               Stats          `json:"stats"`
	MostBorrowedItems   []RankingEntry `json:"mostBorrowedItems"`
	MostActiveBorrowers []RankingEntry `json:"mostActiveBorrowers"`
}

// OverdueNotice is published for every overdue loan during a notification
// sweep. Message formatting and delivery belong to the consumer.
type OverdueNotice struct {
	LoanUID       string    `json:"loanUid"`
	ItemTitle     string    `json:"itemTitle"`
	ItemAuthor    string    `json:"itemAuthor"`
	BorrowerName  string    `json:"borrowerName"`
	BorrowerEmail string    `json:"borrowerEmail"`
	LoanDate      time.Time `json:"loanDate"`
	DueDate       time.Time `json:"dueDate"`
	DaysOverdue   int       `json:"daysOverdue"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type ListItems struct {
	Paging `json:",inline"`
	Items  []Item `json:"items"`
}

type ListBorrowers struct {
	Paging `json:",inline"`
	Items  []Borrower `json:"items"`
}

type CreateItemRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

type UpdateItemRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

type CreateBorrowerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateBorrowerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type LendRequest struct {
	ItemID     int64 `json:"itemId" validate:"required"`
	BorrowerID int64 `json:"borrowerId" validate:"required"`
}

type ReturnRequest struct {
	ItemID     int64 `json:"itemId" validate:"required"`
	BorrowerID int64 `json:"borrowerId" validate:"required"`
}
