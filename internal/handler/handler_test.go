package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/errs"
	"github.com/Astemirdum/lending-service/internal/handler"
	service_mocks "github.com/Astemirdum/lending-service/internal/handler/mocks"
	"github.com/Astemirdum/lending-service/internal/model"
	"github.com/Astemirdum/lending-service/pkg/validate"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHandler_Lend(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	loan := model.Loan{
		ID:         1,
		LoanUID:    "9d45e3c5-9f06-4f0b-b9e0-1b5c3f4f2a11",
		ItemID:     3,
		BorrowerID: 7,
		LoanDate:   date(2026, time.August, 1),
		DueDate:    date(2026, time.August, 15),
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			body: `{"itemId":3,"borrowerId":7}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Lend(context.Background(), int64(3), int64(7)).
					Return(loan, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"loanUid":"9d45e3c5-9f06-4f0b-b9e0-1b5c3f4f2a11","itemId":3,"borrowerId":7,"loanDate":"2026-08-01T00:00:00Z","dueDate":"2026-08-15T00:00:00Z","returnDate":null}`,
			},
			wantErr: false,
		},
		{
			name: "err. item not available",
			body: `{"itemId":3,"borrowerId":7}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Lend(context.Background(), int64(3), int64(7)).
					Return(model.Loan{}, errs.ErrItemNotAvailable)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"item is not available"}`,
			},
			wantErr: true,
		},
		{
			name: "err. unknown item",
			body: `{"itemId":33,"borrowerId":7}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Lend(context.Background(), int64(33), int64(7)).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. borrowerId required",
			body:         `{"itemId":3}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"code=400, message=Key: 'LendRequest.BorrowerID' Error:Field validation for 'BorrowerID' failed on the 'required' tag"}`,
			},
			wantErr: true,
		},
		{
			name: "err. internal",
			body: `{"itemId":3,"borrowerId":7}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Lend(context.Background(), int64(3), int64(7)).
					Return(model.Loan{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/loans", h.Lend)

			r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"itemId":3,"borrowerId":7}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Return(context.Background(), int64(3), int64(7)).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: ``,
			},
		},
		{
			name: "err. no active loan",
			body: `{"itemId":3,"borrowerId":7}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Return(context.Background(), int64(3), int64(7)).
					Return(errs.ErrNoActiveLoan)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"no active loan"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/loans/return", h.Return)

			r := httptest.NewRequest(http.MethodPost, "/loans/return", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ActiveLoans(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLendingService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))

	svc.EXPECT().
		ActiveLoans(context.Background()).
		Return([]model.LoanView{
			{
				Loan: model.Loan{
					ID:         1,
					LoanUID:    "9d45e3c5-9f06-4f0b-b9e0-1b5c3f4f2a11",
					ItemID:     3,
					BorrowerID: 7,
					LoanDate:   date(2026, time.August, 1),
					DueDate:    date(2026, time.August, 15),
				},
				ItemTitle:     "Dune",
				ItemAuthor:    "Frank Herbert",
				BorrowerName:  "Alice",
				BorrowerEmail: "alice@example.com",
			},
		}, nil)

	e := echo.New()
	e.GET("/loans/active", h.ActiveLoans)

	r := httptest.NewRequest(http.MethodGet, "/loans/active", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	expected := `[{"id":1,"loanUid":"9d45e3c5-9f06-4f0b-b9e0-1b5c3f4f2a11","itemId":3,"borrowerId":7,"loanDate":"2026-08-01T00:00:00Z","dueDate":"2026-08-15T00:00:00Z","returnDate":null,"itemTitle":"Dune","itemAuthor":"Frank Herbert","borrowerName":"Alice","borrowerEmail":"alice@example.com"}]`
	require.Equal(t, expected, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_OverdueLoans(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok. custom grace",
			target: "/loans/overdue?graceDays=7",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					OverdueLoans(context.Background(), 7).
					Return([]model.LoanView{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name:   "ok. default grace",
			target: "/loans/overdue",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					OverdueLoans(context.Background(), 0).
					Return([]model.LoanView{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name:         "err. graceDays invalid",
			target:       "/loans/overdue?graceDays=abc",
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"graceDays is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.GET("/loans/overdue", h.OverdueLoans)

			r := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Stats(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLendingService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))

	svc.EXPECT().
		Snapshot(context.Background(), 2).
		Return(model.Snapshot{
			Stats: model.Stats{
				TotalItems:     10,
				AvailableItems: 8,
				TotalBorrowers: 4,
				ActiveLoans:    2,
				OverdueLoans:   1,
			},
			MostBorrowedItems: []model.RankingEntry{
				{Name: "Dune", LoanCount: 5},
				{Name: "Neuromancer", LoanCount: 3},
			},
			MostActiveBorrowers: []model.RankingEntry{
				{Name: "Alice", LoanCount: 6},
				{Name: "Bob", LoanCount: 2},
			},
		}, nil)

	e := echo.New()
	e.GET("/stats", h.Stats)

	r := httptest.NewRequest(http.MethodGet, "/stats?limit=2", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	expected := `{"stats":{"totalItems":10,"availableItems":8,"totalBorrowers":4,"activeLoans":2,"overdueLoans":1},"mostBorrowedItems":[{"name":"Dune","loanCount":5},{"name":"Neuromancer","loanCount":3}],"mostActiveBorrowers":[{"name":"Alice","loanCount":6},{"name":"Bob","loanCount":2}]}`
	require.Equal(t, expected, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_History(t *testing.T) {
	t.Parallel()
	returnDate := date(2026, time.August, 20)

	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLendingService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))

	svc.EXPECT().
		History(context.Background(), int64(7)).
		Return([]model.LoanView{
			{
				Loan: model.Loan{
					ID:         1,
					LoanUID:    "9d45e3c5-9f06-4f0b-b9e0-1b5c3f4f2a11",
					ItemID:     3,
					BorrowerID: 7,
					LoanDate:   date(2026, time.August, 1),
					DueDate:    date(2026, time.August, 15),
					ReturnDate: &returnDate,
				},
				ItemTitle:     "Dune",
				ItemAuthor:    "Frank Herbert",
				BorrowerName:  "Alice",
				BorrowerEmail: "alice@example.com",
			},
		}, nil)

	e := echo.New()
	e.GET("/borrowers/:id/loans", h.History)

	r := httptest.NewRequest(http.MethodGet, "/borrowers/7/loans", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	expected := `[{"id":1,"loanUid":"9d45e3c5-9f06-4f0b-b9e0-1b5c3f4f2a11","itemId":3,"borrowerId":7,"loanDate":"2026-08-01T00:00:00Z","dueDate":"2026-08-15T00:00:00Z","returnDate":"2026-08-20T00:00:00Z","itemTitle":"Dune","itemAuthor":"Frank Herbert","borrowerName":"Alice","borrowerEmail":"alice@example.com"}]`
	require.Equal(t, expected, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_CreateBorrower_Validation(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLendingService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/borrowers", h.CreateBorrower)

	r := httptest.NewRequest(http.MethodPost, "/borrowers",
		strings.NewReader(`{"name":"Alice","email":"not-an-email"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
