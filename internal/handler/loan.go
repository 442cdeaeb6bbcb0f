package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Astemirdum/lending-service/internal/model"
)

func (h *Handler) Lend(c echo.Context) error {
	var req model.LendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.lendingSvc.Lend(c.Request().Context(), req.ItemID, req.BorrowerID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) Return(c echo.Context) error {
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.lendingSvc.Return(c.Request().Context(), req.ItemID, req.BorrowerID); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) ActiveLoans(c echo.Context) error {
	loans, err := h.lendingSvc.ActiveLoans(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) OverdueLoans(c echo.Context) error {
	var graceDays int
	if graceParam := c.QueryParam("graceDays"); graceParam != "" {
		var err error
		if graceDays, err = strconv.Atoi(graceParam); err != nil || graceDays < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, errors.New("graceDays is invalid"))
		}
	}
	loans, err := h.lendingSvc.OverdueLoans(c.Request().Context(), graceDays)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) Stats(c echo.Context) error {
	var limit int
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		var err error
		if limit, err = strconv.Atoi(limitParam); err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, errors.New("limit is invalid"))
		}
	}
	snap, err := h.lendingSvc.Snapshot(c.Request().Context(), limit)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *Handler) SweepOverdue(c echo.Context) error {
	sent, err := h.lendingSvc.SweepOverdue(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	type resp struct {
		Sent int `json:"sent"`
	}
	return c.JSON(http.StatusOK, resp{Sent: sent})
}
