package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetTickets(c echo.Context) error {
	tickets, err := h.ticketRepo.ByBuyer(c.Request().Context(), userID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, tickets)
}

func (h *Handler) GetReceipts(c echo.Context) error {
	receipts, err := h.receiptRepo.ByOrganizer(c.Request().Context(), userID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, receipts)
}
