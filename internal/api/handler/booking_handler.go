package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// BookingHandler exposes bookings, including the cancel transition.
type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type bookingRequest struct {
	LeadID      string  `json:"leadId" validate:"required"`
	UnitID      string  `json:"unitId" validate:"required"`
	PaymentPlan string  `json:"paymentPlan" validate:"required,oneof=full installment construction-linked"`
	TokenAmount float64 `json:"tokenAmount" validate:"required,gt=0"`
	BookingDate string  `json:"bookingDate" validate:"required"`
	Notes       string  `json:"notes"`
}

type bookingPatchRequest struct {
	PaymentPlan *string  `json:"paymentPlan" validate:"omitempty,oneof=full installment construction-linked"`
	TokenAmount *float64 `json:"tokenAmount" validate:"omitempty,gt=0"`
	BookingDate *string  `json:"bookingDate" validate:"omitempty,min=1"`
	Notes       *string  `json:"notes"`
}

func (h *BookingHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	input := ports.ListBookingsInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	page, err := h.bookings.List(c.Request().Context(), session, input)
	if err != nil {
		return opFailed(err, "Failed to load bookings")
	}
	return c.JSON(http.StatusOK, page)
}

func (h *BookingHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Get(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return opFailed(err, "Booking not found")
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req bookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookings.Create(c.Request().Context(), session, ports.BookingForm{
		LeadID:      req.LeadID,
		UnitID:      req.UnitID,
		PaymentPlan: domain.PaymentPlan(req.PaymentPlan),
		TokenAmount: req.TokenAmount,
		BookingDate: req.BookingDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return opFailed(err, "Failed to create booking")
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req bookingPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := ports.BookingPatch{
		TokenAmount: req.TokenAmount,
		BookingDate: req.BookingDate,
		Notes:       req.Notes,
	}
	if req.PaymentPlan != nil {
		plan := domain.PaymentPlan(*req.PaymentPlan)
		patch.PaymentPlan = &plan
	}

	booking, err := h.bookings.Update(c.Request().Context(), session, c.Param("id"), patch)
	if err != nil {
		return opFailed(err, "Failed to update booking")
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Cancel(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return opFailed(err, "Failed to cancel booking")
	}
	return c.JSON(http.StatusOK, booking)
}
