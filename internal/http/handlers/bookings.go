package handlers

import (
	"net/http"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// bookingResponse is what GET /bookings/:id returns: the record plus the
// actions currently valid for it, so clients never guess at the state
// machine.
type bookingResponse struct {
	models.Booking
	Actions []domain.Action `json:"actions"`
}

// GET /api/bookings
func (a API) ListBookings(c *gin.Context) {
	page, limit := pageParams(c)
	status := c.Query("status")

	list, total, err := a.bookings(c).ListForUser(middleware.UserID(c), status, page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if list == nil {
		list = []models.Booking{}
	}
	RespondList(c, list, domain.NewPagination(page, limit, total))
}

// GET /api/bookings/:id
func (a API) GetBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	b, actions, err := a.bookings(c).Get(middleware.UserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, bookingResponse{Booking: b, Actions: actions})
}

// POST /api/bookings
func (a API) CreateBooking(c *gin.Context) {
	var in models.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := a.bookings(c).Create(middleware.UserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, b)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// POST /api/bookings/:id/cancel
func (a API) CancelBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req cancelRequest
	if c.Request.Body != nil {
		// reason is optional, ignore bind errors on an empty body
		_ = c.ShouldBindJSON(&req)
	}
	b, err := a.bookings(c).Cancel(middleware.UserID(c), id, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, b)
}

// DELETE /api/bookings/:id
func (a API) DeleteBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := a.bookings(c).Delete(middleware.UserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

// PATCH /api/bookings/:id
func (a API) PatchBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var p models.BookingPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	userID := middleware.UserID(c)
	if middleware.Role(c) == "admin" {
		// room allocation is done on other students' bookings
		userID = 0
	}
	b, err := a.bookings(c).Patch(userID, id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, b)
}

// GET /api/bookings/:id/receipt
func (a API) GetReceipt(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data, err := a.receipts(c).Build(middleware.UserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{
		"breakdown": data.Breakdown,
		"info":      data.Info,
	})
}

// GET /api/bookings/:id/receipt.pdf
func (a API) GetReceiptPDF(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	svc := a.receipts(c)
	data, err := svc.Build(middleware.UserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdf, filename, err := svc.PDF(data)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
