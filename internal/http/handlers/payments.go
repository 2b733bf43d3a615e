package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hostella/internal/domain/models"
	"hostella/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/payments/initiate
func (a API) InitiatePayment(c *gin.Context) {
	var in models.InitiatePaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, bank, err := a.payments(c).Initiate(middleware.UserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	payload := gin.H{"payment": p}
	if bank != nil {
		payload["bankDetails"] = bank
	}
	RespondData(c, http.StatusCreated, payload)
}

// GET /api/payments/booking/:bookingId
func (a API) ListPaymentsForBooking(c *gin.Context) {
	id, ok := idParam(c, "bookingId")
	if !ok {
		return
	}
	list, err := a.payments(c).ListForBooking(middleware.UserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, list)
}

// POST /api/payments/:id/receipt — multipart upload of a transfer slip.
func (a API) UploadPaymentReceipt(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "receipt file is required", err)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".pdf":
	default:
		RespondError(c, http.StatusBadRequest, "receipt must be a jpg, png or pdf", nil)
		return
	}

	if err := os.MkdirAll(a.Env.UploadDir, 0o755); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to prepare upload directory", err)
		return
	}
	name := fmt.Sprintf("receipt_%d_%d%s", id, time.Now().UnixNano(), ext)
	dst := filepath.Join(a.Env.UploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store receipt", err)
		return
	}

	p, err := a.payments(c).UploadReceipt(middleware.UserID(c), id, "/uploads/"+name)
	if err != nil {
		// the service rejected the upload, drop the orphaned file
		_ = os.Remove(dst)
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, p)
}

// GET /api/payments/verify/:reference — provider callback / staff
// confirmation.
func (a API) VerifyPayment(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" {
		RespondError(c, http.StatusBadRequest, "reference is required", nil)
		return
	}
	p, err := a.payments(c).Verify(reference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, p)
}
