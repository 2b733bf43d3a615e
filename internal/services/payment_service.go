package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/repositories"
	"hostella/internal/utils"
)

// PaymentService handles initiation, receipt upload and verification.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	ReceiptSvc  ReceiptService
	Notifier    NotificationService
	Bank        models.BankDetails
	RequestID   string

	// Now is a test seam for reference generation.
	Now func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Initiate creates a payment for a pending-payment booking. A booking with
// an active payment gets the existing record back instead of a duplicate.
func (s PaymentService) Initiate(userID int64, in models.InitiatePaymentInput) (models.Payment, *models.BankDetails, error) {
	if in.BookingID <= 0 {
		return models.Payment{}, nil, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}

	provider := domain.NormalizeProvider(in.Provider)
	if provider != domain.ProviderBankTransfer && provider != domain.ProviderPaystack {
		return models.Payment{}, nil, domain.ValidationError{Field: "provider", Msg: "must be BANK_TRANSFER or PAYSTACK"}
	}

	b, err := s.booking(userID, in.BookingID)
	if err != nil {
		return models.Payment{}, nil, err
	}
	if domain.NormalizeStatus(b.Status) != domain.StatusPendingPayment {
		return models.Payment{}, nil, domain.ConflictError{
			Resource: "payment",
			Msg:      fmt.Sprintf("booking is %q, not awaiting payment", b.Status),
		}
	}

	existing, err := s.PaymentRepo.GetByBookingID(in.BookingID)
	if err != nil {
		return models.Payment{}, nil, domain.InternalError{Err: err}
	}
	if existing.ID != 0 && domain.NormalizePaymentStatus(existing.Status) != domain.PaymentFailed {
		utils.LogEvent(s.RequestID, "payment", "initiate",
			fmt.Sprintf("booking_id=%d reuse payment_id=%d", in.BookingID, existing.ID))
		return existing, s.bankDetailsFor(existing), nil
	}

	p := models.Payment{
		BookingID:  b.ID,
		Amount:     b.Price,
		Provider:   string(provider),
		Status:     string(domain.PaymentInitiated),
		Reference:  fmt.Sprintf("PAY-%s-%d", b.BookingCode, s.now().Unix()),
		PayerPhone: in.PayerPhone,
	}
	id, err := s.PaymentRepo.Create(p)
	if err != nil {
		return models.Payment{}, nil, domain.InternalError{Err: err}
	}
	p.ID = id

	utils.LogEvent(s.RequestID, "payment", "initiate",
		fmt.Sprintf("booking_id=%d payment_id=%d provider=%s", b.ID, id, provider))
	return p, s.bankDetailsFor(p), nil
}

// ListForBooking returns the payment records for a booking. No record at
// all maps to NotFound so the HTTP layer answers 404, which clients treat
// as "no payment yet".
func (s PaymentService) ListForBooking(userID, bookingID int64) ([]models.Payment, error) {
	if _, err := s.booking(userID, bookingID); err != nil {
		return nil, err
	}
	p, err := s.PaymentRepo.GetByBookingID(bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if p.ID == 0 {
		return nil, domain.NotFoundError{Resource: "payment"}
	}
	return []models.Payment{p}, nil
}

// UploadReceipt attaches proof of a bank transfer and moves the payment to
// AWAITING_VERIFICATION. Re-upload over an existing receipt is allowed;
// touching a confirmed payment is not.
func (s PaymentService) UploadReceipt(userID, paymentID int64, receiptURL string) (models.Payment, error) {
	if paymentID <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	if receiptURL == "" {
		return models.Payment{}, domain.ValidationError{Field: "receipt", Msg: "file required"}
	}

	p, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}
	if _, err := s.booking(userID, p.BookingID); err != nil {
		return models.Payment{}, err
	}

	switch domain.NormalizePaymentStatus(p.Status) {
	case domain.PaymentInitiated, domain.PaymentAwaitingVerification, domain.PaymentPending:
	default:
		return models.Payment{}, domain.ConflictError{
			Resource: "payment",
			Msg:      fmt.Sprintf("receipt cannot be uploaded while payment is %q", p.Status),
		}
	}

	if err := s.PaymentRepo.SetReceipt(paymentID, receiptURL, string(domain.PaymentAwaitingVerification)); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	p.ReceiptURL = receiptURL
	p.Status = string(domain.PaymentAwaitingVerification)

	utils.LogEvent(s.RequestID, "payment", "upload_receipt", fmt.Sprintf("payment_id=%d", paymentID))
	return p, nil
}

// Verify is the provider-callback path: mark the payment confirmed, move
// the booking to pending approval, and snapshot the receipt breakdown so
// the issued receipt survives future charge changes.
func (s PaymentService) Verify(reference string) (models.Payment, error) {
	p, err := s.PaymentRepo.GetByReference(reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}

	if domain.NormalizePaymentStatus(p.Status) == domain.PaymentConfirmed {
		return p, nil
	}

	if err := s.PaymentRepo.UpdateStatus(p.ID, string(domain.PaymentConfirmed)); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	p.Status = string(domain.PaymentConfirmed)

	if err := s.BookingRepo.UpdateStatus(p.BookingID, string(domain.StatusPendingApproval), ""); err != nil {
		utils.LogEvent(s.RequestID, "payment", "verify", "booking status update failed: "+err.Error())
		return models.Payment{}, domain.InternalError{Err: err}
	}

	if b, err := s.BookingRepo.GetByID(p.BookingID); err == nil {
		if err := s.ReceiptSvc.Snapshot(b); err != nil {
			// snapshot is best effort; the recompute path still works
			utils.LogEvent(s.RequestID, "payment", "verify", "snapshot warning: "+err.Error())
		}
		s.Notifier.Push(b.UserID, "Payment confirmed",
			fmt.Sprintf("Payment for booking %s was confirmed and is awaiting approval.", b.BookingCode))
	}

	utils.LogEvent(s.RequestID, "payment", "verify", fmt.Sprintf("payment_id=%d reference=%s", p.ID, reference))
	return p, nil
}

func (s PaymentService) bankDetailsFor(p models.Payment) *models.BankDetails {
	if domain.NormalizeProvider(p.Provider) != domain.ProviderBankTransfer {
		return nil
	}
	details := s.Bank
	details.Reference = p.Reference
	return &details
}

func (s PaymentService) booking(userID, bookingID int64) (models.Booking, error) {
	if bookingID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if userID > 0 && b.UserID != userID {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}
