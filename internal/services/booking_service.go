package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/repositories"
	"hostella/internal/utils"
)

// BookingService owns the booking lifecycle. Status transitions the server
// drives itself (cancel, delete) are gated by the same action table the
// client uses, so the two can never disagree about what is allowed.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	HostelRepo  repositories.HostelRepository
	Notifier    NotificationService
	RequestID   string
}

// Create opens a booking in pending_payment with a fresh booking code. The
// price is copied from the room so later room price edits do not move an
// existing booking's total.
func (s BookingService) Create(userID int64, in models.CreateBookingInput) (models.Booking, error) {
	if userID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "user_id", Msg: "invalid id"}
	}
	if in.HostelID <= 0 || in.RoomID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "hostelId/roomId", Msg: "required"}
	}

	hostel, err := s.HostelRepo.GetByID(in.HostelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "hostel", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	room, err := s.HostelRepo.GetRoom(in.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "room", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if room.HostelID != hostel.ID {
		return models.Booking{}, domain.ValidationError{Field: "roomId", Msg: "room does not belong to hostel"}
	}
	if !room.Available {
		return models.Booking{}, domain.ConflictError{Resource: "room", Msg: "no longer available"}
	}

	b := models.Booking{
		BookingCode: domain.NewBookingCode(),
		UserID:      userID,
		HostelID:    hostel.ID,
		RoomID:      room.ID,
		HostelName:  hostel.Name,
		RoomTitle:   room.Title,
		HostelImage: hostel.Image,
		Status:      string(domain.StatusPendingPayment),
		Price:       room.Price,
	}
	id, err := s.BookingRepo.Create(b)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	b.ID = id

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d code=%s user_id=%d", id, b.BookingCode, userID))
	return b, nil
}

// Get loads one booking with the actions currently valid for it. userID 0
// skips the ownership check (admin paths).
func (s BookingService) Get(userID, bookingID int64) (models.Booking, []domain.Action, error) {
	b, err := s.owned(userID, bookingID)
	if err != nil {
		return models.Booking{}, nil, err
	}

	payment, err := s.PaymentRepo.GetByBookingID(bookingID)
	if err != nil {
		return models.Booking{}, nil, domain.InternalError{Err: err}
	}

	actions := domain.AvailableActions(
		domain.NormalizeStatus(b.Status),
		payment.ID != 0,
		domain.DisplayPaymentStatus(payment.Status, payment.ReceiptURL),
	)
	return b, actions, nil
}

func (s BookingService) ListForUser(userID int64, status string, page, limit int) ([]models.Booking, int, error) {
	if userID <= 0 {
		return nil, 0, domain.ValidationError{Field: "user_id", Msg: "invalid id"}
	}
	list, total, err := s.BookingRepo.ListByUser(userID, status, page, limit)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return list, total, nil
}

// Cancel moves a booking to cancelled. Allowed only while the booking is
// still pending payment and no payment has reached verification.
func (s BookingService) Cancel(userID, bookingID int64, reason string) (models.Booking, error) {
	b, err := s.owned(userID, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	payment, err := s.PaymentRepo.GetByBookingID(bookingID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	status := domain.NormalizeStatus(b.Status)
	ps := domain.DisplayPaymentStatus(payment.Status, payment.ReceiptURL)
	if !domain.CanCancel(status, payment.ID != 0, ps) {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot cancel from status %q", b.Status),
		}
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, string(domain.StatusCancelled), strings.TrimSpace(reason)); err != nil {
		if domain.IsNotFound(err) {
			return models.Booking{}, err
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	b.Status = string(domain.StatusCancelled)
	b.CancelReason = strings.TrimSpace(reason)

	s.Notifier.Push(b.UserID, "Booking cancelled",
		fmt.Sprintf("Booking %s was cancelled.", b.BookingCode))
	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%d", bookingID))
	return b, nil
}

// Delete removes a cancelled booking entirely. Irreversible; callers are
// expected to confirm with the user first.
func (s BookingService) Delete(userID, bookingID int64) error {
	b, err := s.owned(userID, bookingID)
	if err != nil {
		return err
	}

	if !domain.CanDelete(domain.NormalizeStatus(b.Status)) {
		return domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("only cancelled bookings can be deleted, status is %q", b.Status),
		}
	}

	if err := s.BookingRepo.Delete(bookingID); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "delete", fmt.Sprintf("booking_id=%d", bookingID))
	return nil
}

// Patch applies server-driven updates (allocation, admin status moves).
func (s BookingService) Patch(userID, bookingID int64, p models.BookingPatch) (models.Booking, error) {
	if _, err := s.owned(userID, bookingID); err != nil {
		return models.Booking{}, err
	}
	if p.Status != nil && domain.NormalizeStatus(*p.Status) == domain.StatusUnknown {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	if p.ReportingDate != nil && strings.TrimSpace(*p.ReportingDate) != "" {
		d, err := utils.ParseDate(*p.ReportingDate)
		if err != nil {
			return models.Booking{}, domain.ValidationError{Field: "reportingDate", Msg: "expected YYYY-MM-DD"}
		}
		normalized := utils.FormatDate(d)
		p.ReportingDate = &normalized
	}
	if err := s.BookingRepo.Patch(bookingID, p); err != nil {
		if domain.IsNotFound(err) {
			return models.Booking{}, err
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func (s BookingService) owned(userID, bookingID int64) (models.Booking, error) {
	if bookingID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if userID > 0 && b.UserID != userID {
		// hide other users' bookings rather than admitting they exist
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}
