package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/repositories"
	"hostella/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService assembles and renders payment receipts. A snapshot taken
// at confirmation time wins over recomputation, so receipts issued before
// a fee-schedule change keep their original numbers.
type ReceiptService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	ReceiptRepo repositories.ReceiptRepository
	UserRepo    repositories.UserRepository
	Charges     domain.ChargeConfig
	RequestID   string
}

// ReceiptData is everything the PDF and the JSON variant need.
type ReceiptData struct {
	Breakdown domain.ReceiptBreakdown `json:"breakdown"`
	Info      domain.ReceiptInfo      `json:"info"`
	Booking   models.Booking          `json:"booking"`
}

// Build loads the booking and derives (or restores) its breakdown.
func (s ReceiptService) Build(userID, bookingID int64) (ReceiptData, error) {
	if bookingID <= 0 {
		return ReceiptData{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReceiptData{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return ReceiptData{}, domain.InternalError{Err: err}
	}
	if userID > 0 && b.UserID != userID {
		return ReceiptData{}, domain.NotFoundError{Resource: "booking"}
	}

	breakdown, receiptNumber, err := s.breakdownFor(b)
	if err != nil {
		return ReceiptData{}, err
	}

	info := domain.ReceiptInfo{
		ReceiptNumber: receiptNumber,
		DateTime:      utils.NowUTC(),
		PropertyName:  propertyName(b),
	}
	if u, err := s.UserRepo.GetByID(b.UserID); err == nil {
		info.CustomerName = u.Name
	}
	if p, err := s.PaymentRepo.GetByBookingID(b.ID); err == nil && p.ID != 0 {
		info.PaymentReference = p.Reference
		info.PaymentMethod = domain.PaymentProvider(p.Provider).Label()
	}

	return ReceiptData{Breakdown: breakdown, Info: info, Booking: b}, nil
}

// Snapshot persists the breakdown for a booking once, at confirmation.
func (s ReceiptService) Snapshot(b models.Booking) error {
	existing, err := s.ReceiptRepo.GetByBookingID(b.ID)
	if err != nil {
		return err
	}
	if existing.ID != 0 {
		return nil
	}

	total, err := utils.ParseAmount(b.Price)
	if err != nil {
		return domain.InvalidAmountError{Msg: "unparsable booking price " + b.Price}
	}
	breakdown, err := domain.ComputeReceipt(total, s.Charges)
	if err != nil {
		return err
	}

	snap := models.ReceiptSnapshot{
		BookingID:      b.ID,
		ReceiptNumber:  domain.NewReceiptNumber(b.BookingCode),
		GrandTotal:     breakdown.GrandTotal,
		BaseAmount:     breakdown.BaseAmount,
		VAT:            breakdown.VAT,
		TourismLevy:    breakdown.TourismLevy,
		ServiceFee:     breakdown.ServiceFee,
		MaintenanceFee: breakdown.MaintenanceFee,
		GeneratorFee:   breakdown.GeneratorFee,
		WaterBill:      breakdown.WaterBill,
	}
	if err := s.ReceiptRepo.Create(snap); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "receipt", "snapshot",
		fmt.Sprintf("booking_id=%d number=%s", b.ID, snap.ReceiptNumber))
	return nil
}

func (s ReceiptService) breakdownFor(b models.Booking) (domain.ReceiptBreakdown, string, error) {
	snap, err := s.ReceiptRepo.GetByBookingID(b.ID)
	if err != nil {
		return domain.ReceiptBreakdown{}, "", domain.InternalError{Err: err}
	}
	if snap.ID != 0 {
		return breakdownFromSnapshot(snap), snap.ReceiptNumber, nil
	}

	total, err := utils.ParseAmount(b.Price)
	if err != nil {
		return domain.ReceiptBreakdown{}, "", domain.InvalidAmountError{Msg: "unparsable booking price " + b.Price}
	}
	breakdown, err := domain.ComputeReceipt(total, s.Charges)
	if err != nil {
		return domain.ReceiptBreakdown{}, "", err
	}
	return breakdown, domain.NewReceiptNumber(b.BookingCode), nil
}

func breakdownFromSnapshot(s models.ReceiptSnapshot) domain.ReceiptBreakdown {
	taxes := s.VAT + s.TourismLevy + s.ServiceFee
	fixed := s.MaintenanceFee + s.GeneratorFee + s.WaterBill
	return domain.ReceiptBreakdown{
		GrandTotal:          s.GrandTotal,
		BaseAmount:          s.BaseAmount,
		Subtotal:            s.BaseAmount,
		VAT:                 s.VAT,
		TourismLevy:         s.TourismLevy,
		ServiceFee:          s.ServiceFee,
		TotalTaxesAndLevies: taxes,
		MaintenanceFee:      s.MaintenanceFee,
		GeneratorFee:        s.GeneratorFee,
		WaterBill:           s.WaterBill,
		TotalFixedCharges:   fixed,
	}
}

// PDF renders the receipt document.
func (s ReceiptService) PDF(d ReceiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		"Receipt No   : " + safe(d.Info.ReceiptNumber, "-"),
		"Date         : " + utils.FormatDateTime(d.Info.DateTime),
		"Customer     : " + safe(d.Info.CustomerName, "-"),
		"Property     : " + safe(d.Info.PropertyName, "-"),
		"Booking Code : " + safe(d.Booking.BookingCode, "-"),
		"Payment      : " + safe(d.Info.PaymentMethod, "-"),
		"Reference    : " + safe(d.Info.PaymentReference, "-"),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Breakdown:")
	pdf.Ln(8)

	b := d.Breakdown
	pdf.SetFont("Helvetica", "", 11)
	rows := []struct {
		label  string
		amount float64
	}{
		{"Base rent (subtotal)", b.Subtotal},
		{"VAT (15%)", b.VAT},
		{"Tourism levy (1%)", b.TourismLevy},
		{"Service fee (2%)", b.ServiceFee},
		{"Taxes and levies", b.TotalTaxesAndLevies},
		{"Maintenance fee", b.MaintenanceFee},
		{"Generator fee", b.GeneratorFee},
		{"Water bill", b.WaterBill},
		{"Fixed charges", b.TotalFixedCharges},
	}
	for _, row := range rows {
		pdf.Cell(110, 6, row.label)
		pdf.CellFormat(40, 6, utils.FormatMoney(row.amount), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(110, 8, "Grand Total")
	pdf.CellFormat(40, 8, utils.FormatMoney(b.GrandTotal), "", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for booking with Hostella. Keep this receipt for your records.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render receipt", Err: err}
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(d.Booking.BookingCode))
	return buf.Bytes(), filename, nil
}

func propertyName(b models.Booking) string {
	name := strings.TrimSpace(b.HostelName)
	title := strings.TrimSpace(b.RoomTitle)
	switch {
	case name != "" && title != "":
		return name + ", " + title
	case name != "":
		return name
	default:
		return title
	}
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
