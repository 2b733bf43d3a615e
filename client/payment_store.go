package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
)

// PaymentStore holds payment state per booking. Statuses are run
// through the display normalizer at ingestion so the rest of the app
// only ever sees canonical values.
type PaymentStore struct {
	client *Client

	mu sync.Mutex

	Payments    []models.Payment
	BankDetails *models.BankDetails
	Loading     bool
	Error       string
}

func NewPaymentStore(c *Client) *PaymentStore {
	return &PaymentStore{client: c}
}

// FetchForBooking loads payments for one booking. A 404 means no
// payment has been initiated yet: the list comes back empty and no
// error is raised.
func (s *PaymentStore) FetchForBooking(ctx context.Context, bookingID int64) error {
	s.mu.Lock()
	s.Loading = true
	s.mu.Unlock()

	var list []models.Payment
	err := s.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/api/payments/booking/%d", bookingID), nil, &list)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loading = false
	if err != nil {
		if domain.NetworkStatus(err) == http.StatusNotFound {
			s.Payments = []models.Payment{}
			s.Error = ""
			return nil
		}
		s.Error = err.Error()
		return err
	}
	s.Payments = normalizePayments(list)
	s.Error = ""
	return nil
}

type initiateResponse struct {
	Payment     models.Payment      `json:"payment"`
	BankDetails *models.BankDetails `json:"bankDetails"`
}

// Initiate starts a payment. Bank details come back only for bank
// transfers.
func (s *PaymentStore) Initiate(ctx context.Context, in models.InitiatePaymentInput) (models.Payment, error) {
	var res initiateResponse
	err := s.client.do(ctx, http.MethodPost, "/api/payments/initiate", in, &res)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return models.Payment{}, err
	}
	p := normalizePayment(res.Payment)
	s.Payments = []models.Payment{p}
	s.BankDetails = res.BankDetails
	s.Error = ""
	return p, nil
}

// UploadReceipt sends proof of a transfer as a multipart upload.
func (s *PaymentStore) UploadReceipt(ctx context.Context, paymentID int64, filename string, content io.Reader) (models.Payment, error) {
	var p models.Payment
	err := s.client.upload(ctx,
		fmt.Sprintf("/api/payments/%d/receipt", paymentID), "receipt", filename, content, &p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return models.Payment{}, err
	}
	p = normalizePayment(p)
	s.replace(p)
	s.Error = ""
	return p, nil
}

func (s *PaymentStore) Verify(ctx context.Context, reference string) (models.Payment, error) {
	var p models.Payment
	err := s.client.do(ctx, http.MethodGet,
		"/api/payments/verify/"+url.PathEscape(reference), nil, &p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return models.Payment{}, err
	}
	p = normalizePayment(p)
	s.replace(p)
	s.Error = ""
	return p, nil
}

func (s *PaymentStore) replace(p models.Payment) {
	for i := range s.Payments {
		if s.Payments[i].ID == p.ID {
			s.Payments[i] = p
			return
		}
	}
	s.Payments = append(s.Payments, p)
}

func normalizePayment(p models.Payment) models.Payment {
	p.Status = string(domain.DisplayPaymentStatus(p.Status, p.ReceiptURL))
	return p
}

func normalizePayments(list []models.Payment) []models.Payment {
	out := make([]models.Payment, len(list))
	for i, p := range list {
		out[i] = normalizePayment(p)
	}
	return out
}
