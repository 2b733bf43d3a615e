package handlers

import (
	intconfig "hostella/internal/config"
	"hostella/internal/domain/models"
	"hostella/internal/http/middleware"
	"hostella/internal/repositories"
	"hostella/internal/services"

	"github.com/gin-gonic/gin"
)

// API holds the configuration shared by all handlers. Services are cheap
// value structs over the shared DB, built per request so the request id
// threads through their logs.
type API struct {
	Env intconfig.Env
}

func (a API) notifications(c *gin.Context) services.NotificationService {
	return services.NotificationService{
		Repo:      repositories.NotificationRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
		HostelRepo:  repositories.HostelRepository{},
		Notifier:    a.notifications(c),
		RequestID:   middleware.GetRequestID(c),
	}
}

func (a API) receipts(c *gin.Context) services.ReceiptService {
	return services.ReceiptService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
		ReceiptRepo: repositories.ReceiptRepository{},
		UserRepo:    repositories.UserRepository{},
		Charges:     a.Env.Charges(),
		RequestID:   middleware.GetRequestID(c),
	}
}

func (a API) payments(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		PaymentRepo: repositories.PaymentRepository{},
		BookingRepo: repositories.BookingRepository{},
		ReceiptSvc:  a.receipts(c),
		Notifier:    a.notifications(c),
		Bank: models.BankDetails{
			BankName:      a.Env.BankName,
			AccountName:   a.Env.BankAccount,
			AccountNumber: a.Env.BankAccountNo,
		},
		RequestID: middleware.GetRequestID(c),
	}
}
