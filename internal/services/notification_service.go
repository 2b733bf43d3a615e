package services

import (
	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/repositories"
	"hostella/internal/utils"
)

type NotificationService struct {
	Repo      repositories.NotificationRepository
	RequestID string
}

func (s NotificationService) ListForUser(userID int64, page, limit int) ([]models.Notification, int, error) {
	if userID <= 0 {
		return nil, 0, domain.ValidationError{Field: "user_id", Msg: "invalid id"}
	}
	list, total, err := s.Repo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return list, total, nil
}

func (s NotificationService) MarkRead(userID, id int64) error {
	if err := s.Repo.MarkRead(id, userID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Push is fire-and-forget; a failed notification never fails the caller's
// transition.
func (s NotificationService) Push(userID int64, title, body string) {
	if userID <= 0 {
		return
	}
	if err := s.Repo.Create(models.Notification{UserID: userID, Title: title, Body: body}); err != nil {
		utils.LogEvent(s.RequestID, "notification", "push", "create warning: "+err.Error())
	}
}
