package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"hostella/internal/domain/models"
)

// NotificationStore keeps the user's notification feed, refreshed by
// the poller.
type NotificationStore struct {
	client *Client

	mu sync.Mutex

	Notifications []models.Notification
	Unread        int
	Error         string
}

func NewNotificationStore(c *Client) *NotificationStore {
	return &NotificationStore{client: c}
}

func (s *NotificationStore) Fetch(ctx context.Context) error {
	var list []models.Notification
	err := s.client.do(ctx, http.MethodGet, "/api/notifications?page=1&limit=50",
		nil, &listResult{Items: &list})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return err
	}
	s.Notifications = list
	s.Unread = 0
	for _, n := range list {
		if !n.Read {
			s.Unread++
		}
	}
	s.Error = ""
	return nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id int64) error {
	err := s.client.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/notifications/%d/read", id), nil, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return err
	}
	for i := range s.Notifications {
		if s.Notifications[i].ID == id && !s.Notifications[i].Read {
			s.Notifications[i].Read = true
			s.Unread--
		}
	}
	s.Error = ""
	return nil
}
