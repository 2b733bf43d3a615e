package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"hostella/internal/domain/models"
)

const (
	tokenKey       = "auth.token"
	signupDraftKey = "auth.signup_draft"
)

// SignupDraft is the partially-filled signup form, persisted so a user
// who leaves mid-signup can continue where they stopped.
type SignupDraft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AuthStore handles login/signup and keeps the session token, persisted
// through the KeyValueStore so it survives restarts.
type AuthStore struct {
	client *Client
	kv     KeyValueStore

	mu    sync.Mutex
	User  *models.User
	Token string
	Error string
}

func NewAuthStore(c *Client, kv KeyValueStore) *AuthStore {
	s := &AuthStore{client: c, kv: kv}
	var token string
	if err := kv.Get(tokenKey, &token); err == nil && token != "" {
		s.Token = token
		c.SetToken(token)
	}
	return s
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	var res loginResponse
	err := s.client.do(ctx, http.MethodPost, "/api/auth/login",
		loginPayload{Email: email, Password: password}, &res)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return err
	}
	s.User = &res.User
	s.Token = res.Token
	s.Error = ""
	s.client.SetToken(res.Token)
	if err := s.kv.Set(tokenKey, res.Token); err != nil {
		// the session still works for this run
		s.Error = "failed to persist session: " + err.Error()
	}
	return nil
}

type signupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Signup registers the account and clears any saved draft on success.
func (s *AuthStore) Signup(ctx context.Context, draft SignupDraft, password string) error {
	var user models.User
	err := s.client.do(ctx, http.MethodPost, "/api/auth/register", signupPayload{
		Name:     draft.Name,
		Email:    draft.Email,
		Phone:    draft.Phone,
		Password: password,
	}, &user)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return err
	}
	s.User = &user
	s.Error = ""
	_ = s.kv.Remove(signupDraftKey)
	return nil
}

// SaveDraft persists the in-progress signup form.
func (s *AuthStore) SaveDraft(draft SignupDraft) error {
	return s.kv.Set(signupDraftKey, draft)
}

// LoadDraft returns the saved signup form, or a zero draft when none
// exists.
func (s *AuthStore) LoadDraft() (SignupDraft, error) {
	var draft SignupDraft
	if err := s.kv.Get(signupDraftKey, &draft); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return SignupDraft{}, nil
		}
		return SignupDraft{}, err
	}
	return draft, nil
}

// Logout drops the session locally.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.User = nil
	s.Token = ""
	s.client.SetToken("")
	_ = s.kv.Remove(tokenKey)
}
