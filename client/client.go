// Package client is the application core a frontend binds to: a REST
// client plus observable stores for bookings, payments, auth and
// notifications, with a poller for background refresh.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"hostella/internal/domain"
)

// Client is a thin wrapper over the REST API. All methods take a
// context and decode the standard {data} envelope.
type Client struct {
	BaseURL string

	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on subsequent requests. An
// empty string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// do runs one request. in is JSON-encoded when non-nil; the response
// "data" field is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return domain.NetworkError{Msg: "invalid request", Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if t := c.bearer(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NetworkError{Msg: "request failed", Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.NetworkError{StatusCode: res.StatusCode, Msg: "reading response", Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e errorEnvelope
		_ = json.Unmarshal(raw, &e)
		msg := e.Error
		if msg == "" {
			msg = fmt.Sprintf("server returned %d", res.StatusCode)
		}
		return domain.NetworkError{StatusCode: res.StatusCode, Msg: msg}
	}

	if out == nil {
		return nil
	}
	var envelope struct {
		Data       json.RawMessage    `json:"data"`
		Pagination *domain.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return domain.NetworkError{StatusCode: res.StatusCode, Msg: "malformed response", Err: err}
	}
	if p, ok := out.(*listResult); ok {
		if envelope.Pagination != nil {
			p.Pagination = *envelope.Pagination
		}
		if len(envelope.Data) == 0 {
			return nil
		}
		return json.Unmarshal(envelope.Data, p.Items)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

// listResult lets callers capture both the data array and the
// pagination block from a list endpoint.
type listResult struct {
	Items      any
	Pagination domain.Pagination
}

// upload posts one file as multipart form data under the given field
// name, decoding the {data} envelope into out.
func (c *Client) upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filepath.Base(filename))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := w.Close(); err != nil {
		return domain.InternalError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return domain.NetworkError{Msg: "invalid request", Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}
