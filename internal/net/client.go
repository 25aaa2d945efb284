package net

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"SketchBoard3D/internal/config"
	"SketchBoard3D/internal/service"
)

// ErrRejected is returned when the service answers 4xx.
var ErrRejected = errors.New("request rejected by service")

// Client calls a remote recognition service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient accepts an http(s):// URL, a sketch3d:// share link or a bare host:port.
func NewClient(target string) (*Client, error) {
	base, err := BaseURL(target)
	if err != nil {
		return nil, err
	}
	return &Client{BaseURL: base, HTTP: &http.Client{Timeout: 15 * time.Second}}, nil
}

// BaseURL normalizes target to an http base URL without a trailing slash.
func BaseURL(target string) (string, error) {
	t := strings.TrimSpace(target)
	t = strings.TrimSuffix(t, "/")
	switch {
	case t == "":
		return "", errors.New("empty service address")
	case strings.HasPrefix(t, config.CustomURLScheme):
		t = "http://" + strings.TrimPrefix(t, config.CustomURLScheme)
	case !strings.Contains(t, "://"):
		t = "http://" + t
	}
	u, err := url.Parse(t)
	if err != nil {
		return "", fmt.Errorf("parse service address %q: %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("service address %q has no host", target)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Vectorize posts req to the service.
func (c *Client) Vectorize(ctx context.Context, req service.Request) (service.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return service.Response{}, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+VectorizePath, bytes.NewReader(body))
	if err != nil {
		return service.Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return service.Response{}, fmt.Errorf("post %s: %w", VectorizePath, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var eb errorBody
		data, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		if json.Unmarshal(data, &eb) != nil || eb.Error == "" {
			eb.Error = strings.TrimSpace(string(data))
		}
		if res.StatusCode >= 400 && res.StatusCode < 500 {
			return service.Response{}, fmt.Errorf("%w (%d): %s", ErrRejected, res.StatusCode, eb.Error)
		}
		return service.Response{}, fmt.Errorf("service error (%d): %s", res.StatusCode, eb.Error)
	}

	var out service.Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return service.Response{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// LiveClient keeps one websocket open to the service's live endpoint.
type LiveClient struct {
	conn *websocket.Conn
}

// DialLive opens the live endpoint of the service at target.
func DialLive(ctx context.Context, target string) (*LiveClient, error) {
	base, err := BaseURL(target)
	if err != nil {
		return nil, err
	}
	wsURL := "ws" + strings.TrimPrefix(base, "http") + LivePath
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	return &LiveClient{conn: conn}, nil
}

// Send writes one request. Requests and responses are matched by ID.
func (l *LiveClient) Send(req LiveRequest) error {
	return l.conn.WriteJSON(req)
}

// Receive blocks for the next response.
func (l *LiveClient) Receive() (LiveResponse, error) {
	var resp LiveResponse
	err := l.conn.ReadJSON(&resp)
	return resp, err
}

// Close sends a close frame and closes the connection.
func (l *LiveClient) Close() error {
	_ = l.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return l.conn.Close()
}
