package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
)

// Client is the shared HTTP/JSON transport for the remote collaborator
// services (cart, catalog, accounts).
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logger,
	}
}

type apiError struct {
	Detail string `json:"detail"`
}

// doJSON issues one request and decodes the JSON response into out (may be
// nil). Non-2xx responses come back as *apperr.AppError keyed on the status.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	return c.doJSONWith(ctx, method, path, token, nil, body, out)
}

// doJSONWith is doJSON plus extra request headers (e.g. the guest session
// header the cart service uses for anonymous visitors).
func (c *Client) doJSONWith(ctx context.Context, method, path, token string, headers map[string]string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return apperr.Wrap(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		if k != "" && v != "" {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelWarn, "remote_call_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("err", err),
		)
		return apperr.UnavailableErr("Service is temporarily unavailable.", err)
	}
	defer resp.Body.Close()

	c.log.LogAttrs(ctx, slog.LevelDebug, "remote_call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	var ae apiError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&ae)
	msg := strings.TrimSpace(ae.Detail)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		if msg == "" {
			msg = "Not found."
		}
		return apperr.NotFoundErr(msg)
	case resp.StatusCode == http.StatusUnauthorized:
		if msg == "" {
			msg = "Sign in to continue."
		}
		return apperr.UnauthorizedErr(msg)
	case resp.StatusCode == http.StatusForbidden:
		if msg == "" {
			msg = "Access denied."
		}
		return apperr.ForbiddenErr(msg)
	case resp.StatusCode == http.StatusConflict:
		if msg == "" {
			msg = "Conflicting change."
		}
		return apperr.ConflictErr(msg)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		if msg == "" {
			msg = "Invalid request."
		}
		return apperr.InvalidErr(msg, nil)
	default:
		return apperr.UnavailableErr("Service is temporarily unavailable.",
			fmt.Errorf("remote status %d", resp.StatusCode))
	}
}
