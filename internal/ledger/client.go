package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/logger"
	"github.com/zhaomaota/word-stone/internal/metrics"
)

// maxErrorBody bounds how much of a failed response is kept for the error
const maxErrorBody = 512

// Config configures a Client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client talks to the remote word and pack ledger.
// Every call carries the caller's bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a ledger client
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// remoteError wraps a failure as ErrRemoteCallFailed, adding ErrUnauthorized for 401s
func remoteError(op string, status int, err error) error {
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s: %w: %w", domain.ErrRemoteCallFailed, op, domain.ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrRemoteCallFailed, op, err)
}

// doRequest performs an HTTP request, retrying transport and 5xx failures
// with exponential backoff and jitter
func (c *Client) doRequest(ctx context.Context, method, path, token string, body interface{}) (*http.Response, error) {
	log := logger.FromContext(ctx)

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Int63n(int64(maxJitter))) //nolint:gosec // backoff jitter
			delay := c.retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			log.Info(LogMsgRetrying, "attempt", attempt, "path", path, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt, "path", path)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt, "path", path)
	}

	if c.maxRetries > 0 {
		return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return nil, lastErr
}

// call performs one ledger operation and decodes the envelope's data into out
func (c *Client) call(ctx context.Context, op, method, path, token string, body, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveLedgerCall(op, time.Since(start), err)
	}()

	if c.baseURL == "" {
		return remoteError(op, 0, errors.New("ledger base url is not configured"))
	}

	resp, err := c.doRequest(ctx, method, path, token, body)
	if err != nil {
		return remoteError(op, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return remoteError(op, resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := env.Error
		if decodeErr != nil || detail == "" {
			detail = truncate(string(raw), maxErrorBody)
		}
		logger.FromContext(ctx).Warn(LogMsgRejectedByPeer, "operation", op, "status", resp.StatusCode, "error", detail)
		return remoteError(op, resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	}
	if decodeErr != nil {
		return remoteError(op, resp.StatusCode, fmt.Errorf("failed to decode envelope: %w", decodeErr))
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "success=false"
		}
		return remoteError(op, resp.StatusCode, errors.New(msg))
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return remoteError(op, resp.StatusCode, fmt.Errorf("failed to decode data: %w", err))
		}
	}

	logger.FromContext(ctx).Debug(LogMsgCallSucceeded, "operation", op, "duration", time.Since(start))
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Verify checks that token is accepted by the ledger
func (c *Client) Verify(ctx context.Context, token string) (User, error) {
	var u User
	err := c.call(ctx, OpVerify, http.MethodGet, PathVerify, token, nil, &u)
	return u, err
}

// CurrentUser fetches the profile that owns token
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var u User
	err := c.call(ctx, OpCurrentUser, http.MethodGet, PathCurrentUser, token, nil, &u)
	return u, err
}

// UpdateCurrentUser edits the nickname or avatar of the profile that owns token
// and returns the stored profile
func (c *Client) UpdateCurrentUser(ctx context.Context, token string, update ProfileUpdate) (User, error) {
	var u User
	err := c.call(ctx, OpUpdateUser, http.MethodPut, PathCurrentUser, token, update, &u)
	return u, err
}

// GetPacks fetches unopened pack counts by type
func (c *Client) GetPacks(ctx context.Context, token string) (map[string]int, error) {
	var data PacksData
	if err := c.call(ctx, OpGetPacks, http.MethodGet, PathPacks, token, nil, &data); err != nil {
		return nil, err
	}
	return data.Counts(), nil
}

// AddPacks grants count packs of a type
func (c *Client) AddPacks(ctx context.Context, token, packType string, count int) error {
	req := addPacksRequest{PackID: packType, Count: count}
	return c.call(ctx, OpAddPacks, http.MethodPost, PathAddPacks, token, req, nil)
}

// UsePack consumes one pack of a type
func (c *Client) UsePack(ctx context.Context, token, packType string) error {
	path := fmt.Sprintf(PathUsePack, url.PathEscape(packType))
	return c.call(ctx, OpUsePack, http.MethodPost, path, token, nil, nil)
}

// GetWords fetches the owned word list. A non-nil favoritesOnly filters by favorite state.
func (c *Client) GetWords(ctx context.Context, token string, favoritesOnly *bool) ([]domain.RemoteWord, error) {
	path := PathWords
	if favoritesOnly != nil {
		q := url.Values{}
		q.Set("isFavorited", strconv.FormatBool(*favoritesOnly))
		path += "?" + q.Encode()
	}

	var data WordsData
	if err := c.call(ctx, OpGetWords, http.MethodGet, path, token, nil, &data); err != nil {
		return nil, err
	}
	if data.Words == nil {
		data.Words = []domain.RemoteWord{}
	}
	return data.Words, nil
}

// SaveWords persists newly acquired words. Empty input makes no call.
func (c *Client) SaveWords(ctx context.Context, token string, words []NewWord) error {
	if len(words) == 0 {
		return nil
	}
	return c.call(ctx, OpSaveWords, http.MethodPost, PathWords, token, saveWordsRequest{Words: words}, nil)
}

// SetFavorite sets the favorite flag of a persisted word
func (c *Client) SetFavorite(ctx context.Context, token, wordID string, isFavorited bool) error {
	path := fmt.Sprintf(PathFavorite, url.PathEscape(wordID))
	return c.call(ctx, OpSetFavorite, http.MethodPost, path, token, favoriteRequest{IsFavorited: isFavorited}, nil)
}
