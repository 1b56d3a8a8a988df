package credentials

import (
	"context"
	"errors"
	"strings"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// ErrNotFound is returned by Get when no credentials are stored for a user
var ErrNotFound = errors.New("credentials not found")

// Credentials is what a session needs to be restored without a new login
type Credentials struct {
	Token   string         `json:"token"`
	Profile domain.Profile `json:"profile"`
}

// Store persists credentials per username
type Store interface {
	Get(ctx context.Context, username string) (Credentials, error)
	Put(ctx context.Context, username string, creds Credentials) error
	Delete(ctx context.Context, username string) error
	Close() error
}

// normalizeUsername is the storage key form of a username
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
