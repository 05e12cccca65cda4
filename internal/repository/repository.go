package repository

import (
	"github.com/gitkachoda/tg-api-hitter/internal/domain"
)

// UserConfigRepository defines per-user configuration storage.
type UserConfigRepository interface {
	Get(userID int64) (domain.UserConfig, error)
	// SetBaseURL stores the base URL and clears the awaiting flag in a
	// single step.
	SetBaseURL(userID int64, baseURL string) error
	SetAwaiting(userID int64, awaiting bool) error
	ClearBaseURL(userID int64) error
}

// SeenRepository tracks which users have already been greeted.
type SeenRepository interface {
	// MarkSeen records the user and reports whether this was their
	// first contact.
	MarkSeen(userID int64) (bool, error)
}
