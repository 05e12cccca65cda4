package service

import (
	"strings"

	"github.com/gitkachoda/tg-api-hitter/internal/repository"
)

// ConfigService handles per-user relay configuration: the two-state
// machine between normal link submission and awaiting a base URL.
type ConfigService struct {
	configRepo repository.UserConfigRepository
	seenRepo   repository.SeenRepository
}

// NewConfigService creates a new config service
func NewConfigService(configRepo repository.UserConfigRepository, seenRepo repository.SeenRepository) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
		seenRepo:   seenRepo,
	}
}

// BeginBaseURLInput puts the user into the awaiting-base-URL state.
func (s *ConfigService) BeginBaseURLInput(userID int64) error {
	return s.configRepo.SetAwaiting(userID, true)
}

// Awaiting reports whether the user's next text message should be
// stored as their base URL.
func (s *ConfigService) Awaiting(userID int64) (bool, error) {
	cfg, err := s.configRepo.Get(userID)
	if err != nil {
		return false, err
	}
	return cfg.AwaitingBaseURL, nil
}

// SetBaseURL stores the user's base URL, trimmed and with trailing
// slashes stripped, and returns the user to the normal state.
func (s *ConfigService) SetBaseURL(userID int64, raw string) (string, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(raw), "/")
	if err := s.configRepo.SetBaseURL(userID, baseURL); err != nil {
		return "", err
	}
	return baseURL, nil
}

// BaseURL returns the user's configured base URL, if any.
func (s *ConfigService) BaseURL(userID int64) (string, error) {
	cfg, err := s.configRepo.Get(userID)
	if err != nil {
		return "", err
	}
	return cfg.BaseURL, nil
}

// ClearBaseURL removes the user's base URL regardless of prior state.
func (s *ConfigService) ClearBaseURL(userID int64) error {
	return s.configRepo.ClearBaseURL(userID)
}

// MarkSeen records the user and reports whether this is first contact,
// used only to branch the greeting text.
func (s *ConfigService) MarkSeen(userID int64) (bool, error) {
	return s.seenRepo.MarkSeen(userID)
}
