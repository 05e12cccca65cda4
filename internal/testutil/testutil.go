package testutil

import (
	"go.uber.org/zap"

	"github.com/gitkachoda/tg-api-hitter/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestMedia creates a resolved media value for tests
func NewTestMedia(url, name, size string) *domain.ResolvedMedia {
	return &domain.ResolvedMedia{
		DirectURL:   url,
		DisplayName: name,
		SizeLabel:   size,
	}
}
