package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitkachoda/tg-api-hitter/internal/repository/memory"
	"github.com/gitkachoda/tg-api-hitter/internal/testutil"
)

func newConfigService() *ConfigService {
	return NewConfigService(memory.NewUserConfigRepo(), memory.NewSeenRepo())
}

func TestConfigService_SetBaseURL_Normalization(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "plain URL unchanged",
			raw:      "https://api.example.com",
			expected: "https://api.example.com",
		},
		{
			name:     "trailing slash stripped",
			raw:      "https://api.example.com/",
			expected: "https://api.example.com",
		},
		{
			name:     "multiple trailing slashes stripped",
			raw:      "https://api.example.com///",
			expected: "https://api.example.com",
		},
		{
			name:     "surrounding whitespace trimmed",
			raw:      "  https://api.example.com/  ",
			expected: "https://api.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newConfigService()

			stored, err := svc.SetBaseURL(123, tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, stored)

			got, err := svc.BaseURL(123)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfigService_BaseURLFlow(t *testing.T) {
	svc := newConfigService()

	// Initially normal state, no base URL.
	awaiting, err := svc.Awaiting(123)
	assert.NoError(t, err)
	assert.False(t, awaiting)

	// /baseurl puts the user into awaiting state.
	assert.NoError(t, svc.BeginBaseURLInput(123))
	awaiting, _ = svc.Awaiting(123)
	assert.True(t, awaiting)

	// Any text stores the URL and returns to normal.
	_, err = svc.SetBaseURL(123, "https://api.example.com/")
	assert.NoError(t, err)

	awaiting, _ = svc.Awaiting(123)
	assert.False(t, awaiting)

	url, _ := svc.BaseURL(123)
	assert.Equal(t, "https://api.example.com", url)
}

func TestConfigService_ClearBaseURL(t *testing.T) {
	svc := newConfigService()

	_, err := svc.SetBaseURL(123, "https://api.example.com")
	assert.NoError(t, err)

	// /stop clears the URL regardless of prior state.
	assert.NoError(t, svc.ClearBaseURL(123))

	url, err := svc.BaseURL(123)
	assert.NoError(t, err)
	assert.Empty(t, url)
}

func TestConfigService_ClearWhileAwaiting(t *testing.T) {
	svc := newConfigService()

	_, _ = svc.SetBaseURL(123, "https://api.example.com")
	_ = svc.BeginBaseURLInput(123)

	assert.NoError(t, svc.ClearBaseURL(123))

	url, _ := svc.BaseURL(123)
	assert.Empty(t, url)
}

func TestConfigService_MarkSeen(t *testing.T) {
	svc := newConfigService()

	first, err := svc.MarkSeen(123)
	assert.NoError(t, err)
	assert.True(t, first)

	again, err := svc.MarkSeen(123)
	assert.NoError(t, err)
	assert.False(t, again)
}

func TestConfigService_RepoErrorPropagates(t *testing.T) {
	mockRepo := new(testutil.MockUserConfigRepo)
	mockSeen := new(testutil.MockSeenRepo)
	mockRepo.On("SetAwaiting", int64(123), true).Return(fmt.Errorf("store error"))

	svc := NewConfigService(mockRepo, mockSeen)

	err := svc.BeginBaseURLInput(123)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
