package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gitkachoda/tg-api-hitter/internal/domain"
	"github.com/gitkachoda/tg-api-hitter/internal/fetch"
)

// MockUserConfigRepo is a mock for repository.UserConfigRepository
type MockUserConfigRepo struct {
	mock.Mock
}

func (m *MockUserConfigRepo) Get(userID int64) (domain.UserConfig, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.UserConfig), args.Error(1)
}

func (m *MockUserConfigRepo) SetBaseURL(userID int64, baseURL string) error {
	args := m.Called(userID, baseURL)
	return args.Error(0)
}

func (m *MockUserConfigRepo) SetAwaiting(userID int64, awaiting bool) error {
	args := m.Called(userID, awaiting)
	return args.Error(0)
}

func (m *MockUserConfigRepo) ClearBaseURL(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockSeenRepo is a mock for repository.SeenRepository
type MockSeenRepo struct {
	mock.Mock
}

func (m *MockSeenRepo) MarkSeen(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

// MockMessenger is a mock for service.Messenger
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendText(chatID int64, text string) (int, error) {
	args := m.Called(chatID, text)
	return args.Int(0), args.Error(1)
}

func (m *MockMessenger) EditText(chatID int64, messageID int, text string) error {
	args := m.Called(chatID, messageID, text)
	return args.Error(0)
}

func (m *MockMessenger) DeleteMessage(chatID int64, messageID int) error {
	args := m.Called(chatID, messageID)
	return args.Error(0)
}

func (m *MockMessenger) SendVideoURL(chatID int64, url, caption string) (int, error) {
	args := m.Called(chatID, url, caption)
	return args.Int(0), args.Error(1)
}

func (m *MockMessenger) SendVideoFile(chatID int64, path, caption string) (int, error) {
	args := m.Called(chatID, path, caption)
	return args.Int(0), args.Error(1)
}

// MockResolver is a mock for service.Resolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, baseURL, link string) (*domain.ResolvedMedia, error) {
	args := m.Called(ctx, baseURL, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedMedia), args.Error(1)
}

// MockFetcher is a mock for service.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, dest string, onProgress fetch.ProgressFunc) error {
	args := m.Called(ctx, url, dest, onProgress)
	return args.Error(0)
}

// MockScheduler is a mock for service.DeleteScheduler
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) ScheduleDelete(chatID int64, messageID int) {
	m.Called(chatID, messageID)
}
