package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserConfigRepo_GetDefault(t *testing.T) {
	repo := NewUserConfigRepo()

	cfg, err := repo.Get(123)
	assert.NoError(t, err)
	assert.Empty(t, cfg.BaseURL)
	assert.False(t, cfg.AwaitingBaseURL)
}

func TestUserConfigRepo_SetBaseURLClearsAwaiting(t *testing.T) {
	repo := NewUserConfigRepo()

	assert.NoError(t, repo.SetAwaiting(123, true))

	cfg, _ := repo.Get(123)
	assert.True(t, cfg.AwaitingBaseURL)

	assert.NoError(t, repo.SetBaseURL(123, "https://api.example.com"))

	cfg, _ = repo.Get(123)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.False(t, cfg.AwaitingBaseURL)
}

func TestUserConfigRepo_ClearBaseURL(t *testing.T) {
	repo := NewUserConfigRepo()

	assert.NoError(t, repo.SetBaseURL(123, "https://api.example.com"))
	assert.NoError(t, repo.ClearBaseURL(123))

	cfg, _ := repo.Get(123)
	assert.Empty(t, cfg.BaseURL)
}

func TestUserConfigRepo_UsersAreIndependent(t *testing.T) {
	repo := NewUserConfigRepo()

	assert.NoError(t, repo.SetBaseURL(1, "https://one.example.com"))
	assert.NoError(t, repo.SetBaseURL(2, "https://two.example.com"))
	assert.NoError(t, repo.ClearBaseURL(1))

	cfg1, _ := repo.Get(1)
	cfg2, _ := repo.Get(2)
	assert.Empty(t, cfg1.BaseURL)
	assert.Equal(t, "https://two.example.com", cfg2.BaseURL)
}

func TestUserConfigRepo_ConcurrentAccess(t *testing.T) {
	repo := NewUserConfigRepo()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = repo.SetBaseURL(id, fmt.Sprintf("https://u%d.example.com", id))
			_, _ = repo.Get(id)
		}(int64(i))
	}
	wg.Wait()

	cfg, _ := repo.Get(7)
	assert.Equal(t, "https://u7.example.com", cfg.BaseURL)
}

func TestSeenRepo_MarkSeen(t *testing.T) {
	repo := NewSeenRepo()

	first, err := repo.MarkSeen(123)
	assert.NoError(t, err)
	assert.True(t, first)

	again, err := repo.MarkSeen(123)
	assert.NoError(t, err)
	assert.False(t, again)

	other, err := repo.MarkSeen(456)
	assert.NoError(t, err)
	assert.True(t, other)
}
