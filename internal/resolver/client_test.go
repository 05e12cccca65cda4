package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitkachoda/tg-api-hitter/internal/domain"
)

func TestClient_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedError bool
		expected      *domain.ResolvedMedia
	}{
		{
			name:   "successful resolve",
			status: http.StatusOK,
			body:   `{"success":true,"dlink":{"dlink":"https://cdn/x.mp4","name":"clip","size":"12 MB"}}`,
			expected: &domain.ResolvedMedia{
				DirectURL:   "https://cdn/x.mp4",
				DisplayName: "clip",
				SizeLabel:   "12 MB",
			},
		},
		{
			name:          "success flag false",
			status:        http.StatusOK,
			body:          `{"success":false}`,
			expectedError: true,
		},
		{
			name:          "missing dlink object",
			status:        http.StatusOK,
			body:          `{"success":true}`,
			expectedError: true,
		},
		{
			name:          "empty media URL",
			status:        http.StatusOK,
			body:          `{"success":true,"dlink":{"name":"clip"}}`,
			expectedError: true,
		},
		{
			name:          "invalid JSON",
			status:        http.StatusOK,
			body:          `not json`,
			expectedError: true,
		},
		{
			name:          "server error",
			status:        http.StatusInternalServerError,
			body:          ``,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(zap.NewNop())
			media, err := client.Resolve(context.Background(), srv.URL, "https://share.example/abc")

			if tt.expectedError {
				require.Error(t, err)
				var resolveErr *domain.ResolveError
				assert.True(t, errors.As(err, &resolveErr))
				assert.Nil(t, media)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, media)
		})
	}
}

func TestClient_Resolve_EncodesLink(t *testing.T) {
	var gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"success":true,"dlink":{"dlink":"https://cdn/x.mp4","name":"x","size":"1 MB"}}`))
	}))
	defer srv.Close()

	client := NewClient(zap.NewNop())
	_, err := client.Resolve(context.Background(), srv.URL, "https://share.example/a?b=c&d=e")
	require.NoError(t, err)

	assert.Equal(t, "link=https%3A%2F%2Fshare.example%2Fa%3Fb%3Dc%26d%3De", gotRaw)
}

func TestClient_Resolve_UnreachableHost(t *testing.T) {
	client := NewClient(zap.NewNop())

	_, err := client.Resolve(context.Background(), "http://127.0.0.1:1", "link")
	require.Error(t, err)

	var resolveErr *domain.ResolveError
	assert.True(t, errors.As(err, &resolveErr))
}
