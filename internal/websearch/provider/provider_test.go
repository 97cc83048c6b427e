package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lk2023060901/search-aggregator/internal/websearch/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseProvider(t *testing.T) {
	config := &types.ProviderConfig{
		ID:      types.ProviderWeb,
		Name:    "Web",
		APIHost: "https://serpapi.com/",
		APIKey:  "test-key",
		Timeout: 3,
	}

	base := NewBaseProvider(config)
	assert.NotNil(t, base)
	assert.Equal(t, types.ProviderWeb, base.GetID())
	assert.Equal(t, "Web", base.GetName())
	assert.Equal(t, "test-key", base.GetAPIKey())
	assert.Equal(t, "https://serpapi.com", base.BaseURL())
}

func TestBaseProvider_GetAPIKey_Rotation(t *testing.T) {
	config := &types.ProviderConfig{
		ID:      types.ProviderVideo,
		Name:    "Video",
		APIHost: "https://www.googleapis.com",
		APIKey:  "key1, key2,, key3",
	}

	base := NewBaseProvider(config)

	assert.Equal(t, "key1", base.GetAPIKey())
	assert.Equal(t, "key2", base.GetAPIKey())
	assert.Equal(t, "key3", base.GetAPIKey())
	assert.Equal(t, "key1", base.GetAPIKey()) // Should rotate back to first
}

func TestBaseProvider_DoRequest_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	defer srv.Close()

	base := NewBaseProvider(&types.ProviderConfig{ID: types.ProviderWeb, Name: "Web", APIHost: srv.URL, APIKey: "k"})
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = base.DoRequest(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTransport)

	var perr *types.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "HTTP_401", perr.Code)
	assert.Equal(t, types.ProviderWeb, perr.Provider)
}

func TestBaseProvider_Outcome(t *testing.T) {
	base := NewBaseProvider(&types.ProviderConfig{ID: types.ProviderVideo})

	ok := base.Outcome(nil, nil)
	assert.True(t, ok.IsOk())
	assert.NotNil(t, ok.Results)
	assert.Empty(t, ok.Results)

	failed := base.Outcome(nil, types.ErrParse)
	assert.False(t, failed.IsOk())
	assert.Equal(t, types.ProviderVideo, failed.Provider)
}

func TestProviderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *types.ProviderConfig
		wantErr error
	}{
		{
			name: "valid web config",
			config: &types.ProviderConfig{
				ID:      types.ProviderWeb,
				Name:    "Web",
				APIHost: "https://serpapi.com",
				APIKey:  "test-key",
			},
			wantErr: nil,
		},
		{
			name: "missing provider ID",
			config: &types.ProviderConfig{
				Name:    "Test",
				APIHost: "https://api.test.com",
				APIKey:  "test-key",
			},
			wantErr: types.ErrInvalidProviderID,
		},
		{
			name: "missing API host",
			config: &types.ProviderConfig{
				ID:     types.ProviderVideo,
				Name:   "Video",
				APIKey: "test-key",
			},
			wantErr: types.ErrInvalidAPIHost,
		},
		{
			name: "negative max results",
			config: &types.ProviderConfig{
				ID:         types.ProviderVideo,
				Name:       "Video",
				APIHost:    "https://www.googleapis.com",
				APIKey:     "test-key",
				MaxResults: -1,
			},
			wantErr: types.ErrInvalidMaxResults,
		},
		{
			name: "missing API key",
			config: &types.ProviderConfig{
				ID:      types.ProviderWeb,
				Name:    "Web",
				APIHost: "https://serpapi.com",
			},
			wantErr: types.ErrMissingAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
