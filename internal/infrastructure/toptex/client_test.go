package toptex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/config"
	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/cache"
	"go.uber.org/zap"
)

func testVendorConfig(baseURL string) config.VendorConfig {
	return config.VendorConfig{
		Username: "user",
		Password: "secret",
		APIKey:   "test-api-key",
		BaseURL:  baseURL,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testVendorConfig(server.URL), cache.NewMemoryTokenStore(), zap.NewNop())
	require.NoError(t, err)
	return client, server
}

func writeToken(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
}

func TestNewClient_MissingConfiguration(t *testing.T) {
	client, err := NewClient(config.VendorConfig{BaseURL: "https://api.example.com"}, cache.NewMemoryTokenStore(), zap.NewNop())

	assert.Nil(t, client)
	var catalogErr *domainErrors.CatalogError
	if assert.ErrorAs(t, err, &catalogErr) {
		assert.Equal(t, domainErrors.ErrTypeConfiguration, catalogErr.Type)
		assert.Contains(t, catalogErr.Message, "vendor.username")
		assert.Contains(t, catalogErr.Message, "vendor.password")
		assert.Contains(t, catalogErr.Message, "vendor.api_key")
		assert.NotContains(t, catalogErr.Message, "vendor.base_url")
	}
}

func TestClient_RequestToken(t *testing.T) {
	tests := []struct {
		name              string
		handler           http.HandlerFunc
		expectedToken     string
		expectedErrorType string
		expectedStatus    int
	}{
		{
			name: "successful authentication",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v3/authenticate", r.URL.Path)
				assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "user", body["username"])
				assert.Equal(t, "secret", body["password"])

				writeToken(w)
			},
			expectedToken: "tok-123",
		},
		{
			name: "rejected credentials",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"bad credentials"}`))
			},
			expectedErrorType: domainErrors.ErrTypeAuthentication,
			expectedStatus:    http.StatusUnauthorized,
		},
		{
			name: "success without token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
			expectedErrorType: domainErrors.ErrTypeAuthentication,
			expectedStatus:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)

			token, err := client.RequestToken(context.Background(), Credential{Username: "user", Password: "secret"})

			if tt.expectedErrorType == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
				return
			}

			assert.Empty(t, token)
			var catalogErr *domainErrors.CatalogError
			if assert.ErrorAs(t, err, &catalogErr) {
				assert.Equal(t, tt.expectedErrorType, catalogErr.Type)
				assert.Equal(t, tt.expectedStatus, catalogErr.StatusCode)
			}
		})
	}
}

func TestClient_AuthenticatedGetCarriesHeaders(t *testing.T) {
	var authCalls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/authenticate":
			atomic.AddInt32(&authCalls, 1)
			writeToken(w)
		case "/v3/attributes/brands":
			assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			w.Write([]byte(`[{"id": 7, "name": "Kariban"}, {"id": "K2", "name": {"es": "Nativ", "en": "Native"}}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	first, err := client.ListEntities(ctx, model.EntityBrand)
	require.NoError(t, err)
	_, err = client.ListEntities(ctx, model.EntityBrand)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, "7", first[0].ExternalID)
	assert.Equal(t, "Kariban", first[0].Name)
	assert.Equal(t, "K2", first[1].ExternalID)
	assert.Equal(t, "Nativ", first[1].Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&authCalls))
}

func TestClient_NonSuccessStatusIsRemoteServiceError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v3/authenticate" {
			writeToken(w)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`maintenance window`))
	})

	_, err := client.ListEntities(context.Background(), model.EntityAttribute)

	var catalogErr *domainErrors.CatalogError
	if assert.ErrorAs(t, err, &catalogErr) {
		assert.Equal(t, domainErrors.ErrTypeRemoteService, catalogErr.Type)
		assert.Equal(t, http.StatusServiceUnavailable, catalogErr.StatusCode)
		assert.Equal(t, "maintenance window", catalogErr.Body)
		assert.Contains(t, err.Error(), "503")
		assert.Contains(t, err.Error(), "maintenance window")
	}
}

func TestClient_RejectedTokenIsDropped(t *testing.T) {
	var authCalls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v3/authenticate" {
			atomic.AddInt32(&authCalls, 1)
			writeToken(w)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	ctx := context.Background()

	_, err := client.ListEntities(ctx, model.EntityVariant)
	assert.True(t, domainErrors.IsType(err, domainErrors.ErrTypeAuthentication))

	_, err = client.ListEntities(ctx, model.EntityVariant)
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&authCalls))
}

func TestClient_RequestCatalogLink(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		expectedLink      string
		expectedErrorType string
	}{
		{name: "link key", body: `{"link": "https://files.example.com/a.json"}`, expectedLink: "https://files.example.com/a.json"},
		{name: "url key", body: `{"url": "https://files.example.com/b.json"}`, expectedLink: "https://files.example.com/b.json"},
		{name: "neither key", body: `{"status": "pending"}`, expectedErrorType: domainErrors.ErrTypeConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/v3/authenticate" {
					writeToken(w)
					return
				}
				assert.Equal(t, "/v3/products/all", r.URL.Path)
				assert.Equal(t, "1", r.URL.Query().Get("result_in_file"))
				assert.NotEmpty(t, r.URL.Query().Get("usage_right"))
				w.Write([]byte(tt.body))
			})

			link, err := client.RequestCatalogLink(context.Background())

			if tt.expectedErrorType != "" {
				assert.True(t, domainErrors.IsType(err, tt.expectedErrorType))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedLink, link)
		})
	}
}

func TestClient_DownloadCatalog(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		expectedRecords   int
		expectedErrorType string
	}{
		{name: "array", body: `[{"catalogReference": "X1"}, {"catalogReference": "X2"}]`, expectedRecords: 2},
		{name: "wrapped items", body: `{"items": [{"catalogReference": "X1"}]}`, expectedRecords: 1},
		{name: "empty array", body: `[]`, expectedErrorType: domainErrors.ErrTypeDownload},
		{name: "empty wrapped items", body: `{"items": []}`, expectedErrorType: domainErrors.ErrTypeDownload},
		{name: "empty body", body: ``, expectedErrorType: domainErrors.ErrTypeDownload},
		{name: "invalid json", body: `[{"catalogReference":`, expectedErrorType: domainErrors.ErrTypeDownload},
		{name: "not json", body: `<html></html>`, expectedErrorType: domainErrors.ErrTypeDownload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Empty(t, r.Header.Get("Authorization"))
				assert.Empty(t, r.Header.Get("x-api-key"))
				w.Write([]byte(tt.body))
			})

			records, err := client.DownloadCatalog(context.Background(), server.URL+"/export.json")

			if tt.expectedErrorType != "" {
				assert.True(t, domainErrors.IsType(err, tt.expectedErrorType), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, records, tt.expectedRecords)
		})
	}
}

func TestClient_ListEntitiesAcceptsEmptyList(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v3/authenticate" {
			writeToken(w)
			return
		}
		w.Write([]byte(`[]`))
	})

	records, err := client.ListEntities(context.Background(), model.EntityBrand)

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_DownloadReturnsContentType(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	})

	body, contentType, err := client.Download(context.Background(), server.URL+"/img.png")

	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Len(t, body, 4)
}
