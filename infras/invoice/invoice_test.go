package invoice_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"cowork/config"
	"cowork/infras/invoice"
	"cowork/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstream struct {
	apiCalls     atomic.Int32
	refreshCalls atomic.Int32
	validToken   string
	issuedToken  string
}

func (u *upstream) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		u.refreshCalls.Add(1)

		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "refresh-secret", r.URL.Query().Get("refresh_token"))

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": u.issuedToken})
	})
	mux.HandleFunc("/invoices/", func(w http.ResponseWriter, r *http.Request) {
		u.apiCalls.Add(1)

		assert.Equal(t, "org-1", r.URL.Query().Get("organization_id"))

		if r.Header.Get("Authorization") != "Zoho-oauthtoken "+u.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":57,"message":"not authorized"}`))

			return
		}

		_, _ = w.Write([]byte(`{"invoice":{"invoice_id":"inv-1"}}`))
	})

	return mux
}

func newClient(serverURL string) invoice.Client {
	cfg := &config.Config{}
	cfg.Invoice.BaseURL = serverURL
	cfg.Invoice.AccountsURL = serverURL
	cfg.Invoice.OrganizationID = "org-1"
	cfg.Invoice.AccessToken = "stale"
	cfg.Invoice.RefreshToken = "refresh-secret"

	return invoice.NewWithHTTPClient(cfg, mocks.NewOtel(), http.DefaultClient)
}

func TestClient_Get(t *testing.T) {
	tests := []struct {
		name            string
		validToken      string
		issuedToken     string
		wantErr         bool
		wantAPICalls    int32
		wantRefreshCall int32
	}{
		{
			name:            "valid token needs no refresh",
			validToken:      "stale",
			issuedToken:     "fresh",
			wantAPICalls:    1,
			wantRefreshCall: 0,
		},
		{
			name:            "unauthorized refreshes once and retries",
			validToken:      "fresh",
			issuedToken:     "fresh",
			wantAPICalls:    2,
			wantRefreshCall: 1,
		},
		{
			name:            "second unauthorized is returned without another retry",
			validToken:      "never-issued",
			issuedToken:     "fresh",
			wantErr:         true,
			wantAPICalls:    2,
			wantRefreshCall: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &upstream{validToken: tt.validToken, issuedToken: tt.issuedToken}

			server := httptest.NewServer(up.handler(t))
			defer server.Close()

			res, err := newClient(server.URL).Get(t.Context(), "inv-1")

			if tt.wantErr {
				require.Error(t, err)

				var apiErr *invoice.Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"invoice":{"invoice_id":"inv-1"}}`, string(res))
			}

			assert.Equal(t, tt.wantAPICalls, up.apiCalls.Load())
			assert.Equal(t, tt.wantRefreshCall, up.refreshCalls.Load())
		})
	}
}

func TestClient_ListForwardsQuery(t *testing.T) {
	var gotStatus string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")

		_, _ = w.Write([]byte(`{"invoices":[]}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL).List(t.Context(), url.Values{"status": []string{"sent"}})

	require.NoError(t, err)
	assert.Equal(t, "sent", gotStatus)
}
