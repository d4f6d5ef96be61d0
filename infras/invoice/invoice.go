package invoice

//go:generate go run go.uber.org/mock/mockgen -source=./invoice.go -destination=./mocks/invoice_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/shared/constant"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	authScheme      = "Zoho-oauthtoken "
	paramOrgID      = "organization_id"
	tokenPath       = "/oauth/v2/token"
	invoicesPath    = "/invoices"
	grantRefresh    = "refresh_token"
	refreshFlightID = "refresh"
)

// Error is returned when the invoice API answers with a non 2xx status.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invoice api returned %d: %s", e.StatusCode, e.Body)
}

type Client interface {
	List(ctx context.Context, query url.Values) (json.RawMessage, error)
	Get(ctx context.Context, id string) (json.RawMessage, error)
	Create(ctx context.Context, body json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, id string) (json.RawMessage, error)
	Email(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error)
	PDF(ctx context.Context, id string) ([]byte, error)
}

type clientImpl struct {
	config *config.Config
	http   *http.Client
	otel   otel.Otel

	mu     sync.RWMutex
	token  string
	flight singleflight.Group
}

func New(config *config.Config, otel otel.Otel) Client {
	return NewWithHTTPClient(config, otel, &http.Client{
		Timeout: time.Duration(config.Invoice.TimeoutSeconds) * time.Second,
	})
}

func NewWithHTTPClient(config *config.Config, otel otel.Otel, httpClient *http.Client) Client {
	return &clientImpl{
		config: config,
		http:   httpClient,
		otel:   otel,
		token:  config.Invoice.AccessToken,
	}
}

func (c *clientImpl) List(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, invoicesPath, query, nil)
}

func (c *clientImpl) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, invoicesPath+"/"+url.PathEscape(id), nil, nil)
}

func (c *clientImpl) Create(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, invoicesPath, nil, body)
}

func (c *clientImpl) Update(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPut, invoicesPath+"/"+url.PathEscape(id), nil, body)
}

func (c *clientImpl) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodDelete, invoicesPath+"/"+url.PathEscape(id), nil, nil)
}

func (c *clientImpl) Email(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, invoicesPath+"/"+url.PathEscape(id)+"/email", nil, body)
}

func (c *clientImpl) PDF(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, invoicesPath+"/"+url.PathEscape(id)+"/pdf", nil, nil)
}

func (c *clientImpl) doJSON(ctx context.Context, method, path string, query url.Values, body []byte) (json.RawMessage, error) {
	res, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(res), nil
}

// do sends the request and, on a 401, refreshes the access token and retries exactly once.
func (c *clientImpl) do(ctx context.Context, method, path string, query url.Values, body []byte) (res []byte, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, "invoice."+method)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("invoice.path", path)

	status, res, err := c.send(ctx, method, path, query, body, c.accessToken())
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		log.Warn().Str("path", path).Msg("invoice api token rejected, refreshing")

		token, err := c.refresh(ctx)
		if err != nil {
			return nil, err
		}

		status, res, err = c.send(ctx, method, path, query, body, token)
		if err != nil {
			return nil, err
		}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &Error{StatusCode: status, Body: string(res)}
	}

	return res, nil
}

func (c *clientImpl) send(ctx context.Context, method, path string, query url.Values, body []byte, token string) (int, []byte, error) {
	params := url.Values{}
	for key, values := range query {
		params[key] = values
	}

	params.Set(paramOrgID, c.config.Invoice.OrganizationID)

	endpoint := strings.TrimRight(c.config.Invoice.BaseURL, "/") + path + "?" + params.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build invoice request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, authScheme+token)
	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to call invoice api: %w", err)
	}
	defer resp.Body.Close()

	res, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read invoice response: %w", err)
	}

	return resp.StatusCode, res, nil
}

func (c *clientImpl) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// refresh exchanges the refresh token for a new access token. Concurrent callers share one exchange.
func (c *clientImpl) refresh(ctx context.Context) (string, error) {
	token, err, _ := c.flight.Do(refreshFlightID, func() (any, error) {
		form := url.Values{}
		form.Set("refresh_token", c.config.Invoice.RefreshToken)
		form.Set("client_id", c.config.Invoice.ClientID)
		form.Set("client_secret", c.config.Invoice.ClientSecret)
		form.Set("grant_type", grantRefresh)

		endpoint := strings.TrimRight(c.config.Invoice.AccountsURL, "/") + tokenPath + "?" + form.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build token request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh invoice token: %w", err)
		}
		defer resp.Body.Close()

		var payload struct {
			AccessToken string `json:"access_token"`
			Error       string `json:"error"`
		}

		if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("failed to decode token response: %w", err)
		}

		if resp.StatusCode != http.StatusOK || payload.AccessToken == "" {
			return nil, &Error{StatusCode: http.StatusUnauthorized, Body: "token refresh failed: " + payload.Error}
		}

		c.mu.Lock()
		c.token = payload.AccessToken
		c.mu.Unlock()

		log.Info().Msg("invoice api token refreshed")

		return payload.AccessToken, nil
	})
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	return token.(string), nil //nolint:forcetypeassert
}
