package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cowork/infras/invoice"
	invoiceMocks "cowork/infras/invoice/mocks"
	"cowork/infras/otel/mocks"
	"cowork/internal/domains/invoice/service"
	"cowork/shared/failure"
)

func TestInvoiceService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(client *invoiceMocks.MockClient)
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(client *invoiceMocks.MockClient) {
				client.EXPECT().Get(gomock.Any(), "inv-1").Return(json.RawMessage(`{"invoice":{"invoice_id":"inv-1"}}`), nil)
			},
		},
		{
			name: "upstream not found",
			setupMock: func(client *invoiceMocks.MockClient) {
				client.EXPECT().Get(gomock.Any(), "inv-1").Return(nil, &invoice.Error{StatusCode: http.StatusNotFound, Body: "missing"})
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "upstream rejects the request",
			setupMock: func(client *invoiceMocks.MockClient) {
				client.EXPECT().Get(gomock.Any(), "inv-1").Return(nil, &invoice.Error{StatusCode: http.StatusBadRequest, Body: "bad id"})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "token refresh failed",
			setupMock: func(client *invoiceMocks.MockClient) {
				client.EXPECT().Get(gomock.Any(), "inv-1").Return(nil, &invoice.Error{StatusCode: http.StatusUnauthorized})
			},
			wantCode: http.StatusBadGateway,
		},
		{
			name: "network failure",
			setupMock: func(client *invoiceMocks.MockClient) {
				client.EXPECT().Get(gomock.Any(), "inv-1").Return(nil, errors.New("connection refused"))
			},
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := invoiceMocks.NewMockClient(ctrl)
			tt.setupMock(client)

			svc := service.New(client, mocks.NewOtel())

			res, err := svc.Get(context.Background(), "inv-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.JSONEq(t, `{"invoice":{"invoice_id":"inv-1"}}`, string(res))
		})
	}
}

func TestInvoiceService_Pending(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := invoiceMocks.NewMockClient(ctrl)

	client.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query url.Values) (json.RawMessage, error) {
			assert.Equal(t, "unpaid", query.Get("status"))

			return json.RawMessage(`{"invoices":[]}`), nil
		})

	res, err := service.New(client, mocks.NewOtel()).Pending(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, `{"invoices":[]}`, string(res))
}

func TestInvoiceService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := invoiceMocks.NewMockClient(ctrl)
	svc := service.New(client, mocks.NewOtel())

	t.Run("invalid json never reaches upstream", func(t *testing.T) {
		client.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Create(context.Background(), json.RawMessage(`{"customer_id":`))

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("created", func(t *testing.T) {
		client.EXPECT().Create(gomock.Any(), json.RawMessage(`{"customer_id":"c-1"}`)).Return(json.RawMessage(`{"code":0}`), nil)

		res, err := svc.Create(context.Background(), json.RawMessage(`{"customer_id":"c-1"}`))

		require.NoError(t, err)
		assert.JSONEq(t, `{"code":0}`, string(res))
	})
}

func TestInvoiceService_Email(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := invoiceMocks.NewMockClient(ctrl)

	client.EXPECT().Email(gomock.Any(), "inv-1", json.RawMessage("{}")).Return(json.RawMessage(`{"code":0}`), nil)

	_, err := service.New(client, mocks.NewOtel()).Email(context.Background(), "inv-1", nil)

	require.NoError(t, err)
}
