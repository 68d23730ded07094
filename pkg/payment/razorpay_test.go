package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(369800), req.Amount)

		json.NewEncoder(w).Encode(OrderResponse{
			ID: "order_abc123", Amount: req.Amount, Currency: req.Currency,
			Receipt: req.Receipt, Status: "created",
		})
	}))
	defer ts.Close()

	client := NewClient("key_test", "secret_test")
	client.BaseURL = ts.URL

	order, err := client.CreateOrder(369800, "INR", "order-1042")
	require.NoError(t, err)
	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderErrorDescriptionSurfaces(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount must be at least 100"}}`))
	}))
	defer ts.Close()

	client := NewClient("key_test", "secret_test")
	client.BaseURL = ts.URL

	_, err := client.CreateOrder(1, "INR", "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be at least 100")
}
