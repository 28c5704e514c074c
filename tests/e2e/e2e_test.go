//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront/internal/repository"
)

type userResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Email   string  `json:"email"`
}

type productResponse struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}

type orderResponse struct {
	ID        int64     `json:"id"`
	OrderDate time.Time `json:"order_date"`
	UserID    int64     `json:"user_id"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type client struct {
	t       *testing.T
	baseURL string
	http    *http.Client
}

func TestE2EStorefrontFlow(t *testing.T) {
	c := &client{
		t:       t,
		baseURL: envOrDefault("STOREFRONT_BASE_URL", "http://localhost:8080"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	c.waitReady()

	email := fmt.Sprintf("e2e-%d@storefront.local", time.Now().UnixNano())

	var user userResponse
	c.doJSON(http.MethodPost, "/users", map[string]any{"name": "E2E Shopper", "email": email}, http.StatusCreated, &user)
	assert.Nil(t, user.Address)

	var dup errorResponse
	c.doJSON(http.MethodPost, "/users", map[string]any{"name": "Again", "email": email}, http.StatusConflict, &dup)
	assert.Equal(t, "EMAIL_EXISTS", dup.Code)

	var widget, gadget productResponse
	c.doJSON(http.MethodPost, "/products", map[string]any{"product_name": "Widget", "price": 9.999}, http.StatusCreated, &widget)
	c.doJSON(http.MethodPost, "/products", map[string]any{"product_name": "Gadget", "price": 24.5}, http.StatusCreated, &gadget)
	assert.Equal(t, "10", widget.Price.String(), "price is rounded to two places")

	var order orderResponse
	c.doJSON(http.MethodPost, "/orders", map[string]any{"user_id": user.ID}, http.StatusCreated, &order)
	assert.Equal(t, user.ID, order.UserID)
	assert.WithinDuration(t, time.Now().UTC(), order.OrderDate, time.Minute)

	orderPath := fmt.Sprintf("/orders/%d", order.ID)
	c.doJSON(http.MethodPut, fmt.Sprintf("%s/add_product/%d", orderPath, gadget.ID), nil, http.StatusOK, nil)
	c.doJSON(http.MethodPut, fmt.Sprintf("%s/add_product/%d", orderPath, widget.ID), nil, http.StatusOK, nil)

	var again errorResponse
	c.doJSON(http.MethodPut, fmt.Sprintf("%s/add_product/%d", orderPath, widget.ID), nil, http.StatusBadRequest, &again)
	assert.Equal(t, "DUPLICATE_ASSOCIATION", again.Code)

	var inOrder []productResponse
	c.doJSON(http.MethodGet, orderPath+"/products", nil, http.StatusOK, &inOrder)
	require.Len(t, inOrder, 2)
	assert.Equal(t, widget.ID, inOrder[0].ID)
	assert.Equal(t, gadget.ID, inOrder[1].ID)

	// Reads after an update must not serve a stale cached price.
	productPath := fmt.Sprintf("/products/%d", gadget.ID)
	var fetched productResponse
	c.doJSON(http.MethodGet, productPath, nil, http.StatusOK, &fetched)
	c.doJSON(http.MethodPut, productPath, map[string]any{"price": 19.95}, http.StatusOK, nil)
	c.doJSON(http.MethodGet, productPath, nil, http.StatusOK, &fetched)
	assert.Equal(t, "19.95", fetched.Price.String())

	c.doJSON(http.MethodDelete, fmt.Sprintf("%s/remove_product/%d", orderPath, gadget.ID), nil, http.StatusOK, nil)
	c.doJSON(http.MethodGet, orderPath+"/products", nil, http.StatusOK, &inOrder)
	require.Len(t, inOrder, 1)

	var forUser []orderResponse
	c.doJSON(http.MethodGet, fmt.Sprintf("/orders/user/%d", user.ID), nil, http.StatusOK, &forUser)
	require.Len(t, forUser, 1)

	// Deleting the user removes the order and its associations.
	c.doJSON(http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil, http.StatusNoContent, nil)
	var gone errorResponse
	c.doJSON(http.MethodGet, orderPath, nil, http.StatusNotFound, &gone)
	assert.Equal(t, "ORDER_NOT_FOUND", gone.Code)

	assertNoAssociations(t, order.ID)

	c.doJSON(http.MethodDelete, fmt.Sprintf("/products/%d", widget.ID), nil, http.StatusNoContent, nil)
	c.doJSON(http.MethodDelete, productPath, nil, http.StatusNoContent, nil)
	c.doJSON(http.MethodGet, productPath, nil, http.StatusNotFound, &gone)
	assert.Equal(t, "PRODUCT_NOT_FOUND", gone.Code)
}

// assertNoAssociations checks the join table directly when DATABASE_URL
// is available.
func assertNoAssociations(t *testing.T, orderID int64) {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Log("DATABASE_URL not set; skipping join table check")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, dbURL, repository.PoolOptions{MaxConns: 1})
	require.NoError(t, err)
	defer repo.Close()

	n, err := repo.CountOrderProducts(ctx, orderID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func (c *client) waitReady() {
	c.t.Helper()

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := c.http.Get(c.baseURL + "/readyz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	c.t.Fatalf("server at %s not ready", c.baseURL)
}

func (c *client) doJSON(method, path string, body any, wantStatus int, out any) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	require.Equal(c.t, wantStatus, resp.StatusCode, "%s %s: %s", method, path, raw)

	if out != nil {
		require.NoError(c.t, json.Unmarshal(raw, out), "decode %s %s: %s", method, path, raw)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
