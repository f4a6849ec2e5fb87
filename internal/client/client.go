// Package client provides an HTTP client for the order engine API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"roboadvisor/internal/models"
)

// OrderRequest is the payload of a portfolio order.
type OrderRequest struct {
	Type           string                  `json:"type"`
	Amount         float64                 `json:"amount"`
	Portfolio      []models.PortfolioStock `json:"portfolio"`
	IdempotencyKey string                  `json:"idempotencyKey"`
	UserID         string                  `json:"userId,omitempty"`
}

// OrderQuery holds the optional filters of an order listing. Zero values are
// not sent.
type OrderQuery struct {
	Stock          string
	UserID         string
	IdempotencyKey string
	Status         string
	Type           string
	OrderID        int64
	Page           int
	PageSize       int
}

// OrderList is the answer to an order listing.
type OrderList struct {
	TotalCount  int64          `json:"totalCount"`
	ResultCount int64          `json:"resultCount"`
	Page        int            `json:"page,omitempty"`
	PageSize    int            `json:"pageSize,omitempty"`
	Result      []models.Order `json:"result"`
}

// APIError is an error envelope returned by the server.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.StatusCode)
}

// OrderClient communicates with the order engine API.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOrderClient creates a new order engine API client.
func NewOrderClient(baseURL string, httpClient *http.Client) *OrderClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OrderClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SubmitOrder places a portfolio order. Resubmitting the same idempotency key
// returns the original response.
func (c *OrderClient) SubmitOrder(ctx context.Context, order OrderRequest) (*models.OrderResponse, error) {
	var resp models.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/order", order, &resp); err != nil {
		return nil, fmt.Errorf("submitting order: %w", err)
	}
	return &resp, nil
}

// ListOrders fetches the orders matching q.
func (c *OrderClient) ListOrders(ctx context.Context, q OrderQuery) (*OrderList, error) {
	var list OrderList
	if err := c.do(ctx, http.MethodGet, "/orders?"+q.values().Encode(), nil, &list); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return &list, nil
}

// GetPrecision returns the number of decimals the server rounds to.
func (c *OrderClient) GetPrecision(ctx context.Context) (int, error) {
	var result struct {
		Decimals int `json:"decimals"`
	}
	if err := c.do(ctx, http.MethodGet, "/config/precision", nil, &result); err != nil {
		return 0, fmt.Errorf("getting precision: %w", err)
	}
	return result.Decimals, nil
}

// SetPrecision changes the number of decimals the server rounds to.
func (c *OrderClient) SetPrecision(ctx context.Context, decimals int) (int, error) {
	body := struct {
		Decimals int `json:"decimals"`
	}{Decimals: decimals}

	var result struct {
		Decimals int `json:"decimals"`
	}
	if err := c.do(ctx, http.MethodPost, "/config/precision", body, &result); err != nil {
		return 0, fmt.Errorf("setting precision: %w", err)
	}
	return result.Decimals, nil
}

func (c *OrderClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error *APIError `json:"error"`
		}
		envelope.Error = apiErr
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || apiErr.Code == "" {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (q OrderQuery) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("stock", q.Stock)
	set("userId", q.UserID)
	set("idempotencyKey", q.IdempotencyKey)
	set("status", q.Status)
	set("type", q.Type)
	if q.OrderID > 0 {
		v.Set("orderId", strconv.FormatInt(q.OrderID, 10))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}
