// Package client is a typed HTTP client for the /cliente API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zhouzirui/cliente-api/internal/model/customer"
)

var (
	// ErrNotFound is returned when GET /cliente/{id} answers 404.
	ErrNotFound = errors.New("customer not found")
	// ErrNotModified is returned when PUT or DELETE answers 304.
	ErrNotModified = errors.New("customer not modified")
)

// StatusError carries an unexpected response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// Client talks to a running server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client rooted at baseURL, e.g. "http://localhost:8080/rest".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns every customer, or the ones matching q when it is not empty.
func (c *Client) List(ctx context.Context, q customer.Criteria) ([]customer.Customer, error) {
	values := url.Values{}
	if q.ID != "" {
		values.Set("clienteId", q.ID)
	}
	if q.Name != "" {
		values.Set("nome", q.Name)
	}
	if q.NationalID != "" {
		values.Set("cpf", q.NationalID)
	}
	path := "/cliente"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return []customer.Customer{}, nil
	case http.StatusOK:
		var items []customer.Customer
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			return nil, fmt.Errorf("decode customers: %w", err)
		}
		return items, nil
	default:
		return nil, statusError(resp)
	}
}

// Get fetches a single customer.
func (c *Client) Get(ctx context.Context, id string) (customer.Customer, error) {
	resp, err := c.do(ctx, http.MethodGet, "/cliente/"+url.PathEscape(id), nil)
	if err != nil {
		return customer.Customer{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out customer.Customer
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return customer.Customer{}, fmt.Errorf("decode customer: %w", err)
		}
		return out, nil
	case http.StatusNotFound:
		return customer.Customer{}, ErrNotFound
	default:
		return customer.Customer{}, statusError(resp)
	}
}

// Insert posts a new customer and returns the server's confirmation.
func (c *Client) Insert(ctx context.Context, cust customer.Customer) (string, error) {
	return c.send(ctx, http.MethodPost, "/cliente", &cust)
}

// Update replaces name and cpf of an existing customer.
func (c *Client) Update(ctx context.Context, cust customer.Customer) (string, error) {
	return c.send(ctx, http.MethodPut, "/cliente", &cust)
}

// Delete removes a customer.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	return c.send(ctx, http.MethodDelete, "/cliente/"+url.PathEscape(id), nil)
}

func (c *Client) send(ctx context.Context, method, path string, body *customer.Customer) (string, error) {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read response: %w", err)
		}
		return string(msg), nil
	case http.StatusNotModified:
		return "", ErrNotModified
	default:
		return "", statusError(resp)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body *customer.Customer) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode customer: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Status: resp.StatusCode, Body: string(body)}
}
