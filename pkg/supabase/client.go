// Package supabase provides a thin client for the Supabase PostgREST and
// auth APIs. All table operations authenticate with the service key; the
// server enforces per-user scoping through query filters.
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// User represents a Supabase auth user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NewClient creates a new Supabase client
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// do builds and executes a PostgREST request, returning the response body.
func (c *Client) do(method, table string, query map[string]interface{}, payload interface{}, prefer string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// Query executes a filtered select on a table
func (c *Client) Query(table string, query map[string]interface{}) ([]byte, error) {
	return c.do(http.MethodGet, table, query, nil, "")
}

// Insert inserts a record and returns the created representation
func (c *Client) Insert(table string, data interface{}) ([]byte, error) {
	return c.do(http.MethodPost, table, nil, data, "return=representation")
}

// Update patches the record with the given id
func (c *Client) Update(table, id string, data interface{}) ([]byte, error) {
	query := map[string]interface{}{"id": fmt.Sprintf("eq.%s", id)}
	return c.do(http.MethodPatch, table, query, data, "return=representation")
}

// Upsert inserts or updates a record. onConflict names the columns that
// identify a duplicate (e.g. "user_id,streak_type").
func (c *Client) Upsert(table string, data interface{}, onConflict string) ([]byte, error) {
	query := map[string]interface{}{"on_conflict": onConflict}
	return c.do(http.MethodPost, table, query, data, "return=representation,resolution=merge-duplicates")
}

// Delete deletes the record with the given id
func (c *Client) Delete(table, id string) error {
	query := map[string]interface{}{"id": fmt.Sprintf("eq.%s", id)}
	_, err := c.do(http.MethodDelete, table, query, nil, "")
	return err
}

// DeleteWhere deletes all records matching the filter
func (c *Client) DeleteWhere(table string, query map[string]interface{}) error {
	_, err := c.do(http.MethodDelete, table, query, nil, "")
	return err
}

// VerifyToken verifies a user JWT with the Supabase auth API and returns
// the authenticated user
func (c *Client) VerifyToken(token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}
