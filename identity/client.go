package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client is the REST implementation of Provider against the auth service's
// admin API. Requests carry the service key; the admin surface is read-only
// from our side.
type Client struct {
	baseURL    string
	serviceKey string
	keyHeader  string
	http       *http.Client
}

func NewClient() (*Client, error) {
	baseURL := strings.TrimSpace(os.Getenv("IDENTITY_API_BASE_URL"))
	if baseURL == "" {
		return nil, errors.New("IDENTITY_API_BASE_URL is required")
	}
	serviceKey := strings.TrimSpace(os.Getenv("IDENTITY_SERVICE_KEY"))
	if serviceKey == "" {
		return nil, errors.New("IDENTITY_SERVICE_KEY is required")
	}
	keyHeader := strings.TrimSpace(os.Getenv("IDENTITY_SERVICE_KEY_HEADER"))
	if keyHeader == "" {
		keyHeader = "Authorization"
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		keyHeader:  keyHeader,
		http:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *Client) UserExists(ctx context.Context, id string) (bool, error) {
	var out User
	err := c.getJSON(ctx, "/admin/users/"+url.PathEscape(id), nil, &out)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	params := url.Values{}
	params.Set("email", email)

	var out struct {
		Users []User `json:"users"`
	}
	if err := c.getJSON(ctx, "/admin/users", params, &out); err != nil {
		return nil, err
	}
	for i := range out.Users {
		if strings.EqualFold(out.Users[i].Email, email) {
			return &out.Users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.keyHeader == "Authorization" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	} else {
		req.Header.Set(c.keyHeader, c.serviceKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("identity api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, dest)
}
