package jokes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const DefaultURL = "https://api.chucknorris.io/jokes/random"

// ErrNoJoke 响应中没有 value 字段或为 null
var ErrNoJoke = errors.New("no joke in response")

type Config struct {
	URL        string
	HTTPClient *http.Client
}

// Client 公共笑话 API
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(c *Config) *Client {
	if c == nil {
		c = &Config{}
	}
	client := &Client{url: c.URL, httpClient: c.HTTPClient}
	if client.url == "" {
		client.url = DefaultURL
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	return client
}

// Random 返回 value 字段，空串原样返回，字段缺失时返回 ErrNoJoke
func (c *Client) Random(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("http request failed with status code %d", resp.StatusCode)
	}
	var joke struct {
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(body, &joke); err != nil {
		return "", fmt.Errorf("decode joke response: %w", err)
	}
	if joke.Value == nil {
		return "", ErrNoJoke
	}
	return *joke.Value, nil
}
