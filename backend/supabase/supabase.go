// Package supabase implements blog.Backend against a hosted Supabase
// project: GoTrue for auth and PostgREST for the blogs table.
//
// A Client carries the access token of one signed-in user, so the web tier
// creates one Client per browser session.
package supabase

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

	"github.com/golang/glog"

	"github.com/eringen/blogpost/blog"
)

// Config locates the project and holds its public API key.
type Config struct {
	URL     string // e.g. https://xyz.supabase.co
	AnonKey string

	// JWTSecret, when set, is used to verify access tokens (HS256).
	// Without it the claims are read unverified.
	JWTSecret string

	HTTPClient *http.Client
}

// Client talks to one Supabase project on behalf of one user.
type Client struct {
	cfg  Config
	http *http.Client

	mu          sync.Mutex
	accessToken string
}

// New returns a Client with no signed-in user.
func New(cfg Config) *Client {
	cfg.URL = strings.TrimSuffix(cfg.URL, "/")
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{cfg: cfg, http: hc}
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

func (c *Client) setToken(tok string) {
	c.mu.Lock()
	c.accessToken = tok
	c.mu.Unlock()
}

// errorBody covers the error shapes returned by GoTrue and PostgREST.
type errorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e errorBody) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// do sends a request and decodes a 2xx JSON response into out (if non-nil).
// Any other status becomes a *blog.BackendError with the service's message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, header http.Header) error {
	u := c.cfg.URL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.cfg.AnonKey)
	bearer := c.token()
	if bearer == "" {
		bearer = c.cfg.AnonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &blog.BackendError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &blog.BackendError{Message: err.Error()}
	}
	glog.V(2).Infof("[supabase] %s %s -> %d", method, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.text()
		if msg == "" {
			msg = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return &blog.BackendError{Message: msg}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &blog.BackendError{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}
