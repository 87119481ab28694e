package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eringen/blogpost/blog"
)

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// authResponse is a GoTrue session. Signup without auto-confirm returns the
// bare user instead, which lands in the embedded fields.
type authResponse struct {
	AccessToken string    `json:"access_token"`
	User        *authUser `json:"user"`
	authUser
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register signs up a new user. When the project auto-confirms, the
// returned session is kept for later calls.
func (c *Client) Register(ctx context.Context, email, password string) (blog.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", nil, credentials{email, password}, &resp, nil); err != nil {
		return blog.User{}, err
	}
	return c.acceptSession(resp)
}

// Login exchanges email and password for a session.
func (c *Client) Login(ctx context.Context, email, password string) (blog.User, error) {
	q := url.Values{"grant_type": {"password"}}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token", q, credentials{email, password}, &resp, nil); err != nil {
		return blog.User{}, err
	}
	return c.acceptSession(resp)
}

// Logout revokes the session. The token is only forgotten on success.
func (c *Client) Logout(ctx context.Context) error {
	if c.token() == "" {
		return nil
	}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil, nil); err != nil {
		return err
	}
	c.setToken("")
	return nil
}

func (c *Client) acceptSession(resp authResponse) (blog.User, error) {
	if resp.AccessToken != "" {
		u, err := c.identityFromToken(resp.AccessToken)
		if err != nil {
			return blog.User{}, err
		}
		c.setToken(resp.AccessToken)
		return u, nil
	}
	au := resp.User
	if au == nil {
		au = &resp.authUser
	}
	if au.ID == "" {
		return blog.User{}, &blog.BackendError{Message: "auth response has no user"}
	}
	return blog.User{ID: au.ID, Email: au.Email}, nil
}

// identityFromToken reads sub and email from the access token's claims.
func (c *Client) identityFromToken(raw string) (blog.User, error) {
	claims := jwt.MapClaims{}
	if c.cfg.JWTSecret != "" {
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return []byte(c.cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			return blog.User{}, &blog.BackendError{Message: fmt.Sprintf("invalid access token: %v", err)}
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
			return blog.User{}, &blog.BackendError{Message: fmt.Sprintf("invalid access token: %v", err)}
		}
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return blog.User{}, &blog.BackendError{Message: "access token has no subject"}
	}
	email, _ := claims["email"].(string)
	return blog.User{ID: sub, Email: email}, nil
}

var _ blog.Backend = (*Client)(nil)
