package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/blogpost/blog"
)

const (
	testAnonKey = "anon-key"
	testSecret  = "super-secret-jwt-token"
)

func signToken(t *testing.T, sub, email string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub, "email": email})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{URL: srv.URL + "/", AnonKey: testAnonKey, JWTSecret: testSecret, HTTPClient: srv.Client()})
}

func TestLoginReadsIdentityFromToken(t *testing.T) {
	token := signToken(t, "user-1", "ada@example.com")
	var mu sync.Mutex
	var gotAuth []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		mu.Unlock()
		switch r.URL.Path {
		case "/auth/v1/token":
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			assert.Equal(t, testAnonKey, r.Header.Get("apikey"))
			var body credentials
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ada@example.com", body.Email)
			json.NewEncoder(w).Encode(map[string]any{"access_token": token, "user": map[string]string{"id": "user-1"}})
		case blogsPath:
			w.Write([]byte("[]"))
		}
	})

	u, err := c.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, blog.User{ID: "user-1", Email: "ada@example.com"}, u)

	_, err = c.ListPosts(context.Background())
	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, gotAuth, 2)
	assert.Equal(t, "Bearer "+testAnonKey, gotAuth[0])
	assert.Equal(t, "Bearer "+token, gotAuth[1])
}

func TestLoginErrorMessageVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	var be *blog.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Invalid login credentials", be.Message)
}

func TestLoginRejectsForgedToken(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin"})
	raw, err := forged.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": raw})
	})

	_, err = c.Login(context.Background(), "ada@example.com", "secret")
	require.Error(t, err)
	assert.Empty(t, c.token())
}

func TestRegisterWithoutSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.Write([]byte(`{"id":"user-2","email":"grace@example.com"}`))
	})

	u, err := c.Register(context.Background(), "grace@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, blog.User{ID: "user-2", Email: "grace@example.com"}, u)
	assert.Empty(t, c.token())
}

func TestLogoutFailureKeepsToken(t *testing.T) {
	token := signToken(t, "user-1", "ada@example.com")
	var fail atomic.Bool
	fail.Store(true)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			json.NewEncoder(w).Encode(map[string]any{"access_token": token})
		case "/auth/v1/logout":
			if fail.Load() {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`{"msg":"network error"}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	})
	_, err := c.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	err = c.Logout(context.Background())
	require.EqualError(t, err, "network error")
	assert.Equal(t, token, c.token())

	fail.Store(false)
	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.token())
}

func TestPostRoundTrips(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, blogsPath, r.URL.Path)
		q := r.URL.Query()
		switch r.Method {
		case http.MethodGet:
			if q.Get("id") == "eq.7" {
				w.Write([]byte(`[{"id":7,"title":"t","content":"c","user_id":"u","email":"e","created_at":"2024-01-01T10:00:00.123456+00:00"}]`))
				return
			}
			if q.Get("id") != "" {
				w.Write([]byte(`[]`))
				return
			}
			assert.Equal(t, "created_at.desc", q.Get("order"))
			w.Write([]byte(`[{"id":2,"title":"b","created_at":"2024-01-02T00:00:00Z"},{"id":1,"title":"a","created_at":"2024-01-01T00:00:00Z"}]`))
		case http.MethodPost:
			assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
			body, _ := io.ReadAll(r.Body)
			var rows []blog.NewPost
			assert.NoError(t, json.Unmarshal(body, &rows))
			if assert.Len(t, rows, 1) {
				assert.Equal(t, "u", rows[0].AuthorID)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`[{"id":9,"title":"new","content":"x","user_id":"u","email":"e","created_at":"2024-01-03T00:00:00Z"}]`))
		case http.MethodPatch:
			assert.Equal(t, "eq.9", q.Get("id"))
			var ch blog.PostChanges
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&ch))
			w.Write([]byte(`[{"id":9,"title":"` + ch.Title + `","user_id":"u","created_at":"2024-01-03T00:00:00Z"}]`))
		case http.MethodDelete:
			assert.Equal(t, "eq.9", q.Get("id"))
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].ID)

	p, err := c.GetPost(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "u", p.AuthorID)
	assert.False(t, p.CreatedAt.IsZero())

	_, err = c.GetPost(ctx, 8)
	assert.ErrorIs(t, err, blog.ErrNotFound)

	p, err = c.InsertPost(ctx, blog.NewPost{Title: "new", Content: "x", AuthorID: "u", AuthorEmail: "e"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)

	p, err = c.UpdatePost(ctx, 9, blog.PostChanges{Title: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", p.Title)

	require.NoError(t, c.DeletePost(ctx, 9))
}

func TestRowSecurityErrorIsSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":"42501","message":"new row violates row-level security policy for table \"blogs\""}`))
	})

	_, err := c.InsertPost(context.Background(), blog.NewPost{Title: "t"})
	require.EqualError(t, err, `new row violates row-level security policy for table "blogs"`)
}

func TestStatusTextWhenBodyIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := c.DeletePost(context.Background(), 1)
	require.EqualError(t, err, "503 Service Unavailable")
}
