package logmeinapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Credentials{Username: "ops", Password: "pw"}, WithBaseURL(srv.URL+"/public-api/v1/"))
}

func TestCredentialsHeader(t *testing.T) {
	c := Credentials{Username: "user", Password: "pass"}
	assert.Equal(t, "Basic dXNlcjpwYXNz", c.Header())
}

func TestListHosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/public-api/v1/hosts", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ops", user)
		assert.Equal(t, "pw", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"hosts":[{"id":1,"description":"A","isOnline":true},{"id":2,"description":"B"}]}`)
	})

	hosts, err := c.ListHosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Host{{ID: 1, Description: "A"}, {ID: 2, Description: "B"}}, hosts)
}

func TestListHostsUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad credentials"}`, http.StatusUnauthorized)
	})

	hosts, err := c.ListHosts(context.Background())
	require.Error(t, err)
	assert.Nil(t, hosts)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Body, "bad credentials")
}

func TestListHostsMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>maintenance</html>`)
	})

	_, err := c.ListHosts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	assert.Equal(t, http.StatusOK, StatusOf(err))

	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Contains(t, decErr.Body, "maintenance")
}

func TestListHostsWithoutHostsArray(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "empty body", body: "", want: ErrEmptyBody},
		{name: "whitespace body", body: "  \n", want: ErrEmptyBody},
		{name: "empty object", body: `{}`, want: ErrMissingHosts},
		{name: "null", body: `null`, want: ErrMissingHosts},
		{name: "null hosts", body: `{"hosts":null}`, want: ErrMissingHosts},
		{name: "error object", body: `{"error":"account locked"}`, want: ErrMissingHosts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.body)
			})

			hosts, err := c.ListHosts(context.Background())
			require.Error(t, err)
			assert.Nil(t, hosts)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "list hosts: decode response")
			assert.Equal(t, http.StatusOK, StatusOf(err))
		})
	}
}

func TestListHostsEmptyAccount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hosts":[]}`)
	})

	hosts, err := c.ListHosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hosts)
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{}
	c := NewClient(Credentials{}, WithHTTPClient(shared), WithTimeout(3*time.Second))

	assert.Zero(t, shared.Timeout)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
}

func TestListHostsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Credentials{}, WithBaseURL(url), WithTimeout(time.Second))
	_, err := c.ListHosts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestDeleteHosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/public-api/v1/hosts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Basic b3BzOnB3", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"hostIds":[1,2]}`, string(body))
		w.WriteHeader(http.StatusNoContent)
	})

	status, err := c.DeleteHosts(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestDeleteHostsEmptySendsNothing(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	status, err := c.DeleteHosts(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, status)
	assert.Zero(t, calls)
}

func TestDeleteHostsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	status, err := c.DeleteHosts(context.Background(), []int64{7})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Contains(t, err.Error(), "boom")
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListHosts(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
