package emailjs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCredentials() Credentials {
	return Credentials{ServiceID: "service_x", TemplateID: "template_y", PublicKey: "pub"}
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{Credentials: Credentials{ServiceID: "s", TemplateID: "t"}})
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSendPostsTemplatePayload(t *testing.T) {
	var (
		got         map[string]any
		method      string
		path        string
		contentType string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	creds := testCredentials()
	creds.AccessToken = "private"
	client, err := New(Config{Endpoint: server.URL + "/", Credentials: creds})
	require.NoError(t, err)

	err = client.Send(context.Background(), map[string]any{
		"name":    "Jane",
		"email":   "jane@x.com",
		"message": "Hello",
	})
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "/api/v1.0/email/send", path)
	require.Equal(t, "application/json", contentType)
	require.Equal(t, "service_x", got["service_id"])
	require.Equal(t, "template_y", got["template_id"])
	require.Equal(t, "pub", got["user_id"])
	require.Equal(t, "private", got["accessToken"])
	require.Equal(t, map[string]any{"name": "Jane", "email": "jane@x.com", "message": "Hello"}, got["template_params"])
}

func TestSendOmitsEmptyAccessToken(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client, err := New(Config{Endpoint: server.URL, Credentials: testCredentials()})
	require.NoError(t, err)

	resp, err := client.SendTemplate(context.Background(), "service_other", "template_other", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, "OK", resp.Text)
	require.Equal(t, "service_other", got["service_id"])
	require.NotContains(t, got, "accessToken")
}

func TestSendReturnsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The Public Key is invalid\n"))
	}))
	defer server.Close()

	client, err := New(Config{Endpoint: server.URL, Credentials: testCredentials()})
	require.NoError(t, err)

	err = client.Send(context.Background(), nil)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, http.StatusBadRequest, perr.Status)
	require.Equal(t, "The Public Key is invalid", perr.Text)
}

func TestSendReportsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client, err := New(Config{Endpoint: endpoint, Credentials: testCredentials()})
	require.NoError(t, err)

	err = client.Send(context.Background(), nil)
	require.Error(t, err)
	var perr *Error
	require.False(t, errors.As(err, &perr))
}
