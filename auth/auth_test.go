package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hubbridge/fault"
)

func newHub(t *testing.T, calls *int32, reply func(w http.ResponseWriter, credential string)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body := map[string]string{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		reply(w, body["token"])
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAuthenticator_Authenticate(t *testing.T) {
	var testCases = []struct {
		description string
		credential  string
		reply       func(w http.ResponseWriter, credential string)
		expect      string
		expectKind  fault.Kind
		expectCalls int32
	}{
		{
			description: "session token issued",
			credential:  "long-lived",
			reply: func(w http.ResponseWriter, credential string) {
				if credential != "long-lived" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				_, _ = w.Write([]byte(`{"token":"sess-123"}`))
			},
			expect:      "sess-123",
			expectCalls: 1,
		},
		{
			description: "non json body",
			credential:  "long-lived",
			reply: func(w http.ResponseWriter, credential string) {
				_, _ = w.Write([]byte(`<html>bad gateway</html>`))
			},
			expectKind:  fault.KindAuthentication,
			expectCalls: 1,
		},
		{
			description: "missing token field",
			credential:  "long-lived",
			reply: func(w http.ResponseWriter, credential string) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"invalid token"}`))
			},
			expectKind:  fault.KindAuthentication,
			expectCalls: 1,
		},
		{
			description: "empty token field",
			credential:  "long-lived",
			reply: func(w http.ResponseWriter, credential string) {
				_, _ = w.Write([]byte(`{"token":""}`))
			},
			expectKind:  fault.KindAuthentication,
			expectCalls: 1,
		},
		{
			description: "missing credential",
			credential:  " ",
			reply: func(w http.ResponseWriter, credential string) {
				_, _ = w.Write([]byte(`{"token":"sess-123"}`))
			},
			expectKind:  fault.KindConfiguration,
			expectCalls: 0,
		},
	}

	for _, testCase := range testCases {
		var calls int32
		hub := newHub(t, &calls, testCase.reply)
		authenticator := New()
		token, err := authenticator.Authenticate(context.Background(), testCase.credential, hub.URL)
		assert.Equal(t, testCase.expectCalls, atomic.LoadInt32(&calls), testCase.description)
		if testCase.expectKind != fault.KindUnknown {
			require.Error(t, err, testCase.description)
			assert.Equal(t, testCase.expectKind, fault.KindOf(err), testCase.description)
			assert.Empty(t, token, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, token, testCase.description)
	}
}

func TestAuthenticator_NoCaching(t *testing.T) {
	var calls int32
	hub := newHub(t, &calls, func(w http.ResponseWriter, credential string) {
		_, _ = w.Write([]byte(`{"token":"sess-123"}`))
	})
	authenticator := New(WithHTTPClient(hub.Client()))
	for i := 0; i < 2; i++ {
		_, err := authenticator.Authenticate(context.Background(), "long-lived", hub.URL)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestAuthenticator_TransportError(t *testing.T) {
	var calls int32
	hub := newHub(t, &calls, func(w http.ResponseWriter, credential string) {})
	baseURL := hub.URL
	hub.Close()
	_, err := New().Authenticate(context.Background(), "long-lived", baseURL)
	require.Error(t, err)
	assert.Equal(t, fault.KindAuthentication, fault.KindOf(err))
}

func TestExpiry(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expires),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	actual, ok := Expiry(token)
	assert.True(t, ok)
	assert.True(t, expires.Equal(actual))

	_, ok = Expiry("sess-123")
	assert.False(t, ok)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "hub"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, ok = Expiry(noExpiry)
	assert.False(t, ok)
}
