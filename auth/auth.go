package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/viant/afs/url"
	"github.com/viant/hubbridge/fault"
)

const (
	// DefaultBaseURL is used when no base address is configured.
	DefaultBaseURL = "http://localhost:3006"
	// Path is the token exchange sub-path.
	Path = "auth"

	op = "authenticate"
)

var (
	errMissingCredential = errors.New("long-lived credential is required")
	errMissingToken      = errors.New("response does not contain a session token")
)

type (
	exchangeRequest struct {
		Token string `json:"token"`
	}

	exchangeResponse struct {
		Token *string `json:"token"`
	}
)

// Authenticator performs the credential exchange
type Authenticator struct {
	client *http.Client
	logger zerolog.Logger
}

// Authenticate exchanges credential for a session credential at <baseURL>/auth.
func (a *Authenticator) Authenticate(ctx context.Context, credential, baseURL string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", fault.New(fault.KindConfiguration, op, errMissingCredential)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	endpoint := url.Join(baseURL, Path)
	token, err := a.exchange(ctx, endpoint, credential)
	if err != nil {
		a.logger.Error().Err(err).Str("op", op).Str("kind", fault.KindAuthentication.String()).Str("url", endpoint).Msg("authentication failed")
		return "", fault.New(fault.KindAuthentication, op, err)
	}
	event := a.logger.Info().Str("url", endpoint)
	if expiry, ok := Expiry(token); ok {
		event = event.Time("expires", expiry)
	}
	event.Msg("authenticated")
	return token, nil
}

func (a *Authenticator) exchange(ctx context.Context, endpoint, credential string) (string, error) {
	payload, err := json.Marshal(&exchangeRequest{Token: credential})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	var result exchangeResponse
	if err = json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("invalid response (status %d): %w", resp.StatusCode, err)
	}
	if result.Token == nil || *result.Token == "" {
		return "", fmt.Errorf("%w (status %d)", errMissingToken, resp.StatusCode)
	}
	return *result.Token, nil
}

// New creates an authenticator
func New(options ...Option) *Authenticator {
	ret := &Authenticator{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	if ret.client == nil {
		ret.client = &http.Client{}
	}
	return ret
}
