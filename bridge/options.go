package bridge

import (
	"strings"

	"github.com/viant/hubbridge/auth"
	"github.com/viant/hubbridge/fault"
)

const (
	// TokenEnv holds the long-lived resource hub credential.
	TokenEnv = "RESOURCE_HUB_TOKEN"
	// URLEnv holds the resource hub base address.
	URLEnv = "RESOURCE_HUB_URL"
)

// Options represents bridge command line and environment options
type Options struct {
	Token     string `short:"t" long:"token" env:"RESOURCE_HUB_TOKEN" description:"resource hub credential"`
	URL       string `short:"u" long:"url" env:"RESOURCE_HUB_URL" default:"http://localhost:3006" description:"resource hub url"`
	LogLevel  string `short:"l" long:"log-level" env:"RESOURCE_HUB_LOG_LEVEL" default:"info" description:"log level: debug, info, warn, error"`
	PrettyLog bool   `long:"pretty-log" description:"human readable log output"`
}

// Validate checks that the credential is present and defaults the base address
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Token) == "" {
		return fault.Errorf(fault.KindConfiguration, "configure", "%v is required", TokenEnv)
	}
	if strings.TrimSpace(o.URL) == "" {
		o.URL = auth.DefaultBaseURL
	}
	return nil
}
