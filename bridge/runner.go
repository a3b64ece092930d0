package bridge

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/viant/hubbridge/logging"
)

// Run parses args and the environment, then runs the bridge until stdin closes or a signal arrives.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, options, WithLogger(NewLogger(options)))
}

// Serve connects and serves; the upstream session is closed before it returns.
func Serve(ctx context.Context, options *Options, opts ...Option) error {
	service, err := New(ctx, options, opts...)
	if err != nil {
		return err
	}
	defer service.Close()
	return service.Serve(ctx)
}

// NewLogger creates the stderr logger tagged with a per-process instance id
func NewLogger(options *Options) zerolog.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(options.LogLevel)
	cfg.Pretty = options.PrettyLog
	return logging.New(cfg).With().Str("instance", uuid.New().String()).Logger()
}
