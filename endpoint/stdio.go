package endpoint

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/jsonrpc"
	transportbase "github.com/viant/jsonrpc/transport/base"
	"github.com/viant/jsonrpc/transport/server/base"
)

const sessionKey = "stdio"

// Server reads newline framed JSON-RPC messages and serves every request on its own goroutine,
// so a slow upstream round trip never blocks reading the next message. Writes are serialized by
// the session.
type Server struct {
	endpoint *Endpoint
	handler  *base.Handler
	session  *base.Session
	reader   *bufio.Reader
	ctx      context.Context
	pending  sync.WaitGroup
}

// ListenAndServe serves until the reader is exhausted or the context is done. Requests still in
// flight when the input ends are cancelled and awaited.
func (s *Server) ListenAndServe() error {
	defer s.drain()
	for {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		line, err := s.reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			s.dispatch(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (s *Server) dispatch(line []byte) {
	if transportbase.MessageType(line) != jsonrpc.MessageTypeRequest {
		s.handler.HandleMessage(s.ctx, s.session, line, nil)
		return
	}
	request := &jsonrpc.Request{}
	if err := json.Unmarshal(line, request); err != nil {
		s.session.SendError(s.ctx, jsonrpc.NewParsingError(fmt.Sprintf("failed to parse: %v", err), line))
		return
	}
	// the request is tracked before the next line is read so that a following cancellation finds it
	key := requestKey(request.Id)
	ctx, cancel := context.WithCancel(context.WithValue(s.ctx, jsonrpc.RequestIdKey, request.Id))
	s.endpoint.track(key, cancel)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer s.endpoint.release(key)
		s.session.Touch()
		response := &jsonrpc.Response{Id: request.Id, Jsonrpc: request.Jsonrpc}
		s.session.Handler.Serve(ctx, request, response)
		s.session.SendResponse(ctx, response)
	}()
}

func (s *Server) drain() {
	s.endpoint.active.Range(func(key string, cancel context.CancelFunc) bool {
		cancel()
		return true
	})
	s.pending.Wait()
}

func frameLine(data []byte) []byte {
	if bytes.HasSuffix(data, []byte{'\n'}) {
		return data
	}
	return append(data, '\n')
}

// errorLogger routes transport level errors to zerolog
type errorLogger struct {
	logger zerolog.Logger
}

func (l *errorLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}
