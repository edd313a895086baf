// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/httputil"
	"github.com/pdiddy/blog-engine/internal/research"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// ErrSessionClosed is returned by Session methods called after Close.
var ErrSessionClosed = errors.New("agent session is closed")

type sessionState int

const (
	stateOpen sessionState = iota + 1
	stateClosed
)

// Session owns the network resources of one article request: an HTTP
// client with its own connection pool, the generation backend and the
// research coordinator built on that client. A Session is never reused and
// never shared between requests.
type Session struct {
	ID string

	state   sessionState
	client  *http.Client
	backend generate.Backend
	gen     *generate.Client
	coord   *research.Coordinator
	log     zerolog.Logger
}

// OpenSession builds a Session from cfg. Every resource acquired before a
// construction failure is released before returning.
func OpenSession(ctx context.Context, cfg types.Config, o options, log zerolog.Logger) (*Session, error) {
	id := uuid.NewString()
	log = log.With().Str("session", id).Logger()

	if cfg.HTTP.InsecureSkipVerify {
		log.Warn().Msg("TLS certificate verification is disabled for this session")
	}
	client := httputil.NewClient(cfg.HTTP)

	backend, err := o.backendFactory(ctx, cfg.Generation, client)
	if err != nil {
		httputil.CloseIdle(client)
		return nil, fmt.Errorf("creating generation backend: %w", err)
	}
	if backend == nil {
		log.Warn().Msg("no generation API key configured; content will be placeholder text")
	}

	s := &Session{
		ID:      id,
		state:   stateOpen,
		client:  client,
		backend: backend,
		gen:     generate.NewClient(backend, cfg.Generation.MaxAttempts, log),
		log:     log,
	}
	s.coord = o.coordinatorFactory(client, cfg, log)
	return s, nil
}

// Research gathers the research bundle for topic.
func (s *Session) Research(ctx context.Context, topic string) (types.ResearchBundle, error) {
	if s.state != stateOpen {
		return types.ResearchBundle{}, ErrSessionClosed
	}
	s.log.Info().Str("topic", topic).Msg("Researching topic...")
	return s.coord.Gather(ctx, topic), nil
}

// Generate runs one prompt through the session's generation client.
func (s *Session) Generate(ctx context.Context, prompt string) (generate.Result, error) {
	if s.state != stateOpen {
		return generate.Result{}, ErrSessionClosed
	}
	return s.gen.Generate(ctx, prompt), nil
}

// Close releases the session's connections and backend. It is safe to call
// more than once; only the first call does any work.
func (s *Session) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed

	httputil.CloseIdle(s.client)
	var err error
	if c, ok := s.backend.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			err = fmt.Errorf("closing generation backend: %w", cerr)
		}
	}
	s.log.Debug().Msg("session closed")
	return err
}
