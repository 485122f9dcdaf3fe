// Package mapper resolves schema declarations against a database.
//
// A Session binds an adapter to a schema.Registry. Records are fetched by
// primary key or filter and relations are traversed lazily: One and Many
// return a Lazy that queries only when forced. Typed access to model structs
// goes through the generic functions Get, All, BelongsTo, HasOne and HasMany.
package mapper

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/leapstack-labs/ensvar/pkg/adapter"
	"github.com/leapstack-labs/ensvar/pkg/dialect"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// Session is the explicit handle every query and traversal goes through.
// It holds no mutable state and is safe for concurrent use.
type Session struct {
	id       string
	adapter  adapter.Adapter
	registry *schema.Registry
	dialect  *dialect.Dialect
	logger   *slog.Logger
	memoize  bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for statement logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID sets the session id attached to log lines.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithMemoize makes relation lazies returned by the session cache their value.
func WithMemoize(enabled bool) Option {
	return func(s *Session) {
		s.memoize = enabled
	}
}

// NewSession creates a session over a connected adapter.
func NewSession(adp adapter.Adapter, reg *schema.Registry, opts ...Option) (*Session, error) {
	if adp == nil {
		return nil, errors.New("mapper: adapter is required")
	}
	if reg == nil {
		return nil, errors.New("mapper: schema registry is required")
	}

	d := adp.Dialect()
	if d == nil {
		d = dialect.Default()
	}
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}

	s := &Session{
		id:       uuid.NewString(),
		adapter:  adp,
		registry: reg,
		dialect:  d,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session", s.id))
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Registry returns the schema registry.
func (s *Session) Registry() *schema.Registry { return s.registry }

// Adapter returns the underlying adapter.
func (s *Session) Adapter() adapter.Adapter { return s.adapter }

// Dialect returns the dialect used to build statements.
func (s *Session) Dialect() *dialect.Dialect { return s.dialect }
