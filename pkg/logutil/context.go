package logutil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mitchellh/mapstructure"
)

type contextKey string

const contextKeyScope contextKey = "scope"

// scope is stored in the context. It keeps the actual logger together with
// the chain of subsystem frames, so nested Start calls can rebuild the logger
// with the full tracing path.
type scope struct {
	frames []frame
	log    *slog.Logger
}

type frame struct {
	id        string
	subsystem string
}

func (s scope) subsystem() string {
	parts := []string{"/"}

	for _, f := range s.frames {
		parts = append(parts, f.subsystem)
	}

	return path.Join(parts...)
}

func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Get extracts the current logger from the given context. It returns the
// default logger, if the context does not carry one.
func Get(ctx context.Context) *slog.Logger {
	s, ok := ctx.Value(contextKeyScope).(scope)
	if !ok {
		return slog.Default()
	}

	return s.log
}

// GetSubsystem extracts the subsystem path from the given context.
func GetSubsystem(ctx context.Context) string {
	s, ok := ctx.Value(contextKeyScope).(scope)
	if !ok {
		return ""
	}

	return s.subsystem()
}

// Start opens a new subsystem frame: it generates a fresh trace ID, rebuilds
// the logger with the trace IDs of all frames opened so far and stores the
// result in the returned context.
func Start(ctx context.Context, subsystem string, opts ...ContextOption) context.Context {
	s, ok := ctx.Value(contextKeyScope).(scope)
	if !ok {
		s = scope{}
	}

	s.frames = append(s.frames, frame{
		id:        newTraceID(),
		subsystem: subsystem,
	})

	s.log = slog.Default()
	ids := make([]string, 0, len(s.frames))

	for _, f := range s.frames {
		s.log = s.log.With(fmt.Sprintf("trace-id-%s", slug.Make(f.subsystem)), f.id)
		ids = append(ids, f.id)
	}

	s.log = s.log.With(
		"subsystem", s.subsystem(),
		"trace-id", strings.Join(ids, "-"),
	)

	for _, opt := range opts {
		s = opt(s)
	}

	return context.WithValue(ctx, contextKeyScope, s)
}

// Update creates a new context with an updated logger. It does nothing if
// the context was never started.
func Update(ctx context.Context, opts ...ContextOption) context.Context {
	s, ok := ctx.Value(contextKeyScope).(scope)
	if !ok {
		return ctx
	}

	for _, opt := range opts {
		s = opt(s)
	}

	return context.WithValue(ctx, contextKeyScope, s)
}

// ContextOption modifies the logger stored in a context.
type ContextOption func(scope) scope

// Field is a ContextOption that adds a single field to the logger.
func Field(key string, value any) ContextOption {
	return func(s scope) scope {
		s.log = s.log.With(key, value)
		return s
	}
}

// WithField is a shortcut for Update with a single Field option.
func WithField(ctx context.Context, key string, value any) context.Context {
	return Update(ctx, Field(key, value))
}

// Fields is a ContextOption that adds the given fields to the logger.
func Fields(fields map[string]any) ContextOption {
	return func(s scope) scope {
		attrs := make([]any, 0, len(fields)*2)
		for k, v := range fields {
			attrs = append(attrs, k, v)
		}
		s.log = s.log.With(attrs...)
		return s
	}
}

// WithFields is a shortcut for Update with a single Fields option.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	return Update(ctx, Fields(fields))
}

// FromStruct converts any struct into a map[string]any for use as log
// fields. Field names can be customized with the logfield annotation:
//
//	type Operation struct {
//	    ID   string `logfield:"operation-id"`
//	    Name string `logfield:"operation-name"`
//	}
func FromStruct(s any) map[string]any {
	fields := map[string]any{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "logfield",
		Result:  &fields,
	})
	if err != nil {
		return map[string]any{"logfield-error": err}
	}

	err = dec.Decode(s)
	if err != nil {
		return map[string]any{"logfield-error": err}
	}

	return fields
}

// PrettyPrint renders the given value in a readable form. It tries JSON
// first and falls back to fmt formatting.
func PrettyPrint(v any) string {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}

	return string(raw)
}
