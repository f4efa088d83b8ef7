// Package mocks provides an in-memory tracer for tests. Spans are not exported, only their errors are kept.
package mocks

import (
	"context"
	"rental/infras/otel"
	"sync"
)

// Recorder implements otel.Otel and remembers every error traced through its scopes.
type Recorder struct {
	mu     sync.Mutex
	errors []error
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, &scope{recorder: r}
}

// Errors returns the traced errors in the order they were recorded.
func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) AddEvent(string) {}

func (s *scope) SetAttribute(string, any) {}

func (s *scope) SetAttributes(map[string]any) {}

func (s *scope) TraceError(err error) {
	if err == nil {
		return
	}

	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.errors = append(s.recorder.errors, err)
}

func (s *scope) TraceIfError(err error) {
	s.TraceError(err)
}
