package logger

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Entry is one record kept by a Recorder.
type Entry struct {
	Level   slog.Level     `json:"level"`
	Message string         `json:"message"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Recorder is a slog.Handler keeping records at or above a level in memory.
// The preview service uses it to return template diagnostics to the caller.
type Recorder struct {
	min    slog.Level
	attrs  []slog.Attr
	groups []string
	state  *recorderState
}

type recorderState struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns a handler keeping records at level min and above.
func NewRecorder(min slog.Level) *Recorder {
	return &Recorder{min: min, state: &recorderState{}}
}

// Entries returns a copy of the records kept so far.
func (r *Recorder) Entries() []Entry {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return slices.Clone(r.state.entries)
}

func (r *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.min
}

func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	e := Entry{Level: rec.Level, Message: rec.Message}
	for _, a := range r.attrs {
		e.add(a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		if !a.Equal(slog.Attr{}) {
			e.add(r.qualify(a))
		}
		return true
	})

	r.state.mu.Lock()
	r.state.entries = append(r.state.entries, e)
	r.state.mu.Unlock()
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *r
	c.attrs = slices.Clip(r.attrs)
	for _, a := range attrs {
		c.attrs = append(c.attrs, r.qualify(a))
	}
	return &c
}

func (r *Recorder) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}
	c := *r
	c.groups = append(slices.Clip(r.groups), name)
	return &c
}

// qualify prefixes the key of a with the open groups.
func (r *Recorder) qualify(a slog.Attr) slog.Attr {
	for i := len(r.groups) - 1; i >= 0; i-- {
		a.Key = r.groups[i] + "." + a.Key
	}
	return a
}

func (e *Entry) add(a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	if e.Attrs == nil {
		e.Attrs = make(map[string]any)
	}
	e.Attrs[a.Key] = a.Value.Resolve().Any()
}
