package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrpay/internal/apperr"
	"hrpay/internal/requestctx"
)

type Event struct {
	ID         string          `json:"id"`
	Actor      string          `json:"actor"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	EntityID   string
}

func (f Filter) match(evt Event) bool {
	if f.Action != "" && evt.Action != f.Action {
		return false
	}
	if f.EntityType != "" && evt.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != "" && evt.EntityID != f.EntityID {
		return false
	}
	return true
}

// Recorder is what domain services depend on.
type Recorder interface {
	Record(ctx context.Context, action, entityType, entityID string, before, after any) error
}

// Service appends events to a JSON-lines file.
type Service struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func New(path string) *Service {
	return &Service{path: path, now: time.Now}
}

func (s *Service) Record(ctx context.Context, action, entityType, entityID string, before, after any) error {
	evt := Event{
		ID:         uuid.NewString(),
		Actor:      requestctx.GetActor(ctx),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestctx.GetRequestID(ctx),
		CreatedAt:  s.now().UTC(),
	}
	var err error
	if evt.Before, err = marshal(before); err != nil {
		return err
	}
	if evt.After, err = marshal(after); err != nil {
		return err
	}
	line, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperr.Storage("mkdir", s.path, err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperr.Storage("open", s.path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return apperr.Storage("append", s.path, err)
	}
	return nil
}

// List returns matching events, newest first.
func (s *Service) List(ctx context.Context, filter Filter, limit int) ([]Event, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("open", s.path, err)
	}
	defer f.Close()

	var out []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			return nil, apperr.Storage("decode", s.path, err)
		}
		if filter.match(evt) {
			out = append(out, evt)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.Storage("read", s.path, err)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(context.Context, string, string, string, any, any) error { return nil }

func marshal(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
