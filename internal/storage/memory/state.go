// Package memory keeps visitor state in process memory. Nothing survives a restart,
// so it is meant for local development and tests.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"hotel_site/internal/adapters/observability"
)

type State struct {
	mu   sync.RWMutex
	recs map[string][]byte
}

func New() *State { return &State{recs: map[string][]byte{}} }

func key(visitorID, namespace string) string { return namespace + ":" + visitorID }

func (s *State) Load(_ context.Context, visitorID, namespace string, dst any) (bool, error) {
	s.mu.RLock()
	b, ok := s.recs[key(visitorID, namespace)]
	s.mu.RUnlock()
	if !ok {
		observability.ObserveState("memory", namespace, "miss")
		return false, nil
	}
	observability.ObserveState("memory", namespace, "hit")
	return true, json.Unmarshal(b, dst)
}

// Save stores the JSON encoding, so callers never share memory with the store.
func (s *State) Save(_ context.Context, visitorID, namespace string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.recs[key(visitorID, namespace)] = b
	s.mu.Unlock()
	observability.ObserveState("memory", namespace, "save")
	return nil
}
