package state

import (
	"github.com/agentx-labs/plugx/internal/logging"
	"github.com/sirupsen/logrus"
)

// Store is the in-memory state map of one extension, bound to a backend.
// It is not safe for concurrent use.
type Store struct {
	name    string
	backend Backend
	data    map[string]interface{}
	log     logrus.FieldLogger
}

// Open loads the state for name. A load failure is logged and the store
// starts empty; the next successful flush overwrites whatever was on disk.
func Open(name string, backend Backend, log logrus.FieldLogger) *Store {
	s := &Store{
		name:    name,
		backend: backend,
		data:    map[string]interface{}{},
		log:     logging.OrDiscard(log).WithField("plugin", name),
	}
	if backend == nil {
		return s
	}
	data, err := backend.Load(name)
	if err != nil {
		s.log.WithError(err).Warn("state load failed, starting empty")
		return s
	}
	s.data = data
	return s
}

// Get returns the value for key, or def when it is absent.
func (s *Store) Get(key string, def interface{}) interface{} {
	if v, ok := s.data[key]; ok {
		return v
	}
	return def
}

// Set stores value under key and flushes the whole map. The in-memory value
// is kept even when the flush fails.
func (s *Store) Set(key string, value interface{}) error {
	s.data[key] = value
	return s.Flush()
}

// Delete removes key and flushes.
func (s *Store) Delete(key string) error {
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.Flush()
}

// Flush writes the whole map to the backend.
func (s *Store) Flush() error {
	if s.backend == nil {
		return nil
	}
	if err := s.backend.Save(s.name, s.data); err != nil {
		s.log.WithError(err).Error("state flush failed")
		return err
	}
	return nil
}

// Snapshot returns a copy of the current map.
func (s *Store) Snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return len(s.data)
}
