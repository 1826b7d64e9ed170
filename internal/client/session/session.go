// Package session keeps the signed-in user's identity on the client.
//
// The record is stored JSON-encoded under a single fixed key. Load never
// fails: a missing or unreadable record means "not signed in". A nil *Store,
// or one built without a backend, stands for an environment where no local
// store exists; every call is then a no-op.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/common"
	"github.com/dmitrijs2005/nekolist/internal/logging"
)

// Backend is the key/value store the session lives in.
// Get returns (nil, nil) for a missing key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	backend Backend
	log     logging.Logger
}

func NewStore(backend Backend, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{backend: backend, log: log.With("component", "session")}
}

func (s *Store) available() bool {
	return s != nil && s.backend != nil
}

// Save overwrites the stored session.
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	if !s.available() {
		return nil
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.backend.Set(ctx, common.SessionKey, b); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored session, or false when there is none.
func (s *Store) Load(ctx context.Context) (models.Session, bool) {
	if !s.available() {
		return models.Session{}, false
	}

	b, err := s.backend.Get(ctx, common.SessionKey)
	if err != nil {
		s.log.Warn(ctx, "session store unreadable", "error", err)
		return models.Session{}, false
	}
	if b == nil {
		return models.Session{}, false
	}

	var sess models.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		s.log.Warn(ctx, "discarding corrupt session record", "error", err)
		return models.Session{}, false
	}
	if !sess.Valid() {
		s.log.Warn(ctx, "discarding session record without user id")
		return models.Session{}, false
	}
	return sess, true
}

func (s *Store) Clear(ctx context.Context) error {
	if !s.available() {
		return nil
	}
	if err := s.backend.Delete(ctx, common.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
