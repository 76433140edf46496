// Package store persists booking sessions in Redis.  Each session is
// one JSON blob under a per-caller key, overwritten on every mutation
// and read back to rehydrate, the service-side equivalent of the
// browser keeping the checkout under a fixed localStorage key.
package store

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/kinoapp/checkout/internal/checkout"
)

// ErrSessionNotFound is returned by Load when no session exists under
// the given key.  Handlers should translate this into an HTTP 404.
var ErrSessionNotFound = errors.New("checkout session not found")

// ErrUnsupportedVersion is returned by Load when the stored envelope
// carries a schema version this build does not understand.  The caller
// should treat the session as absent rather than guess at the shape.
var ErrUnsupportedVersion = errors.New("unsupported session schema version")

// envelopeVersion is bumped whenever the persisted session shape
// changes incompatibly, so old blobs are rejected instead of being
// half-decoded.
const envelopeVersion = 1

// sessionRetention keeps abandoned sessions around well past their
// advisory expiry before Redis evicts them.
const sessionRetention = 24 * time.Hour

// envelope wraps the session with a schema version for storage.
type envelope struct {
    Version int              `json:"version"`
    Session checkout.Session `json:"session"`
}

// SessionStore reads and writes booking sessions.  It also owns the
// per-session submit lock used to guard against double purchases.
type SessionStore struct {
    rdb *redis.Client
}

// NewSessionStore returns a SessionStore bound to the given Redis
// client.  The client must be non-nil; sessions cannot degrade to an
// in-memory fallback because they must survive restarts.
func NewSessionStore(rdb *redis.Client) *SessionStore {
    if rdb == nil {
        panic("nil redis client passed to NewSessionStore")
    }
    return &SessionStore{rdb: rdb}
}

func sessionKey(key string) string { return "checkout:session:" + key }
func submitKey(key string) string  { return "checkout:submit:" + key }

// Save serializes the session and overwrites the blob under the key.
// Writes are last-writer-wins within a key, matching the localStorage
// model the flow was designed around.
func (s *SessionStore) Save(ctx context.Context, key string, sess checkout.Session) error {
    raw, err := json.Marshal(envelope{Version: envelopeVersion, Session: sess})
    if err != nil {
        return fmt.Errorf("marshal session: %w", err)
    }
    if err := s.rdb.Set(ctx, sessionKey(key), raw, sessionRetention).Err(); err != nil {
        return fmt.Errorf("save session: %w", err)
    }
    return nil
}

// Load rehydrates the session stored under the key.
func (s *SessionStore) Load(ctx context.Context, key string) (checkout.Session, error) {
    raw, err := s.rdb.Get(ctx, sessionKey(key)).Bytes()
    if errors.Is(err, redis.Nil) {
        return checkout.Session{}, ErrSessionNotFound
    }
    if err != nil {
        return checkout.Session{}, fmt.Errorf("load session: %w", err)
    }
    var env envelope
    if err := json.Unmarshal(raw, &env); err != nil {
        return checkout.Session{}, fmt.Errorf("decode session: %w", err)
    }
    if env.Version != envelopeVersion {
        return checkout.Session{}, ErrUnsupportedVersion
    }
    return env.Session, nil
}

// Delete removes the session blob.  Deleting an absent key is not an
// error.
func (s *SessionStore) Delete(ctx context.Context, key string) error {
    if err := s.rdb.Del(ctx, sessionKey(key)).Err(); err != nil {
        return fmt.Errorf("delete session: %w", err)
    }
    return nil
}

// AcquireSubmitLock takes the per-session purchase lock.  It returns
// false when another submission for the same session is already in
// flight.  The TTL bounds how long a crashed submission can block
// retries.
func (s *SessionStore) AcquireSubmitLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
    ok, err := s.rdb.SetNX(ctx, submitKey(key), "1", ttl).Result()
    if err != nil {
        return false, fmt.Errorf("acquire submit lock: %w", err)
    }
    return ok, nil
}

// ReleaseSubmitLock frees the purchase lock after the submission
// settles, successfully or not.
func (s *SessionStore) ReleaseSubmitLock(ctx context.Context, key string) error {
    if err := s.rdb.Del(ctx, submitKey(key)).Err(); err != nil {
        return fmt.Errorf("release submit lock: %w", err)
    }
    return nil
}
