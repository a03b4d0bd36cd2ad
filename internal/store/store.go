// Package store is the data store every workflow reads and writes through:
// the current-session user slot plus the problem, solution and connection
// collections, each persisted as one JSON value in a repository.KV.
//
// Reads never fail. Missing, unreachable or corrupt storage reads as
// empty/absent; anything other than a plain missing key is logged at WARN so
// the loss is visible. Writes report backend errors. A Store built over a nil
// KV has no storage context at all and silently drops writes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/ideabridge/pkg/models"
	"github.com/garnizeh/ideabridge/pkg/repository"
)

// ErrCorrupt marks a stored payload that could not be understood.
var ErrCorrupt = errors.New("corrupt stored payload")

// Store reads and writes the marketplace records of one profile.
type Store struct {
	kv      repository.KV
	keys    Keys
	logger  *slog.Logger
	clock   func() time.Time
	schemas *payloadSchemas

	// serializes read-modify-write cycles; shared between Stores of one
	// profile when supplied through WithLocker
	mu sync.Locker
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for degraded reads. nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for ids and default timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithKeys overrides the storage key names.
func WithKeys(k Keys) Option {
	return func(s *Store) { s.keys = k }
}

// WithLocker makes appends take l instead of a lock private to the Store,
// so short-lived Stores over the same profile still serialize their writes.
func WithLocker(l sync.Locker) Option {
	return func(s *Store) {
		if l != nil {
			s.mu = l
		}
	}
}

// New returns a Store over kv. A nil kv gives a Store with no storage: reads
// are empty and writes are dropped.
func New(kv repository.KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		mu:      new(sync.Mutex),
		keys:    DefaultKeys,
		logger:  slog.Default(),
		clock:   time.Now,
		schemas: defaultSchemas(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var (
	schemasOnce sync.Once
	schemas     *payloadSchemas
)

func defaultSchemas() *payloadSchemas {
	schemasOnce.Do(func() { schemas = mustLoadSchemas() })
	return schemas
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.clock()
}

// Current user

func (s *Store) SetCurrentUser(ctx context.Context, u models.User) error {
	return s.write(ctx, s.keys.User, u)
}

// CurrentUser returns the logged-in user, or nil.
func (s *Store) CurrentUser(ctx context.Context) *models.User {
	var u models.User
	if !s.read(ctx, s.keys.User, s.schemas.user, &u) {
		return nil
	}
	return &u
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Delete(ctx, s.keys.User); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.CurrentUser(ctx) != nil
}

// Collections

func (s *Store) Problems(ctx context.Context) []models.Problem {
	return readCollection[models.Problem](ctx, s, s.keys.Problems)
}

// AddProblem stores p under a fresh id and returns the stored record. Status
// defaults to open and a zero createdAt to the store clock.
func (s *Store) AddProblem(ctx context.Context, p models.Problem) (models.Problem, error) {
	if p.Status == "" {
		p.Status = models.ProblemOpen
	}
	s.stamp(&p.CreatedAt, &p.UpdatedAt)
	return appendRecord(ctx, s, s.keys.Problems, p,
		func(p models.Problem) string { return p.ID },
		func(p *models.Problem, id string) { p.ID = id })
}

func (s *Store) Solutions(ctx context.Context) []models.Solution {
	return readCollection[models.Solution](ctx, s, s.keys.Solutions)
}

// AddSolution stores sol under a fresh id. Status defaults to pending.
func (s *Store) AddSolution(ctx context.Context, sol models.Solution) (models.Solution, error) {
	if sol.Status == "" {
		sol.Status = models.SolutionPending
	}
	s.stamp(&sol.CreatedAt, &sol.UpdatedAt)
	return appendRecord(ctx, s, s.keys.Solutions, sol,
		func(s models.Solution) string { return s.ID },
		func(s *models.Solution, id string) { s.ID = id })
}

func (s *Store) Connections(ctx context.Context) []models.Connection {
	return readCollection[models.Connection](ctx, s, s.keys.Connections)
}

// AddConnection stores c under a fresh id. Status defaults to requested.
func (s *Store) AddConnection(ctx context.Context, c models.Connection) (models.Connection, error) {
	if c.Status == "" {
		c.Status = models.ConnectionRequested
	}
	s.stamp(&c.CreatedAt, nil)
	return appendRecord(ctx, s, s.keys.Connections, c,
		func(c models.Connection) string { return c.ID },
		func(c *models.Connection, id string) { c.ID = id })
}

// Locale

// Locale returns the persisted UI locale. Values written by older clients as
// a bare token (ko rather than "ko") are accepted.
func (s *Store) Locale(ctx context.Context) (string, bool) {
	raw, ok := s.get(ctx, s.keys.Locale)
	if !ok || raw == "" {
		return "", false
	}
	var loc string
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return raw, true
	}
	return loc, loc != ""
}

func (s *Store) SetLocale(ctx context.Context, locale string) error {
	return s.write(ctx, s.keys.Locale, locale)
}

// internals

func (s *Store) stamp(created, updated *models.Timestamp) {
	if created.IsZero() {
		*created = models.NewTimestamp(s.clock())
	}
	if updated != nil && updated.IsZero() {
		*updated = *created
	}
}

// get fetches the raw payload for key. Backend failures are logged and read
// as absent.
func (s *Store) get(ctx context.Context, key string) (string, bool) {
	if s.kv == nil {
		return "", false
	}
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("storage read failed, treating as empty", slog.String("key", key), slog.Any("err", err))
		return "", false
	}
	return raw, ok
}

// read decodes the payload at key into v after checking it against rs.
func (s *Store) read(ctx context.Context, key string, rs *jsonschema.Schema, v any) bool {
	raw, ok := s.get(ctx, key)
	if !ok || raw == "" || raw == "null" {
		return false
	}
	if err := s.decode(ctx, rs, raw, v); err != nil {
		s.logger.Warn("discarding unreadable stored payload", slog.String("key", key), slog.Any("err", err))
		return false
	}
	return true
}

func (s *Store) decode(ctx context.Context, rs *jsonschema.Schema, raw string, v any) error {
	if !json.Valid([]byte(raw)) {
		return fmt.Errorf("%w: invalid JSON", ErrCorrupt)
	}
	if err := validate(ctx, rs, []byte(raw)); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	if s.kv == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func readCollection[T any](ctx context.Context, s *Store, key string) []T {
	var out []T
	if !s.read(ctx, key, s.schemas.collection, &out) || out == nil {
		return []T{}
	}
	return out
}

func appendRecord[T any](ctx context.Context, s *Store, key string, rec T, idOf func(T) string, setID func(*T, string)) (T, error) {
	if s.kv == nil {
		return rec, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := readCollection[T](ctx, s, key)
	setID(&rec, nextID(s.clock(), items, idOf))
	items = append(items, rec)

	if err := s.write(ctx, key, items); err != nil {
		var zero T
		return zero, err
	}
	s.logger.Debug("record appended", slog.String("key", key), slog.String("id", idOf(rec)), slog.Int("count", len(items)))
	return rec, nil
}

// nextID derives an id from the clock in epoch milliseconds. If the clock has
// not moved past the largest numeric id already stored, the id continues from
// there instead, so ids stay unique within the collection.
func nextID[T any](now time.Time, items []T, idOf func(T) string) string {
	id := now.UnixMilli()
	for _, it := range items {
		n, err := strconv.ParseInt(idOf(it), 10, 64)
		if err == nil && n >= id {
			id = n + 1
		}
	}
	return strconv.FormatInt(id, 10)
}
