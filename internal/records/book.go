package records

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/waddle/internal/game"
	"github.com/abhisek/waddle/internal/store"
)

// Book keeps the player identity, the session log and the leaderboard in
// a key/value store. Every update is a read-modify-write of one key;
// the session log and leaderboard are written independently.
type Book struct {
	kv     store.KVRepo
	mirror Mirror
	logger *slog.Logger
	cap    int

	mu sync.Mutex
}

// Option configures a Book.
type Option func(*Book)

// WithMirror sets the remote mirror for appended sessions.
func WithMirror(m Mirror) Option {
	return func(b *Book) { b.mirror = m }
}

// WithLogger sets the logger for fail-soft paths.
func WithLogger(l *slog.Logger) Option {
	return func(b *Book) { b.logger = l }
}

// WithCap overrides the leaderboard size limit.
func WithCap(n int) Option {
	return func(b *Book) {
		if n > 0 {
			b.cap = n
		}
	}
}

// NewBook creates a Book over kv.
func NewBook(kv store.KVRepo, opts ...Option) *Book {
	b := &Book{kv: kv, logger: slog.Default(), cap: DefaultCap}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PlayerName returns the saved player name, or "" when none is set.
func (b *Book) PlayerName(ctx context.Context) (string, error) {
	name, _, err := b.kv.Get(ctx, KeyPlayer)
	if err != nil {
		return "", fmt.Errorf("load player name: %w", err)
	}
	return name, nil
}

// SetPlayerName saves the trimmed name.
func (b *Book) SetPlayerName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := b.kv.Put(ctx, KeyPlayer, name); err != nil {
		return fmt.Errorf("save player name: %w", err)
	}
	return nil
}

// ClearPlayerName forgets the player identity.
func (b *Book) ClearPlayerName(ctx context.Context) error {
	if err := b.kv.Delete(ctx, KeyPlayer); err != nil {
		return fmt.Errorf("clear player name: %w", err)
	}
	return nil
}

// Sessions returns the session log in insertion order.
func (b *Book) Sessions(ctx context.Context) ([]SessionRecord, error) {
	return loadList[SessionRecord](ctx, b, KeySessions)
}

// Scores returns the full stored leaderboard.
func (b *Book) Scores(ctx context.Context) ([]ScoreEntry, error) {
	return loadList[ScoreEntry](ctx, b, KeyLeaderboard)
}

// Top returns the first n leaderboard entries without changing storage.
func (b *Book) Top(ctx context.Context, n int) ([]ScoreEntry, error) {
	list, err := b.Scores(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && n < len(list) {
		list = list[:n]
	}
	return list, nil
}

// AppendSession adds rec to the end of the session log, then hands it to
// the mirror. Mirror failures never reach the caller.
func (b *Book) AppendSession(ctx context.Context, rec SessionRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.appendSession(ctx, rec)
}

func (b *Book) appendSession(ctx context.Context, rec SessionRecord) error {
	list, err := loadList[SessionRecord](ctx, b, KeySessions)
	if err != nil {
		return err
	}
	list = append(list, rec)
	if err := b.store(ctx, KeySessions, list); err != nil {
		return fmt.Errorf("append session: %w", err)
	}

	if b.mirror != nil {
		b.mirror.Dispatch(rec)
	}
	return nil
}

// SaveScore inserts entry into the leaderboard, keeping it sorted by
// score then date, both descending, and capped.
func (b *Book) SaveScore(ctx context.Context, entry ScoreEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saveScore(ctx, entry)
}

func (b *Book) saveScore(ctx context.Context, entry ScoreEntry) error {
	list, err := loadList[ScoreEntry](ctx, b, KeyLeaderboard)
	if err != nil {
		return err
	}
	list = append(list, entry)
	SortScores(list)
	if len(list) > b.cap {
		list = list[:b.cap]
	}
	if err := b.store(ctx, KeyLeaderboard, list); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

// SortScores orders entries by score descending, newest first on ties.
func SortScores(list []ScoreEntry) {
	slices.SortStableFunc(list, func(a, b ScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return b.Date.Compare(a.Date)
	})
}

// Ingest records a finished session. Completed sessions also enter the
// leaderboard; reset sessions only go to the session log.
func (b *Book) Ingest(ctx context.Context, rec SessionRecord) error {
	if rec.Name == "" {
		rec.Name = DefaultName
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.appendSession(ctx, rec); err != nil {
		return err
	}
	if rec.Status != StatusCompleted {
		return nil
	}
	return b.saveScore(ctx, ScoreEntry{
		Name:  rec.Name,
		Score: rec.Score,
		Lives: rec.Lives,
		Date:  rec.EndedAt,
	})
}

// RecordOutcome persists the outcome of a run for the current player.
func (b *Book) RecordOutcome(ctx context.Context, out game.Outcome) error {
	name, err := b.PlayerName(ctx)
	if err != nil {
		return err
	}
	return b.Ingest(ctx, SessionFromOutcome(out, name))
}

// SessionFromOutcome converts a run outcome into a session record.
func SessionFromOutcome(out game.Outcome, name string) SessionRecord {
	if name == "" {
		name = DefaultName
	}
	status := StatusCompleted
	if out.Status == game.OutcomeReset {
		status = StatusReset
	}
	return SessionRecord{
		SessionID: out.SessionID,
		Name:      name,
		Score:     out.Score,
		Lives:     out.Lives,
		StartedAt: out.StartedAt,
		EndedAt:   out.EndedAt,
		Status:    status,
	}
}

// Wipe irreversibly deletes stored data in scope.
func (b *Book) Wipe(ctx context.Context, scope Scope) error {
	var keys []string
	switch scope {
	case ScopeSessionsAndScores:
		keys = []string{KeySessions, KeyLeaderboard}
	case ScopeEverything:
		keys = []string{KeySessions, KeyLeaderboard, KeyPlayer}
	default:
		return fmt.Errorf("wipe %q: %w", scope, ErrUnknownScope)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("wipe %s: %w", scope, err)
	}
	return nil
}

// loadList decodes the JSON list stored at key. A missing or malformed
// value reads as an empty list.
func loadList[T any](ctx context.Context, b *Book, key string) ([]T, error) {
	raw, ok, err := b.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		b.logger.Warn("discarding malformed stored list", "key", key, "error", err)
		return nil, nil
	}
	return list, nil
}

func (b *Book) store(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.kv.Put(ctx, key, string(data))
}
