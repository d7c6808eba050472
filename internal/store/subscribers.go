package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrInvalidEmail is returned when a subscriber email fails the basic shape check.
var ErrInvalidEmail = errors.New("invalid email address")

// Subscriber is a newsletter signup. A row is kept after unsubscription so a
// re-subscribe preserves history.
type Subscriber struct {
	ID             string       `db:"id"`
	Email          string       `db:"email"`
	SubscribedAt   time.Time    `db:"subscribed_at"`
	UnsubscribedAt sql.NullTime `db:"unsubscribed_at"`
}

// Active reports whether the subscriber currently receives the newsletter.
func (s *Subscriber) Active() bool {
	return !s.UnsubscribedAt.Valid
}

type SubscriberStore struct {
	db *sqlx.DB
}

func NewSubscriberStore(db *sqlx.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

func (s *SubscriberStore) q(query string) string { return s.db.Rebind(query) }

// Subscribe adds an email to the newsletter list. Re-subscribing an
// unsubscribed address reactivates it; an already-active address returns
// ErrAlreadySubscribed.
func (s *SubscriberStore) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return nil, ErrInvalidEmail
	}

	existing, err := s.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Active() {
			return nil, ErrAlreadySubscribed
		}
		_, err := s.db.ExecContext(ctx, s.q(`
			UPDATE subscribers SET unsubscribed_at = NULL, subscribed_at = ? WHERE id = ?
		`), time.Now().UTC(), existing.ID)
		if err != nil {
			return nil, err
		}
		return s.GetByEmail(ctx, email)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO subscribers (id, email, subscribed_at) VALUES (?, ?, ?)
	`), id, email, time.Now().UTC())
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return s.GetByEmail(ctx, email)
}

// Unsubscribe deactivates an email. Returns ErrNotFound for unknown addresses.
func (s *SubscriberStore) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE subscribers SET unsubscribed_at = ? WHERE email = ? AND unsubscribed_at IS NULL
	`), time.Now().UTC(), email)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByEmail returns the subscriber record for email, or ErrNotFound.
func (s *SubscriberStore) GetByEmail(ctx context.Context, email string) (*Subscriber, error) {
	var sub Subscriber
	err := s.db.GetContext(ctx, &sub, s.q(`SELECT * FROM subscribers WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListActive returns all active subscribers ordered by signup time.
func (s *SubscriberStore) ListActive(ctx context.Context) ([]*Subscriber, error) {
	var subs []*Subscriber
	err := s.db.SelectContext(ctx, &subs, `
		SELECT * FROM subscribers WHERE unsubscribed_at IS NULL ORDER BY subscribed_at ASC
	`)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// CountActive returns the number of active subscribers.
func (s *SubscriberStore) CountActive(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subscribers WHERE unsubscribed_at IS NULL`)
	return count, err
}
