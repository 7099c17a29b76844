package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"arcticfresh/internal/wishlist"
)

// WishlistRepo is a key-value space partitioned by browser session.
type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

// opTimeout bounds each storage call; wishlist.Storage has no context.
const opTimeout = 5 * time.Second

// Storage returns the wishlist.Storage view of one session's namespace.
func (r *WishlistRepo) Storage(sessionID string) wishlist.Storage {
	return &sessionKV{db: r.db, sid: sessionID}
}

type sessionKV struct {
	db  *sqlx.DB
	sid string
}

func (s *sessionKV) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	var v string
	err := s.db.GetContext(ctx, &v, `SELECT value FROM wishlist_kv WHERE session_id = ? AND key = ?`, s.sid, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wishlist.ErrNoValue
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (s *sessionKV) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `
	  INSERT INTO wishlist_kv(session_id, key, value, updated_at)
	  VALUES(?, ?, ?, ?)
	  ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.sid, key, string(value), formatTS(time.Now()))
	return err
}

func (s *sessionKV) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `DELETE FROM wishlist_kv WHERE session_id = ? AND key = ?`, s.sid, key)
	return err
}
