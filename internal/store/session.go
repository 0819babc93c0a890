package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// metadataRepo implements MetadataStore on the sessions and chat_messages
// tables.
type metadataRepo struct {
	store *Store
}

func (r *metadataRepo) Get(ctx context.Context, sessionID string) (*SessionData, error) {
	md, err := loadMetadata(ctx, r.store.drv, sessionID)
	if err != nil {
		return nil, err
	}
	msgs, err := listMessages(ctx, r.store.drv, sessionID, 0)
	if err != nil {
		return nil, err
	}
	return &SessionData{Messages: msgs, Metadata: md}, nil
}

func (r *metadataRepo) UpdateMetadata(ctx context.Context, sessionID string, patch MetadataPatch) (err error) {
	if sessionID == "" {
		return fmt.Errorf("update metadata: empty session id")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	md, err := loadMetadata(ctx, tx, sessionID)
	if err != nil {
		return err
	}
	if patch.Recents != nil {
		md.Recents = append([]string{}, patch.Recents...)
	}
	if patch.QuizResult != nil {
		qr := *patch.QuizResult
		md.QuizResult = &qr
	}

	doc, err := encodeMetadata(md)
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionsTable).
		Columns("session_id", "version", "metadata", "created_at", "updated_at").
		Values(sessionID, MetadataVersion, doc, now, now).
		OnConflict(
			entsql.ConflictColumns("session_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("version").
					SetExcluded("metadata").
					SetExcluded("updated_at")
			}),
		).
		Query()
	if err = tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *metadataRepo) ClearMessages(ctx context.Context, sessionID string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(messagesTable).
		Where(entsql.EQ("session_id", sessionID)).
		Query()
	if err := r.store.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}

func (r *metadataRepo) ClearSession(ctx context.Context, sessionID string) error {
	return r.deleteRows(ctx, entsql.EQ("session_id", sessionID))
}

func (r *metadataRepo) ClearAllSessions(ctx context.Context) error {
	return r.deleteRows(ctx, nil)
}

// deleteRows removes matching rows from the transcript and session tables
// in one transaction. A nil where matches everything.
func (r *metadataRepo) deleteRows(ctx context.Context, where *entsql.Predicate) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{messagesTable, sessionsTable} {
		del := entsql.Dialect(dialect.SQLite).Delete(table)
		if where != nil {
			del = del.Where(where)
		}
		query, args := del.Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// loadMetadata reads the session document. A missing row yields an empty
// current-version document.
func loadMetadata(ctx context.Context, q dialect.ExecQuerier, sessionID string) (ProfileMetadata, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("version", "metadata").
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		Query()

	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return ProfileMetadata{}, fmt.Errorf("query session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return ProfileMetadata{}, fmt.Errorf("query session: %w", err)
		}
		return ProfileMetadata{
			Version:   MetadataVersion,
			SessionID: sessionID,
			Recents:   []string{},
		}, nil
	}

	var (
		version int
		raw     string
	)
	if err := rows.Scan(&version, &raw); err != nil {
		return ProfileMetadata{}, fmt.Errorf("scan session: %w", err)
	}
	md, err := decodeMetadata(sessionID, version, raw)
	if err != nil {
		return ProfileMetadata{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return md, nil
}
