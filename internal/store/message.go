package store

import (
	"context"
	"fmt"
	"slices"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// transcriptRepo implements TranscriptRepo on the chat_messages table.
// Insertion order (the auto-increment id) is transcript order.
type transcriptRepo struct {
	drv dialect.ExecQuerier
}

func (r *transcriptRepo) AppendMessage(ctx context.Context, sessionID string, msg Message) error {
	if sessionID == "" {
		return fmt.Errorf("append message: empty session id")
	}
	if msg.ID == "" {
		return fmt.Errorf("append message: empty message id")
	}
	if msg.Role != RoleUser && msg.Role != RoleAssistant {
		return fmt.Errorf("append message: unknown role %q", msg.Role)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(messagesTable).
		Columns("message_id", "session_id", "role", "content", "timestamp").
		Values(msg.ID, sessionID, string(msg.Role), msg.Content, msg.Timestamp).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

func (r *transcriptRepo) Recent(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	return listMessages(ctx, r.drv, sessionID, limit)
}

// listMessages returns the session transcript oldest first. With limit > 0
// only the newest limit messages are returned.
func listMessages(ctx context.Context, q dialect.ExecQuerier, sessionID string, limit int) ([]Message, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("message_id", "role", "content", "timestamp").
		From(entsql.Table(messagesTable)).
		Where(entsql.EQ("session_id", sessionID))
	if limit > 0 {
		sel = sel.OrderBy(entsql.Desc("id")).Limit(limit)
	} else {
		sel = sel.OrderBy(entsql.Asc("id"))
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	msgs := []Message{}
	for rows.Next() {
		var (
			m    Message
			role string
		)
		if err := rows.Scan(&m.ID, &role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Role = Role(role)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	if limit > 0 {
		slices.Reverse(msgs)
	}
	return msgs, nil
}
