package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ChatSession is one conversation thread with the assistant.
type ChatSession struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is one turn inside a session.
type ChatMessage struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateChatSession opens a new thread and returns its id.
func (s *Store) CreateChatSession(ctx context.Context, userID int64, title string) (int64, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_sessions (user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?)",
		userID, title, now, now)
	if err != nil {
		return 0, fmt.Errorf("create chat session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("chat session id: %w", err)
	}
	return id, nil
}

// AddChatMessage appends one turn and touches the session's updated_at.
func (s *Store) AddChatMessage(ctx context.Context, sessionID int64, role, content string) error {
	now := time.Now()
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)",
		sessionID, role, content, now); err != nil {
		return fmt.Errorf("add chat message: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE chat_sessions SET updated_at = ? WHERE id = ?", now, sessionID); err != nil {
		return fmt.Errorf("touch chat session %d: %w", sessionID, err)
	}
	return nil
}

// RecentMessages returns the last n turns of a session, oldest first, for
// building the model's history window.
func (s *Store) RecentMessages(ctx context.Context, sessionID int64, n int) ([]ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages WHERE session_id = ?
		ORDER BY id DESC LIMIT ?`, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()

	msgs := []ChatMessage{}
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// reverse the DESC page back into chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// ListChatSessions returns a user's threads, most recently active first.
func (s *Store) ListChatSessions(ctx context.Context, userID int64) ([]ChatSession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions WHERE user_id = ?
		ORDER BY updated_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	defer rows.Close()

	sessions := []ChatSession{}
	for rows.Next() {
		var cs ChatSession
		if err := rows.Scan(&cs.ID, &cs.UserID, &cs.Title, &cs.CreatedAt, &cs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat session: %w", err)
		}
		sessions = append(sessions, cs)
	}
	return sessions, rows.Err()
}

// GetChatSession returns one session or (nil, nil) when absent.
func (s *Store) GetChatSession(ctx context.Context, id int64) (*ChatSession, error) {
	var cs ChatSession
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions WHERE id = ?`, id).Scan(
		&cs.ID, &cs.UserID, &cs.Title, &cs.CreatedAt, &cs.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat session %d: %w", id, err)
	}
	return &cs, nil
}

// GetChatMessages returns every turn of a session in order.
func (s *Store) GetChatMessages(ctx context.Context, sessionID int64) ([]ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("chat messages: %w", err)
	}
	defer rows.Close()

	msgs := []ChatMessage{}
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
