package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/store"
)

// Compile-time check to ensure PostgresStore implements store.ConversationStore
var _ store.ConversationStore = (*PostgresStore)(nil)

// DBTX is the subset of *pgxpool.Pool used by the store.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresStore struct {
	db  DBTX
	log logrus.FieldLogger
}

func NewPostgresStore(db DBTX, log logrus.FieldLogger) *PostgresStore {
	return &PostgresStore{db: db, log: log.WithField("component", "PostgresStore")}
}

const createConversation = `-- name: CreateConversation :one
INSERT INTO conversations (user_id, title)
VALUES ($1, $2)
RETURNING id, user_id, title, created_at, updated_at;
`

// CreateConversation inserts a new conversation for userID.
func (s *PostgresStore) CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*models.Conversation, error) {
	if title == "" {
		title = models.DefaultConversationTitle
	}
	var c models.Conversation
	err := s.db.QueryRow(ctx, createConversation, userID, title).Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			s.log.WithFields(logrus.Fields{"user_id": userID, "code": pgErr.Code, "detail": pgErr.Detail}).
				Error("CreateConversation: PostgreSQL error executing insert")
		} else {
			s.log.WithField("user_id", userID).WithError(err).Error("CreateConversation: failed to execute insert")
		}
		return nil, fmt.Errorf("database error creating conversation: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "conversation_id": c.ID}).Debug("CreateConversation: inserted")
	return &c, nil
}

const listConversations = `-- name: ListConversations :many
SELECT id, user_id, title, created_at, updated_at
FROM conversations
WHERE user_id = $1
ORDER BY updated_at DESC
LIMIT $2;
`

// ListConversations returns the owner's most recently updated conversations.
func (s *PostgresStore) ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	rows, err := s.db.Query(ctx, listConversations, userID, store.ListConversationsLimit)
	if err != nil {
		return nil, fmt.Errorf("database error listing conversations: %w", err)
	}
	defer rows.Close()

	items := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Title,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning conversation: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}
	return items, nil
}

const deleteConversation = `-- name: DeleteConversation :exec
DELETE FROM conversations
WHERE id = $1 AND user_id = $2;
`

func (s *PostgresStore) DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx, deleteConversation, conversationID, userID)
	if err != nil {
		return false, fmt.Errorf("database error deleting conversation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const conversationOwner = `-- name: IsConversationOwner :one
SELECT EXISTS (
    SELECT 1 FROM conversations WHERE id = $1 AND user_id = $2
);
`

func (s *PostgresStore) IsConversationOwner(ctx context.Context, userID, conversationID uuid.UUID) (bool, error) {
	var owned bool
	if err := s.db.QueryRow(ctx, conversationOwner, conversationID, userID).Scan(&owned); err != nil {
		return false, fmt.Errorf("database error checking conversation owner: %w", err)
	}
	return owned, nil
}

const listMessages = `-- name: ListMessages :many
SELECT id, conversation_id, role, content, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY created_at ASC;
`

// GetMessages checks ownership before reading any message rows.
func (s *PostgresStore) GetMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]models.StoredMessage, error) {
	owned, err := s.IsConversationOwner(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if !owned {
		s.log.WithFields(logrus.Fields{"user_id": userID, "conversation_id": conversationID}).
			Debug("GetMessages: conversation not owned by caller")
		return []models.StoredMessage{}, nil
	}

	rows, err := s.db.Query(ctx, listMessages, conversationID)
	if err != nil {
		return nil, fmt.Errorf("database error listing messages: %w", err)
	}
	defer rows.Close()

	items := []models.StoredMessage{}
	for rows.Next() {
		var m models.StoredMessage
		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.Role,
			&m.Content,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return items, nil
}

const insertMessage = `-- name: InsertMessage :one
INSERT INTO messages (conversation_id, role, content)
VALUES ($1, $2, $3)
RETURNING id, conversation_id, role, content, created_at;
`

const touchConversation = `-- name: TouchConversation :exec
UPDATE conversations SET updated_at = NOW() WHERE id = $1;
`

// SaveMessage inserts the message and touches the parent conversation in one transaction.
func (s *PostgresStore) SaveMessage(ctx context.Context, conversationID uuid.UUID, role, content string) (*models.StoredMessage, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var m models.StoredMessage
	if err := tx.QueryRow(ctx, insertMessage, conversationID, role, content).Scan(
		&m.ID,
		&m.ConversationID,
		&m.Role,
		&m.Content,
		&m.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// foreign_key_violation: the conversation does not exist
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error inserting message: %w", err)
	}

	if _, err := tx.Exec(ctx, touchConversation, conversationID); err != nil {
		return nil, fmt.Errorf("database error touching conversation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("database error committing message: %w", err)
	}
	return &m, nil
}

const setConversationTitle = `-- name: SetConversationTitle :exec
UPDATE conversations SET title = $2 WHERE id = $1;
`

func (s *PostgresStore) SetConversationTitle(ctx context.Context, conversationID uuid.UUID, title string) error {
	if _, err := s.db.Exec(ctx, setConversationTitle, conversationID, title); err != nil {
		return fmt.Errorf("database error setting conversation title: %w", err)
	}
	return nil
}

const countMessagesByRole = `-- name: CountMessagesByRole :one
SELECT COUNT(*) FROM messages WHERE conversation_id = $1 AND role = $2;
`

func (s *PostgresStore) CountMessagesByRole(ctx context.Context, conversationID uuid.UUID, role string) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, countMessagesByRole, conversationID, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("database error counting messages: %w", err)
	}
	return n, nil
}
