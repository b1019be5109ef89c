package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"sportsgpt-backend/internal/llm"
	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/store"
)

type fakeProvider struct {
	deltas []string
	err    error
	gotReq llm.Request
}

func (p *fakeProvider) Model() string { return "fake-model" }

func (p *fakeProvider) StreamChat(ctx context.Context, req llm.Request, onDelta func(string) error) error {
	p.gotReq = req
	for _, d := range p.deltas {
		if err := onDelta(d); err != nil {
			return err
		}
	}
	return p.err
}

type fakeScores struct {
	mu      sync.Mutex
	results map[string]*models.ScoresResult
	called  []string
}

func (f *fakeScores) GetScores(ctx context.Context, sport string) (*models.ScoresResult, error) {
	f.mu.Lock()
	f.called = append(f.called, sport)
	f.mu.Unlock()
	if r, ok := f.results[sport]; ok {
		return r, nil
	}
	return nil, errors.New("upstream returned status 503")
}

type fakeSearch struct {
	enabled bool
	out     string
	queries []string
}

func (f *fakeSearch) Enabled() bool { return f.enabled }

func (f *fakeSearch) Search(ctx context.Context, q string) string {
	f.queries = append(f.queries, q)
	return f.out
}

// memStore is an in-memory store.ConversationStore.
type memStore struct {
	mu       sync.Mutex
	convs    map[uuid.UUID]*models.Conversation
	messages []models.StoredMessage
	saveErr  error
}

var _ store.ConversationStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{convs: map[uuid.UUID]*models.Conversation{}}
}

func (m *memStore) CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	c := &models.Conversation{ID: uuid.New(), UserID: userID, Title: title, CreatedAt: now, UpdatedAt: now}
	m.convs[c.ID] = c
	return c, nil
}

func (m *memStore) ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Conversation{}
	for _, c := range m.convs {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) DeleteConversation(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return false, nil
	}
	delete(m.convs, id)
	return true, nil
}

func (m *memStore) IsConversationOwner(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[id]
	return ok && c.UserID == userID, nil
}

func (m *memStore) GetMessages(ctx context.Context, userID, id uuid.UUID) ([]models.StoredMessage, error) {
	owned, _ := m.IsConversationOwner(ctx, userID, id)
	if !owned {
		return []models.StoredMessage{}, nil
	}
	return m.messagesFor(id), nil
}

func (m *memStore) messagesFor(id uuid.UUID) []models.StoredMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.StoredMessage{}
	for _, msg := range m.messages {
		if msg.ConversationID == id {
			out = append(out, msg)
		}
	}
	return out
}

func (m *memStore) SaveMessage(ctx context.Context, id uuid.UUID, role, content string) (*models.StoredMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	c, ok := m.convs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	msg := models.StoredMessage{ID: uuid.New(), ConversationID: id, Role: role, Content: content, CreatedAt: time.Now()}
	m.messages = append(m.messages, msg)
	c.UpdatedAt = msg.CreatedAt
	return &msg, nil
}

func (m *memStore) SetConversationTitle(ctx context.Context, id uuid.UUID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.convs[id]; ok {
		c.Title = title
	}
	return nil
}

func (m *memStore) CountMessagesByRole(ctx context.Context, id uuid.UUID, role string) (int, error) {
	n := 0
	for _, msg := range m.messagesFor(id) {
		if msg.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memStore) title(id uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.convs[id].Title
}
