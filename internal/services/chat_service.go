package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/llm"
	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/sports"
	"sportsgpt-backend/internal/store"
)

const (
	// TitleMaxRunes bounds the auto-generated conversation title.
	TitleMaxRunes = 80

	fragmentBuffer = 64
	persistTimeout = 15 * time.Second
)

// ScoreFetcher returns live scores for one sport.
type ScoreFetcher interface {
	GetScores(ctx context.Context, sport string) (*models.ScoresResult, error)
}

// WebSearcher returns formatted web search context, or "" when it has none.
type WebSearcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) string
}

// ChatInput is one chat turn as received from the client.
type ChatInput struct {
	Messages       []models.ChatMessage
	ConversationID *uuid.UUID
	// UserID is set when the caller presented a valid bearer token. Persistence
	// then requires that user to own the conversation.
	UserID *uuid.UUID
}

// PersistResult reports what happened to a turn after its stream was drained.
type PersistResult struct {
	ConversationID uuid.UUID
	Attempted      bool
	Skipped        string // reason persistence did not run, if any
	TitleSet       bool
	AssistantRunes int
	Err            error
}

// ChatStream carries assistant text fragments to the caller. Fragments is
// closed when the model stream ends; Wait then returns once persistence has run.
type ChatStream struct {
	fragments chan string
	done      chan PersistResult
}

// Fragments returns the channel of assistant text in provider emission order.
func (s *ChatStream) Fragments() <-chan string {
	return s.fragments
}

// Wait blocks until persistence has finished.
func (s *ChatStream) Wait() PersistResult {
	return <-s.done
}

// ChatService relays chat turns to the LLM provider, augmenting the system
// prompt with live scores and web search results.
type ChatService struct {
	provider  llm.Provider
	scores    ScoreFetcher
	search    WebSearcher
	store     store.ConversationStore // nil disables persistence
	maxTokens int
	now       func() time.Time
	log       logrus.FieldLogger
}

// NewChatService creates a new ChatService. search and convStore may be nil.
func NewChatService(provider llm.Provider, scores ScoreFetcher, search WebSearcher, convStore store.ConversationStore, maxTokens int, log logrus.FieldLogger) *ChatService {
	return &ChatService{
		provider:  provider,
		scores:    scores,
		search:    search,
		store:     convStore,
		maxTokens: maxTokens,
		now:       time.Now,
		log:       log.WithField("component", "ChatService"),
	}
}

// StreamChat starts relaying a chat turn and returns immediately. The model
// call is bound to ctx; persistence is not, so it still runs after the caller
// goes away.
func (s *ChatService) StreamChat(ctx context.Context, in ChatInput) *ChatStream {
	cs := &ChatStream{
		fragments: make(chan string, fragmentBuffer),
		done:      make(chan PersistResult, 1),
	}
	go s.relay(ctx, in, cs)
	return cs
}

func (s *ChatService) relay(ctx context.Context, in ChatInput, cs *ChatStream) {
	log := s.log
	if in.ConversationID != nil {
		log = log.WithField("conversation_id", *in.ConversationID)
	}

	latest, _ := latestUserMessage(in.Messages)
	systemPrompt := BuildSystemPrompt(s.now(), s.scoresContext(ctx, latest), s.searchContext(ctx, latest))

	req := llm.Request{
		SystemPrompt: systemPrompt,
		Messages:     toLLMMessages(in.Messages),
		MaxTokens:    s.maxTokens,
	}

	var buf strings.Builder
	send := func(text string) error {
		select {
		case cs.fragments <- text:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	err := s.provider.StreamChat(ctx, req, func(text string) error {
		buf.WriteString(text)
		return send(text)
	})
	switch {
	case err == nil:
		log.WithFields(logrus.Fields{"model": s.provider.Model(), "elapsed": time.Since(start)}).Info("chat stream completed")
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		log.WithError(err).Warn("chat stream cancelled by caller")
	default:
		log.WithError(err).Error("chat stream failed")
		_ = send(fmt.Sprintf("\n\n[Error: %s]", err.Error()))
	}
	close(cs.fragments)

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	cs.done <- s.persist(pctx, in, latest, buf.String())
	close(cs.done)
}

// scoresContext fetches scores for every sport mentioned in text. A failing
// sport is logged and left out.
func (s *ChatService) scoresContext(ctx context.Context, text string) string {
	if text == "" || s.scores == nil {
		return ""
	}
	detected := sports.Detect(text)
	if len(detected) == 0 {
		return ""
	}
	s.log.WithField("sports", detected).Info("score intent detected")

	results := make([]*models.ScoresResult, len(detected))
	var wg sync.WaitGroup
	for i, sport := range detected {
		wg.Add(1)
		go func(i int, sport string) {
			defer wg.Done()
			res, err := s.scores.GetScores(ctx, sport)
			if err != nil {
				s.log.WithField("sport", sport).WithError(err).Warn("failed to fetch scores")
				return
			}
			results[i] = res
		}(i, sport)
	}
	wg.Wait()

	collected := make([]models.ScoresResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			collected = append(collected, *r)
		}
	}
	if len(collected) == 0 {
		return ""
	}
	return sports.FormatContext(collected)
}

func (s *ChatService) searchContext(ctx context.Context, text string) string {
	if text == "" || s.search == nil || !s.search.Enabled() || !sports.HasScoreIntent(text) {
		return ""
	}
	return s.search.Search(ctx, text)
}

func (s *ChatService) persist(ctx context.Context, in ChatInput, userText, assistantText string) PersistResult {
	if in.ConversationID == nil {
		return PersistResult{Skipped: "no conversation id"}
	}
	res := PersistResult{ConversationID: *in.ConversationID, AssistantRunes: len([]rune(assistantText))}
	if s.store == nil {
		res.Skipped = "store disabled"
		return res
	}
	if userText == "" {
		res.Skipped = "no user message"
		return res
	}

	if in.UserID == nil {
		s.log.WithField("conversation_id", res.ConversationID).Warn("anonymous request persisting to conversation without ownership check")
	} else {
		owned, err := s.store.IsConversationOwner(ctx, *in.UserID, res.ConversationID)
		if err != nil {
			res.Err = fmt.Errorf("checking conversation owner: %w", err)
			return res
		}
		if !owned {
			res.Skipped = "conversation not owned by caller"
			return res
		}
	}

	res.Attempted = true
	prior, err := s.store.CountMessagesByRole(ctx, res.ConversationID, models.RoleUser)
	if err != nil {
		res.Err = fmt.Errorf("counting user messages: %w", err)
		return res
	}

	if _, err := s.store.SaveMessage(ctx, res.ConversationID, models.RoleUser, userText); err != nil {
		res.Err = fmt.Errorf("saving user message: %w", err)
		return res
	}
	if _, err := s.store.SaveMessage(ctx, res.ConversationID, models.RoleAssistant, assistantText); err != nil {
		res.Err = fmt.Errorf("saving assistant message: %w", err)
		return res
	}

	if prior == 0 {
		if err := s.store.SetConversationTitle(ctx, res.ConversationID, conversationTitle(userText)); err != nil {
			res.Err = fmt.Errorf("setting conversation title: %w", err)
			return res
		}
		res.TitleSet = true
	}
	return res
}

// latestUserMessage scans from the end for the most recent user message.
func latestUserMessage(msgs []models.ChatMessage) (string, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == models.RoleUser {
			return msgs[i].Content, true
		}
	}
	return "", false
}

// conversationTitle is the first TitleMaxRunes runes of the user's first message.
func conversationTitle(text string) string {
	r := []rune(text)
	if len(r) > TitleMaxRunes {
		r = r[:TitleMaxRunes]
	}
	return string(r)
}

func toLLMMessages(msgs []models.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, llm.Message{Role: m.Role, Content: m.Content})
	}
	return out
}
