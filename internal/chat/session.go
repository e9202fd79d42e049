package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vailure/internal/domain"
	applog "vailure/internal/log"
	"vailure/internal/metrics"
)

const (
	welcomeText  = "Welcome to VAILURE. How can I assist with your style today?"
	fallbackText = "Sorry, I couldn't process that. Please try again."
)

var (
	// ErrEmpty rejects a submission whose trimmed text is empty.
	ErrEmpty = errors.New("empty message")
	// ErrBusy rejects a submission while a request is in flight.
	ErrBusy = errors.New("request already in flight")
	// ErrStale marks a resolved request whose slot was taken over; its
	// result is dropped without touching the transcript.
	ErrStale = errors.New("stale assistant response")
)

// Assistant is the remote collaborator boundary. thinkingMode=false asks
// for web-grounded generation (may return citations); thinkingMode=true
// asks for deeper ungrounded generation with no citations.
type Assistant interface {
	Generate(ctx context.Context, prompt string, thinkingMode bool) (domain.AssistantReply, error)
}

// Session is one visitor's chat: an append-only transcript plus the
// single-slot pending request. At most one request is in flight at a time;
// cart and filter stores stay fully interactive while it runs.
type Session struct {
	mu      sync.Mutex
	client  Assistant
	nextID  int64
	gen     int64
	pending int64 // generation of the in-flight request, 0 when idle
	msgs    []domain.ChatMessage
}

func NewSession(client Assistant) *Session {
	return &Session{client: client}
}

// Open marks the widget opened. The first open of an empty transcript
// inserts the fixed welcome message. Returns the current transcript.
func (s *Session) Open() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.msgs) == 0 {
		s.append(domain.SenderAssistant, welcomeText, nil)
	}
	return s.snapshot()
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Busy reports whether a request is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != 0
}

// Submit appends the user message, dispatches one assistant request and
// appends the resulting assistant message. A failed call is converted to
// the fixed fallback message; the underlying error is only logged.
//
// Rejected with ErrEmpty/ErrBusy before any side effect. The pending slot
// holds a generation token: a resolution applies only while it is still
// the latest request, so the eventual response is neither lost nor
// duplicated if the widget is closed and reopened meanwhile.
func (s *Session) Submit(ctx context.Context, text string, thinkingMode bool) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, ErrEmpty
	}

	s.mu.Lock()
	if s.pending != 0 {
		s.mu.Unlock()
		return domain.ChatMessage{}, ErrBusy
	}
	s.gen++
	gen := s.gen
	s.pending = gen
	s.append(domain.SenderUser, text, nil)
	s.mu.Unlock()

	// Sole suspension point. No cancellation: the call runs to completion
	// and its result is applied regardless of widget visibility.
	reply, err := s.client.Generate(ctx, text, thinkingMode)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != gen {
		return domain.ChatMessage{}, ErrStale
	}
	s.pending = 0
	if err != nil {
		applog.Error(nil, "chat.assistant.error", err, map[string]any{"thinking": thinkingMode})
		metrics.ChatRequests.WithLabelValues("fallback").Inc()
		return s.append(domain.SenderAssistant, fallbackText, nil), nil
	}
	metrics.ChatRequests.WithLabelValues("ok").Inc()
	return s.append(domain.SenderAssistant, reply.Text, reply.Sources), nil
}

// append requires s.mu held. Ids are unique and monotonic per session.
func (s *Session) append(sender domain.Sender, text string, sources []domain.Source) domain.ChatMessage {
	s.nextID++
	m := domain.ChatMessage{ID: s.nextID, Sender: sender, Text: text, Sources: sources}
	s.msgs = append(s.msgs, m)
	return m
}

func (s *Session) snapshot() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.msgs))
	copy(out, s.msgs)
	return out
}
