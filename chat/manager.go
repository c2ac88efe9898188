// Package chat is the caller-side conversational session store: an
// append-only message list with trimming, a context key/value map, and
// whole-session JSON export/import. The bridge itself never touches it;
// only the chat-style tools do.
package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Roles used in the history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type Message struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Manager keeps one conversation session. Safe for concurrent use.
type Manager struct {
	mu         sync.Mutex
	history    []Message
	maxHistory int
	context    map[string]any
	sessionID  string
}

const DefaultMaxHistory = 100

func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		maxHistory: maxHistory,
		context:    make(map[string]any),
		sessionID:  uuid.NewString(),
	}
}

// AddMessage appends a message, trimming the oldest entries once the
// history exceeds its cap.
func (m *Manager) AddMessage(role, content string, metadata map[string]any) Message {
	msg := Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format(time.RFC3339),
		Metadata:  metadata,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, msg)
	if len(m.history) > m.maxHistory {
		m.history = append([]Message(nil), m.history[len(m.history)-m.maxHistory:]...)
	}
	return msg
}

// History returns the most recent messages, optionally filtered by role.
// limit <= 0 returns everything.
func (m *Manager) History(limit int, roleFilter string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.history
	if roleFilter != "" {
		filtered := make([]Message, 0, len(msgs))
		for _, msg := range msgs {
			if msg.Role == roleFilter {
				filtered = append(filtered, msg)
			}
		}
		msgs = filtered
	}
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]Message(nil), msgs...)
}

func (m *Manager) SetContext(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.context[key] = value
}

// Context returns the value for key, or a copy of the whole map when key is
// empty.
func (m *Manager) Context(key string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key != "" {
		return m.context[key]
	}
	out := make(map[string]any, len(m.context))
	for k, v := range m.context {
		out[k] = v
	}
	return out
}

func (m *Manager) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
}

// Reset clears history and context and starts a new session.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
	m.context = make(map[string]any)
	m.sessionID = uuid.NewString()
}

func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Summary describes the current session state.
type Summary struct {
	SessionID         string   `json:"session_id"`
	MessageCount      int      `json:"message_count"`
	UserMessages      int      `json:"user_messages"`
	AssistantMessages int      `json:"assistant_messages"`
	ContextKeys       []string `json:"context_keys"`
}

func (m *Manager) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Summary{
		SessionID:    m.sessionID,
		MessageCount: len(m.history),
		ContextKeys:  []string{},
	}
	for _, msg := range m.history {
		switch msg.Role {
		case RoleUser:
			s.UserMessages++
		case RoleAssistant:
			s.AssistantMessages++
		}
	}
	for k := range m.context {
		s.ContextKeys = append(s.ContextKeys, k)
	}
	return s
}

type sessionFile struct {
	SessionID string         `json:"session_id"`
	Messages  []Message      `json:"messages"`
	Context   map[string]any `json:"context"`
}

// Export writes the whole session to a JSON file.
func (m *Manager) Export(path string) error {
	m.mu.Lock()
	data := sessionFile{
		SessionID: m.sessionID,
		Messages:  append([]Message(nil), m.history...),
		Context:   make(map[string]any, len(m.context)),
	}
	for k, v := range m.context {
		data.Context[k] = v
	}
	m.mu.Unlock()

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Import replaces the session with one previously exported.
func (m *Manager) Import(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var data sessionFile
	if err := json.Unmarshal(b, &data); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if data.SessionID != "" {
		m.sessionID = data.SessionID
	}
	m.history = data.Messages
	m.context = data.Context
	if m.context == nil {
		m.context = make(map[string]any)
	}
	return nil
}
