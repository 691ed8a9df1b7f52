// Package workspace keeps the transient state of one logged-in UI session:
// the owning user, the conversation log and the lazily created AI chat handle.
package workspace

import (
	"sync"
	"time"

	"studybuddy/internal/ai"
)

// Entry is one (prompt, response) pair of the conversation log.
type Entry struct {
	Prompt   string    `json:"prompt"`
	Response string    `json:"response"`
	At       time.Time `json:"at"`
}

// Workspace is the per-UI-session context handed to every logged-in handler.
type Workspace struct {
	ID     string
	UserID uint

	mu   sync.Mutex
	log  []Entry
	chat ai.Conversation
}

// New creates an empty workspace for a user.
func New(id string, userID uint) *Workspace {
	return &Workspace{ID: id, UserID: userID}
}

// Append adds an entry to the conversation log.
func (w *Workspace) Append(prompt, response string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.log = append(w.log, Entry{Prompt: prompt, Response: response, At: time.Now().UTC()})
}

// Conversation returns a copy of the log in insertion order.
func (w *Workspace) Conversation() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Entry, len(w.log))
	copy(out, w.log)
	return out
}

// Chat returns the workspace chat handle, starting one with gen on first use.
func (w *Workspace) Chat(gen ai.TextGenerator) ai.Conversation {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.chat == nil {
		w.chat = gen.StartChat()
	}
	return w.chat
}
