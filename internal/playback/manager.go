package playback

import (
	"fmt"
	"sync"
	"time"
)

// Command is a pending request for the external playback element, relayed
// by the transport layer on the next response.
type Command struct {
	Type   string  `json:"type"` // "seek" or "play"
	Target float64 `json:"target,omitempty"`
}

// CommandBuffer is a Player that records seek/play requests so an HTTP
// handler can hand them to the real playback element on the client.
type CommandBuffer struct {
	mu       sync.Mutex
	commands []Command
}

func (b *CommandBuffer) Seek(target float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = append(b.commands, Command{Type: "seek", Target: target})
}

func (b *CommandBuffer) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = append(b.commands, Command{Type: "play"})
}

// Drain returns and clears the pending commands.
func (b *CommandBuffer) Drain() []Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	cmds := b.commands
	b.commands = nil
	return cmds
}

// ManagedSession ties a synchronization session to its command buffer and
// bookkeeping for the manager's idle cleanup.
type ManagedSession struct {
	ID       string
	VideoID  string
	Session  *Session
	Commands *CommandBuffer

	mu       sync.Mutex
	lastSeen time.Time
}

func (m *ManagedSession) touch() {
	m.mu.Lock()
	m.lastSeen = time.Now()
	m.mu.Unlock()
}

func (m *ManagedSession) idleSince() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}

// Manager tracks the active playback sessions, one per connected player.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*ManagedSession
	source   AnnotationSource
}

const sessionIdleTimeout = 2 * time.Hour

func NewManager(source AnnotationSource) *Manager {
	m := &Manager{
		sessions: make(map[string]*ManagedSession),
		source:   source,
	}
	go m.cleanup()
	return m
}

// Open creates (or replaces) the session with the given id. The previous
// session for the id is discarded wholesale, never mutated in place.
func (m *Manager) Open(sessionID, videoID string) *ManagedSession {
	buffer := &CommandBuffer{}
	ms := &ManagedSession{
		ID:       sessionID,
		VideoID:  videoID,
		Session:  NewSession(buffer, m.source),
		Commands: buffer,
		lastSeen: time.Now(),
	}

	m.mu.Lock()
	m.sessions[sessionID] = ms
	m.mu.Unlock()
	return ms
}

// Get returns the session for the id, updating its idle timestamp.
func (m *Manager) Get(sessionID string) (*ManagedSession, error) {
	m.mu.RLock()
	ms, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown playback session: %s", sessionID)
	}
	ms.touch()
	return ms, nil
}

// Close removes a session. Closing is always safe: "stopping" sync is just
// ceasing to feed it clock updates.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

func (m *Manager) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-sessionIdleTimeout)
		m.mu.Lock()
		for id, ms := range m.sessions {
			if ms.idleSince().Before(cutoff) {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}
