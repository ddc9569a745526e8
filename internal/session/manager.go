package session

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/craftedbits/resumatch/internal/model"
	appErr "github.com/craftedbits/resumatch/internal/pkg/errors"
)

// Manager issues opaque session tokens and keeps each session's owner id
// and identity fields for the session's lifetime. The owner id is minted
// once per session; repeated lookups return the same value.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*model.Session
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]*model.Session),
		now:      time.Now,
	}
}

// GetOrCreate resolves token to its session, creating a fresh session when
// the token is empty or unknown. The second return reports creation.
func (m *Manager) GetOrCreate(token string) (model.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token != "" {
		if sess, ok := m.sessions[token]; ok {
			sess.LastSeen = m.now()
			return *sess, false
		}
	}
	sess := &model.Session{
		Token:    newToken(),
		OwnerID:  uuid.NewString(),
		LastSeen: m.now(),
	}
	m.sessions[sess.Token] = sess
	return *sess, true
}

func (m *Manager) Get(token string) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[token]
	if !ok {
		return model.Session{}, appErr.ErrNotFound
	}
	sess.LastSeen = m.now()
	return *sess, nil
}

// SetIdentity commits the identity fields. Both must be non-blank; the
// session only becomes ready once the commit succeeds.
func (m *Manager) SetIdentity(token, name, contact string) (model.Session, error) {
	identity := model.Identity{
		Name:    strings.TrimSpace(name),
		Contact: strings.TrimSpace(contact),
	}
	if !identity.Complete() {
		return model.Session{}, appErr.ErrInvalid
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[token]
	if !ok {
		return model.Session{}, appErr.ErrNotFound
	}
	sess.Identity = identity
	sess.Ready = true
	sess.LastSeen = m.now()
	return *sess, nil
}

// SweepExpired drops sessions idle longer than the TTL and reports how many
// were removed. Indexed facts are not touched; only the in-process session
// table shrinks.
func (m *Manager) SweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for token, sess := range m.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func newToken() string {
	bytes := make([]byte, 20)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
