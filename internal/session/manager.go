// internal/session/manager.go
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"signlearn/internal/model"

	"github.com/google/uuid"
)

// Manager はアクティブなセッションをメモリ上で管理します。
// セッションはブラウザのタブごと・サブトピックごとに1つで、共有はされない
// 前提ですが、マップ自体は複数リクエストから触られるためロックで守ります。
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	logger   *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		logger:   logger,
	}
}

// Put はセッションを登録します
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get はセッションを取得します。所有者以外のアクセスは拒否します。
func (m *Manager) Get(sessionID, userID uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, model.ErrSessionExpired
	}
	if s.UserID != userID {
		return nil, model.ErrForbidden
	}
	return s, nil
}

// Delete はセッションを破棄します
func (m *Manager) Delete(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len は登録中のセッション数を返します
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartSweeper は一定間隔でアイドルセッションを破棄するgoroutineを起動
// します。ctx のキャンセルで停止します。学習者が途中でページを離れた
// セッションを放置しないための掃除役です。
func (m *Manager) StartSweeper(ctx context.Context, interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep(ttl)
			}
		}
	}()
}

func (m *Manager) sweep(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.LastAccess().Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Info("Evicted idle session", "session_id", id, "subtopic_id", s.SubtopicID)
		}
	}
}
