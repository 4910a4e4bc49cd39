package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chessmatch/internal/chess"
	"chessmatch/internal/match"
)

// Session 本地只有一盘棋。ID 在重开（重置、换模式）时重新生成，前端据此发现对局变了。
type Session struct {
	mu        sync.RWMutex
	id        string
	createdAt time.Time
	updatedAt time.Time

	ctrl *match.Controller
	log  *zap.Logger
}

type Info struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSession(cfg match.Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	now := time.Now()
	s := &Session{
		id:        uuid.NewString(),
		createdAt: now,
		updatedAt: now,
		ctrl:      match.NewController(cfg),
		log:       cfg.Logger.Named("session"),
	}
	s.log.Info("session created", zap.String("id", s.id), zap.Stringer("mode", cfg.Mode))
	return s
}

func (s *Session) Controller() *match.Controller { return s.ctrl }

func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Session) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Info{ID: s.id, CreatedAt: s.createdAt, UpdatedAt: s.updatedAt}
}

// Touch 记录一次状态变化
func (s *Session) Touch() {
	s.mu.Lock()
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

func (s *Session) renew() {
	s.mu.Lock()
	old := s.id
	s.id = uuid.NewString()
	s.createdAt = time.Now()
	s.updatedAt = s.createdAt
	s.mu.Unlock()
	s.log.Info("session renewed", zap.String("old_id", old), zap.String("id", s.ID()))
}

func (s *Session) Reset() {
	s.ctrl.Reset()
	s.renew()
}

func (s *Session) SetMode(mode match.Mode, engineSide chess.Color) {
	s.ctrl.SetMode(mode, engineSide)
	s.renew()
}

func (s *Session) Close() {
	s.ctrl.Close()
}
