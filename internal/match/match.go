package match

import (
	"go.uber.org/zap"

	"chessmatch/internal/chess"
	"chessmatch/internal/history"
)

// Pending 等待选择升变子的那一步
type Pending struct {
	From, To chess.Square
	Pawn     chess.Piece
}

// Match 一盘棋的全部状态：历史（含当前局面）、状态、待定升变。
// 不加锁，并发由 Controller 负责。
type Match struct {
	log     *zap.Logger
	hist    *history.History
	status  chess.Status
	pending *Pending
}

func NewMatch(log *zap.Logger) *Match {
	return NewMatchFrom(chess.NewInitialPosition(), log)
}

// NewMatchFrom 从任意局面开局（测试和调试工具用）
func NewMatchFrom(start *chess.Position, log *zap.Logger) *Match {
	if log == nil {
		log = zap.NewNop()
	}
	return &Match{
		log:    log,
		hist:   history.New(start),
		status: start.Status(),
	}
}

func (m *Match) Position() *chess.Position { return m.hist.Current() }
func (m *Match) Status() chess.Status      { return m.status }
func (m *Match) Notation() []string        { return m.hist.Notations() }
func (m *Match) Moves() []chess.Move       { return m.hist.Moves() }
func (m *Match) SideToMove() chess.Color   { return m.hist.Current().SideToMove }
func (m *Match) Terminal() bool            { return m.status.Terminal() }
func (m *Match) PGN() string               { return m.hist.PGNFor(m.status) }

// CanUndo 待定升变总能撤销（取消那一步）
func (m *Match) CanUndo(p history.StepPolicy) bool {
	return m.pending != nil || m.hist.CanUndo(p)
}

func (m *Match) CanRedo(p history.StepPolicy) bool {
	return m.pending == nil && m.hist.CanRedo(p)
}

func (m *Match) Pending() (Pending, bool) {
	if m.pending == nil {
		return Pending{}, false
	}
	return *m.pending, true
}

// LegalDestinations 界面高亮用；待定升变或终局时没有可走的格子
func (m *Match) LegalDestinations(sq chess.Square) []chess.Square {
	if !sq.Valid() || m.pending != nil || m.status.Terminal() {
		return nil
	}
	return m.Position().LegalDestinations(sq)
}

// Attempt 尝试走一步。需要升变但没带升变子时进入待定状态，等 ChoosePromotion。
func (m *Match) Attempt(mv chess.Move) Outcome {
	if !mv.From.Valid() || !mv.To.Valid() {
		return rejected(ReasonInvalidSquare, m.status)
	}
	if m.pending != nil {
		return rejected(ReasonPromotion, m.status)
	}
	if m.status.Terminal() {
		return rejected(ReasonGameOver, m.status)
	}

	pos := m.Position()
	if !pos.IsLegal(mv) {
		return Outcome{Kind: Illegal, Move: mv, Status: m.status}
	}
	if mv.Promotion == chess.PieceNone && pos.NeedsPromotion(mv.From, mv.To) {
		m.pending = &Pending{From: mv.From, To: mv.To, Pawn: pos.Board.PieceAt(mv.From)}
		return Outcome{Kind: PromotionRequired, Move: mv, Status: m.status}
	}
	return m.commit(mv)
}

// ChoosePromotion 给待定的那一步选升变子
func (m *Match) ChoosePromotion(kind chess.PieceType) Outcome {
	if m.pending == nil {
		return rejected(ReasonNoPromotion, m.status)
	}
	if !kind.IsPromotionChoice() {
		return rejected(ReasonInvalidPromote, m.status)
	}
	mv := chess.Move{From: m.pending.From, To: m.pending.To, Promotion: kind}
	out := m.commit(mv)
	if out.Kind == Applied {
		m.pending = nil
	}
	return out
}

// 提交：走子 → 记谱 → 入历史 → 重算状态；任何一步失败都不改状态
func (m *Match) commit(mv chess.Move) Outcome {
	pos := m.Position()
	next, ok := pos.ApplyMove(mv)
	if !ok {
		return Outcome{Kind: Illegal, Move: mv, Status: m.status}
	}
	notation := chess.SAN(pos, mv)
	m.hist.Commit(history.Entry{Position: next, Move: mv, Notation: notation})
	m.status = next.Status()

	m.log.Debug("move committed",
		zap.Stringer("move", mv),
		zap.String("san", notation),
		zap.Stringer("status", m.status),
		zap.String("fen", next.EncodeFEN()))
	return Outcome{Kind: Applied, Move: mv, Notation: notation, Status: m.status}
}

// Undo 待定升变时只取消那一步；否则按 policy 回退
func (m *Match) Undo(policy history.StepPolicy) bool {
	if m.pending != nil {
		m.pending = nil
		return true
	}
	if !m.hist.Undo(policy) {
		return false
	}
	m.status = m.Position().Status()
	return true
}

func (m *Match) Redo(policy history.StepPolicy) bool {
	if m.pending != nil || !m.hist.Redo(policy) {
		return false
	}
	m.status = m.Position().Status()
	return true
}

// Reset 回到本局的初始局面，清空历史
func (m *Match) Reset() {
	start := m.hist.Initial()
	m.hist.Reset(start)
	m.pending = nil
	m.status = start.Status()
}
