package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"chessmatch/internal/chess"
	"chessmatch/internal/engine"
	"chessmatch/internal/history"
)

type Mode int8

const (
	ModeTwoPlayer Mode = iota
	ModeEngine
)

var ErrUnknownMode = errors.New("unknown mode")

func (m Mode) String() string {
	if m == ModeEngine {
		return "engine"
	}
	return "two-player"
}

// ParseMode 接受 "engine"/"ai"/"two-player"/"pvp"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "engine", "ai", "computer":
		return ModeEngine, nil
	case "two-player", "twoplayer", "pvp", "human":
		return ModeTwoPlayer, nil
	}
	return ModeTwoPlayer, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Searcher 引擎接口，*engine.Engine 满足它
type Searcher interface {
	Search(ctx context.Context, pos *chess.Position, cfg engine.SearchConfig) engine.SearchResult
}

type Config struct {
	Mode        Mode
	EngineWhite bool // 人机模式下引擎执白；默认执黑
	Search      engine.SearchConfig
	Start       *chess.Position // nil 为标准开局
	Engine      Searcher        // nil 时用 engine.NewEngine(Logger)
	Logger      *zap.Logger
}

// 一次后台搜索
type searchJob struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Controller 串行化所有提交：人走子、引擎走子、撤销重做、重置都在 mu 下进行。
// 引擎在后台 goroutine 里对局面副本搜索，回来时代数（gen）变了就丢掉结果。
type Controller struct {
	mu         sync.Mutex
	cfg        Config
	engineSide chess.Color
	log        *zap.Logger
	eng        Searcher
	match      *Match
	gen        uint64
	job        *searchJob
	closed     bool
	wg         sync.WaitGroup
}

func NewController(cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Engine == nil {
		cfg.Engine = engine.NewEngine(cfg.Logger.Named("engine"))
	}
	start := cfg.Start
	if start == nil {
		start = chess.NewInitialPosition()
	}
	c := &Controller{
		cfg:        cfg,
		engineSide: chess.Black,
		log:        cfg.Logger,
		eng:        cfg.Engine,
		match:      NewMatchFrom(start, cfg.Logger.Named("match")),
	}
	if cfg.EngineWhite {
		c.engineSide = chess.White
	}
	c.mu.Lock()
	c.maybeStartSearchLocked()
	c.mu.Unlock()
	return c
}

func (c *Controller) policyLocked() history.StepPolicy {
	if c.cfg.Mode == ModeEngine {
		return history.RoundStep{Human: c.engineSide.Opposite()}
	}
	return history.PlyStep{}
}

func (c *Controller) engineToMoveLocked() bool {
	return c.cfg.Mode == ModeEngine && c.match.SideToMove() == c.engineSide
}

// 人这一侧的输入检查：搜索中、轮到引擎都不接受
func (c *Controller) guardLocked() (Outcome, bool) {
	if c.job != nil {
		return rejected(ReasonSearching, c.match.Status()), false
	}
	if c.engineToMoveLocked() {
		return rejected(ReasonNotYourTurn, c.match.Status()), false
	}
	return Outcome{}, true
}

func (c *Controller) AttemptMove(mv chess.Move) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !mv.From.Valid() || !mv.To.Valid() {
		return rejected(ReasonInvalidSquare, c.match.Status())
	}
	if out, ok := c.guardLocked(); !ok {
		return out
	}
	out := c.match.Attempt(mv)
	if out.Kind == Applied {
		c.maybeStartSearchLocked()
	}
	return out
}

func (c *Controller) ChoosePromotion(kind chess.PieceType) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if out, ok := c.guardLocked(); !ok {
		return out
	}
	out := c.match.ChoosePromotion(kind)
	if out.Kind == Applied {
		c.maybeStartSearchLocked()
	}
	return out
}

// LegalDestinations 搜索中或轮到引擎时为空
func (c *Controller) LegalDestinations(sq chess.Square) []chess.Square {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.job != nil || c.engineToMoveLocked() {
		return nil
	}
	return c.match.LegalDestinations(sq)
}

func (c *Controller) Status() chess.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.match.Status()
}

func (c *Controller) MoveHistory() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.match.Notation()
}

// Undo 人机模式下一次退一个回合（人的一步加引擎的应着），并取消正在进行的搜索
func (c *Controller) Undo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.match.CanUndo(c.policyLocked()) {
		return false
	}
	c.invalidateLocked()
	ok := c.match.Undo(c.policyLocked())
	c.maybeStartSearchLocked()
	return ok
}

func (c *Controller) Redo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.match.CanRedo(c.policyLocked()) {
		return false
	}
	c.invalidateLocked()
	ok := c.match.Redo(c.policyLocked())
	c.maybeStartSearchLocked()
	return ok
}

func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
	c.match.Reset()
	c.log.Info("match reset", zap.Stringer("mode", c.cfg.Mode))
	c.maybeStartSearchLocked()
}

// SetMode 切换模式会重开一局
func (c *Controller) SetMode(mode Mode, engineSide chess.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
	c.cfg.Mode = mode
	if engineSide == chess.White || engineSide == chess.Black {
		c.engineSide = engineSide
	}
	c.match.Reset()
	c.log.Info("mode changed",
		zap.Stringer("mode", mode),
		zap.Stringer("engine_side", c.engineSide))
	c.maybeStartSearchLocked()
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Mode
}

func (c *Controller) EngineSide() chess.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engineSide
}

func (c *Controller) Thinking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.job != nil
}

// Generation 每次重置/撤销/重做/切换模式加一
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// WaitIdle 等到没有进行中的搜索
func (c *Controller) WaitIdle(ctx context.Context) error {
	for {
		c.mu.Lock()
		job := c.job
		c.mu.Unlock()
		if job == nil {
			return nil
		}
		select {
		case <-job.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close 取消搜索并等后台 goroutine 退出；之后不再启动搜索
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.invalidateLocked()
	c.mu.Unlock()
	c.wg.Wait()
}

// 让当前代数失效：取消搜索，迟到的结果会被丢弃
func (c *Controller) invalidateLocked() {
	c.gen++
	if c.job != nil {
		c.job.cancel()
		c.job = nil
	}
}

func (c *Controller) maybeStartSearchLocked() {
	if c.closed || c.job != nil || !c.engineToMoveLocked() {
		return
	}
	if _, pending := c.match.Pending(); pending || c.match.Terminal() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &searchJob{gen: c.gen, cancel: cancel, done: make(chan struct{})}
	c.job = job
	// 引擎只拿到副本
	pos := *c.match.Position()
	cfg := c.cfg.Search

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(job.done)
		defer cancel()
		res := c.eng.Search(ctx, &pos, cfg)
		c.finishSearch(job, res)
	}()
}

func (c *Controller) finishSearch(job *searchJob, res engine.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.job != job || c.gen != job.gen {
		c.log.Debug("discarding stale search result",
			zap.Uint64("gen", job.gen),
			zap.Uint64("current_gen", c.gen),
			zap.Stringer("move", res.BestMove))
		return
	}
	c.job = nil
	mv := res.BestMove
	if !engineMoveUsable(c.match.Position(), mv) {
		// 引擎给不出能直接提交的着法时退回第一个合法着法，否则人这边会一直是 not-your-turn
		legal := c.match.Position().LegalMoves()
		if len(legal) == 0 {
			c.log.Warn("engine returned no move", zap.String("fen", c.match.Position().EncodeFEN()))
			return
		}
		c.log.Warn("engine move unusable, playing first legal move",
			zap.Stringer("move", mv),
			zap.Stringer("fallback", legal[0]),
			zap.String("fen", c.match.Position().EncodeFEN()))
		mv = legal[0]
	}
	out := c.match.Attempt(mv)
	if out.Kind != Applied {
		c.log.Error("engine move not applied",
			zap.Stringer("move", mv),
			zap.Stringer("outcome", out))
		return
	}
	c.log.Info("engine move",
		zap.String("san", out.Notation),
		zap.Int("score", res.Score),
		zap.Int("depth", res.Depth),
		zap.Int64("nodes", res.Nodes),
		zap.Duration("elapsed", res.TimeUsed),
		zap.Bool("completed", res.Completed))
}

// 合法且升变步带了升变子；否则 Attempt 会停在待定升变上
func engineMoveUsable(pos *chess.Position, mv chess.Move) bool {
	if mv.IsNull() || !pos.IsLegal(mv) {
		return false
	}
	return mv.Promotion != chess.PieceNone || !pos.NeedsPromotion(mv.From, mv.To)
}

// Snapshot 给界面用的一致视图
type Snapshot struct {
	FEN        string
	Position   *chess.Position
	Status     chess.Status
	Pending    *Pending
	Mode       Mode
	EngineSide chess.Color
	Thinking   bool
	Notation   []string
	PGN        string
	LastMove   chess.Move
	CanUndo    bool
	CanRedo    bool
	Generation uint64
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos := c.match.Position()
	snap := Snapshot{
		FEN:        pos.EncodeFEN(),
		Position:   pos,
		Status:     c.match.Status(),
		Mode:       c.cfg.Mode,
		EngineSide: c.engineSide,
		Thinking:   c.job != nil,
		Notation:   c.match.Notation(),
		PGN:        c.match.PGN(),
		LastMove:   chess.NullMove,
		CanUndo:    c.match.CanUndo(c.policyLocked()),
		CanRedo:    c.match.CanRedo(c.policyLocked()),
		Generation: c.gen,
	}
	if p, ok := c.match.Pending(); ok {
		snap.Pending = &p
	}
	if moves := c.match.Moves(); len(moves) > 0 {
		snap.LastMove = moves[len(moves)-1]
	}
	return snap
}
