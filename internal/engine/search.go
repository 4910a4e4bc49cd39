package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"chessmatch/internal/chess"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000

	// MateScore 将杀分，减去距根节点的层数，越快的杀越好
	MateScore = 1_000_000
	maxPly    = 256

	DefaultMaxDepth  = 5
	DefaultTimeLimit = 3 * time.Second
)

// 搜索配置；零值用默认值
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply）
	TimeLimit time.Duration // 搜索时间上限，<0 表示不限制
	NodeLimit int64         // 节点数上限，0 表示不限制
}

func (c SearchConfig) withDefaults() SearchConfig {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.TimeLimit == 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	return c
}

// 搜索结果
type SearchResult struct {
	BestMove  chess.Move    // 最佳着法；没有合法着法时是 NullMove
	Score     int           // 评估分（正：白方好，负：黑方好）
	Depth     int           // 最后一轮完整搜完的深度
	Nodes     int64         // 节点数
	TimeUsed  time.Duration // 花费时间
	Completed bool          // false 表示被时限或 ctx 截断
	PV        []chess.Move  // 主变，从 hash 着法表里拼出来
}

// IsMateScore 分数是否表示有杀
func IsMateScore(score int) bool {
	return score >= MateScore-maxPly || score <= -MateScore+maxPly
}

// 单次搜索的全部可变状态
type searcher struct {
	done     <-chan struct{}
	deadline time.Time
	maxNodes int64
	nodes    int64
	aborted  bool
	tt       *hashMoveTable
}

func (s *searcher) expired() bool {
	if s.aborted {
		return true
	}
	select {
	case <-s.done:
		s.aborted = true
		return true
	default:
	}
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		s.aborted = true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.aborted = true
	}
	return s.aborted
}

// Search 迭代加深：从 1 层到 MaxDepth，受 TimeLimit 和 ctx 约束。
// 取最后一轮完整搜完的结果；第一轮就被截断时用截断前的根节点最佳着法，
// 保证只要有合法着法就一定返回一个。pos 不会被修改。
func (e *Engine) Search(ctx context.Context, pos *chess.Position, cfg SearchConfig) SearchResult {
	cfg = cfg.withDefaults()
	start := time.Now()

	s := &searcher{
		done:     ctx.Done(),
		maxNodes: cfg.NodeLimit,
		tt:       newHashMoveTable(),
	}
	if cfg.TimeLimit > 0 {
		s.deadline = start.Add(cfg.TimeLimit)
	}
	if d, ok := ctx.Deadline(); ok && (s.deadline.IsZero() || d.Before(s.deadline)) {
		s.deadline = d
	}

	res := SearchResult{BestMove: chess.NullMove, Completed: true}
	root := pos.LegalMoves()
	if len(root) == 0 {
		res.Score = s.terminalScore(pos, 0)
		res.TimeUsed = time.Since(start)
		return res
	}

	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		score, mv, ok := s.searchRoot(pos, root, depth)
		if !ok {
			if res.BestMove.IsNull() {
				res.BestMove = mv
				res.Score = score
			}
			res.Completed = false
			break
		}
		res.BestMove = mv
		res.Score = score
		res.Depth = depth
		e.log.Debug("search iteration",
			zap.Int("depth", depth),
			zap.Int("score", score),
			zap.Stringer("move", mv),
			zap.Int64("nodes", s.nodes))
		if IsMateScore(score) {
			break
		}
	}

	res.Nodes = s.nodes
	res.TimeUsed = time.Since(start)
	res.PV = s.principalVariation(pos, res.BestMove, cfg.MaxDepth)
	e.nodes.Add(s.nodes)

	e.log.Debug("search done",
		zap.String("fen", pos.EncodeFEN()),
		zap.Stringer("move", res.BestMove),
		zap.Int("score", res.Score),
		zap.Int("depth", res.Depth),
		zap.Bool("completed", res.Completed),
		zap.Duration("elapsed", res.TimeUsed))
	return res
}

// 根节点：按走子方做极大或极小；同分时保留排序靠前的着法。
// ok=false 表示这一轮被截断，此时返回的是截断前搜完的子节点里最好的
// （一个都没搜完就是排序后的第一个）。
func (s *searcher) searchRoot(pos *chess.Position, root []chess.Move, depth int) (int, chess.Move, bool) {
	moves := make([]chess.Move, len(root))
	copy(moves, root)
	orderMoves(pos, moves, s.tt.move(pos.Hash))

	maximizing := pos.SideToMove == chess.White
	alpha, beta := -scoreInf, scoreInf
	bestMove := chess.NullMove
	bestScore := 0

	for _, mv := range moves {
		if s.expired() {
			break
		}
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		score := s.alphaBeta(child, depth-1, 1, alpha, beta)
		if s.aborted {
			// 这个子节点没搜完，分数不可信
			break
		}
		if bestMove.IsNull() || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestMove, bestScore = mv, score
		}
		if maximizing && bestScore > alpha {
			alpha = bestScore
		}
		if !maximizing && bestScore < beta {
			beta = bestScore
		}
	}

	if s.aborted {
		if bestMove.IsNull() {
			return Evaluate(pos), moves[0], false
		}
		return bestScore, bestMove, false
	}
	s.tt.store(pos.Hash, depth, bestMove)
	return bestScore, bestMove, true
}

// 内部递归：标准 alpha-beta，白方极大、黑方极小。
// 每次进入先看深度，再看时限/ctx；超时置 aborted 并返回静态评估。
func (s *searcher) alphaBeta(pos *chess.Position, depth, ply int, alpha, beta int) int {
	s.nodes++

	if depth <= 0 {
		return Evaluate(pos)
	}
	if s.expired() {
		return Evaluate(pos)
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return s.terminalScore(pos, ply)
	}
	orderMoves(pos, moves, s.tt.move(pos.Hash))

	bestMove := chess.NullMove
	var bestScore int
	if pos.SideToMove == chess.White {
		bestScore = -scoreInf
		for _, mv := range moves {
			child, ok := pos.ApplyMove(mv)
			if !ok {
				continue
			}
			score := s.alphaBeta(child, depth-1, ply+1, alpha, beta)
			if s.aborted {
				break
			}
			if score > bestScore {
				bestScore, bestMove = score, mv
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
	} else {
		bestScore = scoreInf
		for _, mv := range moves {
			child, ok := pos.ApplyMove(mv)
			if !ok {
				continue
			}
			score := s.alphaBeta(child, depth-1, ply+1, alpha, beta)
			if s.aborted {
				break
			}
			if score < bestScore {
				bestScore, bestMove = score, mv
			}
			if score < beta {
				beta = score
			}
			if beta <= alpha {
				break
			}
		}
	}

	if s.aborted {
		// 截断的分数上层会丢掉，不要留下 ±scoreInf
		return Evaluate(pos)
	}
	s.tt.store(pos.Hash, depth, bestMove)
	return bestScore
}

// 无子可动：被将军就是被杀，否则逼和记 0
func (s *searcher) terminalScore(pos *chess.Position, ply int) int {
	if !pos.IsInCheck(pos.SideToMove) {
		return 0
	}
	if pos.SideToMove == chess.White {
		return -(MateScore - ply)
	}
	return MateScore - ply
}

// 从最佳着法开始，沿 hash 着法表往下走，遇到不合法或重复就停
func (s *searcher) principalVariation(pos *chess.Position, best chess.Move, limit int) []chess.Move {
	if best.IsNull() {
		return nil
	}
	pv := []chess.Move{best}
	cur, ok := pos.ApplyMove(best)
	if !ok {
		return pv
	}
	seen := map[uint64]bool{pos.Hash: true}
	for len(pv) < limit && !seen[cur.Hash] {
		seen[cur.Hash] = true
		mv := s.tt.move(cur.Hash)
		if mv.IsNull() || !cur.IsLegal(mv) {
			break
		}
		next, ok := cur.ApplyMove(mv)
		if !ok {
			break
		}
		pv = append(pv, mv)
		cur = next
	}
	return pv
}
