package engine

import (
	"context"
	"testing"
	"time"

	"chessmatch/internal/chess"
)

func findMove(t *testing.T, pos *chess.Position, uci string) chess.Move {
	t.Helper()
	for _, mv := range pos.LegalMoves() {
		if mv.String() == uci {
			return mv
		}
	}
	t.Fatalf("%s not legal in %s", uci, pos.EncodeFEN())
	return chess.NullMove
}

func TestSearchFindsMateInOne(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want string
	}{
		{"white back rank", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8"},
		{"black queen", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2", "d8h4"},
	}
	e := NewEngine(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := chess.MustParseFEN(tc.fen)
			res := e.Search(context.Background(), pos, SearchConfig{MaxDepth: 3, TimeLimit: -1})
			if res.BestMove.String() != tc.want {
				t.Fatalf("best move: got %v want %s", res.BestMove, tc.want)
			}
			if !IsMateScore(res.Score) {
				t.Fatalf("score %d should be a mate score", res.Score)
			}
			if (pos.SideToMove == chess.White && res.Score <= 0) || (pos.SideToMove == chess.Black && res.Score >= 0) {
				t.Fatalf("mate score has the wrong sign: %d", res.Score)
			}
		})
	}
}

func TestSearchPrefersFasterMate(t *testing.T) {
	pos := chess.MustParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	res := NewEngine(nil).Search(context.Background(), pos, SearchConfig{MaxDepth: 4, TimeLimit: -1})
	if res.Score != MateScore-1 {
		t.Fatalf("score: got %d want %d", res.Score, MateScore-1)
	}
}

func TestSearchWinsHangingQueen(t *testing.T) {
	pos := chess.MustParseFEN("4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	res := NewEngine(nil).Search(context.Background(), pos, SearchConfig{MaxDepth: 2, TimeLimit: -1})
	if got := res.BestMove.String(); got != "d2d5" {
		t.Fatalf("best move: got %s want d2d5", got)
	}
	if !res.Completed || res.Depth != 2 {
		t.Fatalf("completed=%v depth=%d", res.Completed, res.Depth)
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	pos := chess.NewInitialPosition()
	e := NewEngine(nil)
	cfg := SearchConfig{MaxDepth: 3, TimeLimit: -1}
	first := e.Search(context.Background(), pos, cfg)
	for i := 0; i < 3; i++ {
		again := e.Search(context.Background(), pos, cfg)
		if again.BestMove != first.BestMove || again.Score != first.Score || again.Nodes != first.Nodes {
			t.Fatalf("run %d: %v/%d/%d vs %v/%d/%d", i, again.BestMove, again.Score, again.Nodes,
				first.BestMove, first.Score, first.Nodes)
		}
	}
	if e.TotalNodes() != 4*first.Nodes {
		t.Fatalf("total nodes: got %d want %d", e.TotalNodes(), 4*first.Nodes)
	}
}

func TestSearchDoesNotMutatePosition(t *testing.T) {
	pos := chess.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := *pos
	NewEngine(nil).Search(context.Background(), pos, SearchConfig{MaxDepth: 2, TimeLimit: -1})
	if *pos != before {
		t.Fatalf("search modified the position")
	}
}

func TestSearchTimeoutStillReturnsMove(t *testing.T) {
	pos := chess.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	res := NewEngine(nil).Search(context.Background(), pos, SearchConfig{MaxDepth: 64, TimeLimit: 30 * time.Millisecond})
	if res.BestMove.IsNull() {
		t.Fatalf("timeout must still produce a move")
	}
	if !pos.IsLegal(res.BestMove) {
		t.Fatalf("returned move %v is illegal", res.BestMove)
	}
	if res.Completed {
		t.Fatalf("a 64-ply search cannot complete in 30ms")
	}
	if res.TimeUsed > 2*time.Second {
		t.Fatalf("search overran its budget: %v", res.TimeUsed)
	}
}

func TestSearchNodeLimitStopsPromptly(t *testing.T) {
	const limit = 2000
	pos := chess.NewInitialPosition()
	e := NewEngine(nil)
	cfg := SearchConfig{MaxDepth: 6, TimeLimit: -1, NodeLimit: limit}
	res := e.Search(context.Background(), pos, cfg)

	if res.Completed {
		t.Fatalf("depth 6 cannot finish in %d nodes", limit)
	}
	if res.Depth < 2 || res.BestMove.IsNull() || !pos.IsLegal(res.BestMove) {
		t.Fatalf("depth=%d move=%v", res.Depth, res.BestMove)
	}
	// 叶子不查上限，最多多出一层叶子；截断后兄弟节点一个都不再进
	if res.Nodes > limit+64 {
		t.Fatalf("nodes %d overshoot limit %d", res.Nodes, limit)
	}
	again := e.Search(context.Background(), pos, cfg)
	if again.Nodes != res.Nodes || again.BestMove != res.BestMove {
		t.Fatalf("node-limited search not deterministic: %v/%d vs %v/%d", again.BestMove, again.Nodes, res.BestMove, res.Nodes)
	}
}

func TestSearchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pos := chess.NewInitialPosition()
	res := NewEngine(nil).Search(ctx, pos, SearchConfig{MaxDepth: 5, TimeLimit: -1})
	if res.BestMove.IsNull() || !pos.IsLegal(res.BestMove) {
		t.Fatalf("cancelled search must still return a legal move, got %v", res.BestMove)
	}
	if res.Completed || res.Depth != 0 {
		t.Fatalf("completed=%v depth=%d", res.Completed, res.Depth)
	}
}

func TestSearchNoLegalMoves(t *testing.T) {
	e := NewEngine(nil)

	mated := chess.MustParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	res := e.Search(context.Background(), mated, SearchConfig{})
	if !res.BestMove.IsNull() || res.Score != -MateScore {
		t.Fatalf("mated: move=%v score=%d", res.BestMove, res.Score)
	}

	stalemate := chess.MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	res = e.Search(context.Background(), stalemate, SearchConfig{})
	if !res.BestMove.IsNull() || res.Score != 0 {
		t.Fatalf("stalemate: move=%v score=%d", res.BestMove, res.Score)
	}
}

func TestSearchAvoidsStalemateWhenWinning(t *testing.T) {
	// Qf7 逼和，Qf8 才是杀
	pos := chess.MustParseFEN("7k/8/6K1/8/8/8/8/5Q2 w - - 0 1")
	res := NewEngine(nil).Search(context.Background(), pos, SearchConfig{MaxDepth: 3, TimeLimit: -1})
	child, ok := pos.ApplyMove(res.BestMove)
	if !ok {
		t.Fatalf("ApplyMove(%v) failed", res.BestMove)
	}
	if st := child.Status(); st.Kind == chess.Stalemate {
		t.Fatalf("%v stalemates a won position", res.BestMove)
	}
}

func TestPrincipalVariationStartsWithBestMove(t *testing.T) {
	pos := chess.NewInitialPosition()
	res := NewEngine(nil).Search(context.Background(), pos, SearchConfig{MaxDepth: 3, TimeLimit: -1})
	if len(res.PV) == 0 || res.PV[0] != res.BestMove {
		t.Fatalf("PV %v does not start with %v", res.PV, res.BestMove)
	}
	cur := pos
	for _, mv := range res.PV {
		next, ok := cur.ApplyMove(mv)
		if !ok || !cur.IsLegal(mv) {
			t.Fatalf("PV move %v illegal", mv)
		}
		cur = next
	}
}

func TestSearchDefaults(t *testing.T) {
	cfg := SearchConfig{}.withDefaults()
	if cfg.MaxDepth != 5 || cfg.TimeLimit != 3*time.Second {
		t.Fatalf("defaults: %+v", cfg)
	}
	if got := (SearchConfig{TimeLimit: -1}).withDefaults().TimeLimit; got != -1 {
		t.Fatalf("negative time limit means unlimited, got %v", got)
	}
}
