package history

import (
	"testing"

	"chessmatch/internal/chess"

	nchess "github.com/notnil/chess"
)

func play(t *testing.T, h *History, ucis ...string) {
	t.Helper()
	for _, s := range ucis {
		pos := h.Current()
		var mv chess.Move
		found := false
		for _, cand := range pos.LegalMoves() {
			if cand.String() == s {
				mv, found = cand, true
				break
			}
		}
		if !found {
			t.Fatalf("%s illegal in %s", s, pos.EncodeFEN())
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			t.Fatalf("ApplyMove(%s) failed", s)
		}
		h.Commit(Entry{Position: next, Move: mv, Notation: chess.SAN(pos, mv)})
	}
}

func TestCommitUndoRedoPly(t *testing.T) {
	h := New(chess.NewInitialPosition())
	play(t, h, "e2e4", "e7e5", "g1f3")

	if h.Index() != 3 || h.Len() != 3 {
		t.Fatalf("index/len: %d/%d", h.Index(), h.Len())
	}
	afterTwo := h.At(2)

	if !h.Undo(PlyStep{}) {
		t.Fatalf("undo failed")
	}
	if h.Current() != afterTwo {
		t.Fatalf("undo should restore the position after ply 2")
	}
	if h.Len() != 3 || !h.CanRedo(PlyStep{}) {
		t.Fatalf("redo entries must survive undo")
	}
	if !h.Redo(PlyStep{}) || h.Index() != 3 {
		t.Fatalf("redo failed: index=%d", h.Index())
	}
	if h.Redo(PlyStep{}) {
		t.Fatalf("redo at the end must be a no-op")
	}

	for h.Undo(PlyStep{}) {
	}
	if h.Index() != 0 || h.Current() != h.Initial() {
		t.Fatalf("undo to start: index=%d", h.Index())
	}
	if h.Undo(PlyStep{}) || h.CanUndo(PlyStep{}) {
		t.Fatalf("undo at the start must be a no-op")
	}
}

func TestCommitTruncatesRedo(t *testing.T) {
	h := New(chess.NewInitialPosition())
	play(t, h, "e2e4", "e7e5")
	h.Undo(PlyStep{})
	play(t, h, "c7c5")

	if h.Len() != 2 || h.CanRedo(PlyStep{}) {
		t.Fatalf("commit must drop redo entries: len=%d", h.Len())
	}
	want := []string{"e4", "c5"}
	got := h.Notations()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("notations: got %v want %v", got, want)
	}
	if mv := h.Moves()[1]; mv.String() != "c7c5" {
		t.Fatalf("moves[1]: %v", mv)
	}
}

func TestRoundStepLandsOnHumanTurn(t *testing.T) {
	t.Run("human white", func(t *testing.T) {
		h := New(chess.NewInitialPosition())
		play(t, h, "e2e4", "e7e5", "g1f3", "b8c6")
		policy := RoundStep{Human: chess.White}

		if !h.Undo(policy) || h.Index() != 2 {
			t.Fatalf("undo: index=%d want 2", h.Index())
		}
		if h.Current().SideToMove != chess.White {
			t.Fatalf("undo should land on white to move")
		}
		if !h.Undo(policy) || h.Index() != 0 {
			t.Fatalf("second undo: index=%d want 0", h.Index())
		}
		if h.Undo(policy) {
			t.Fatalf("undo past the start")
		}
		if !h.Redo(policy) || h.Index() != 2 {
			t.Fatalf("redo: index=%d want 2", h.Index())
		}
	})

	t.Run("human black", func(t *testing.T) {
		h := New(chess.NewInitialPosition())
		play(t, h, "e2e4", "e7e5", "g1f3")
		policy := RoundStep{Human: chess.Black}

		if !h.Undo(policy) || h.Index() != 1 {
			t.Fatalf("undo: index=%d want 1", h.Index())
		}
		// 初始局面轮到引擎（白）走，不能退到那里
		if h.Undo(policy) || h.CanUndo(policy) {
			t.Fatalf("undo onto the engine's opening turn must be refused")
		}
		if !h.Redo(policy) || h.Index() != 3 {
			t.Fatalf("redo: index=%d want 3", h.Index())
		}
	})

	t.Run("human mid round", func(t *testing.T) {
		// 人刚走完、引擎还没应着：回到人走之前
		h := New(chess.NewInitialPosition())
		play(t, h, "e2e4", "e7e5", "g1f3")
		policy := RoundStep{Human: chess.White}
		if !h.Undo(policy) || h.Index() != 2 {
			t.Fatalf("undo: index=%d want 2", h.Index())
		}
		// 往前没有轮到白方的局面了，直接进到最后
		if !h.Redo(policy) || h.Index() != 3 {
			t.Fatalf("redo: index=%d want 3", h.Index())
		}
	})
}

func TestPGN(t *testing.T) {
	h := New(chess.NewInitialPosition())
	play(t, h, "f2f3", "e7e5", "g2g4", "d8h4")

	want := "1. f3 e5 2. g4 Qh4# 0-1"
	if got := h.PGN(); got != want {
		t.Fatalf("PGN: got %q want %q", got, want)
	}

	h.Undo(PlyStep{})
	if got := h.PGN(); got != "1. f3 e5 2. g4 *" {
		t.Fatalf("PGN after undo: got %q", got)
	}
}

func TestPGNForUsesGivenStatus(t *testing.T) {
	h := New(chess.NewInitialPosition())
	play(t, h, "f2f3", "e7e5", "g2g4", "d8h4")

	mate := chess.Status{Kind: chess.Checkmate, Color: chess.Black}
	if got := h.PGNFor(mate); got != h.PGN() {
		t.Fatalf("PGNFor(mate) = %q, PGN() = %q", got, h.PGN())
	}
	// 结果标记只看传进来的状态，不再扫描局面
	if got := h.PGNFor(chess.Status{Kind: chess.Ongoing}); got != "1. f3 e5 2. g4 Qh4# *" {
		t.Fatalf("PGNFor(ongoing) = %q", got)
	}
}

func TestPGNBlackToMoveStart(t *testing.T) {
	start := chess.MustParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	h := New(start)
	play(t, h, "c7c5", "g1f3")
	if got := h.PGN(); got != "1... c5 2. Nf3 *" {
		t.Fatalf("PGN: got %q", got)
	}
}

func TestPGNReplaysInNotnil(t *testing.T) {
	h := New(chess.NewInitialPosition())
	play(t, h, "e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "b5c6", "d7c6", "e1g1")

	game := nchess.NewGame()
	for _, san := range h.Notations() {
		if err := game.MoveStr(san); err != nil {
			t.Fatalf("notnil rejected %q: %v", san, err)
		}
	}
	if got, want := game.Position().String(), h.Current().EncodeFEN(); fenBoard(got) != fenBoard(want) {
		t.Fatalf("positions diverge: notnil %s, ours %s", got, want)
	}
}

// 只比较棋盘和走子方两段
func fenBoard(fen string) string {
	n := 0
	for i, ch := range fen {
		if ch == ' ' {
			n++
			if n == 2 {
				return fen[:i]
			}
		}
	}
	return fen
}
