package chess

import (
	"sort"
	"testing"
)

var sampleFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
}

func TestIsPseudoLegalGeometry(t *testing.T) {
	pos := MustParseFEN("4k3/8/3p4/8/2N1B3/8/3PP3/R3K2R w KQ - 0 1")
	b := &pos.Board

	cases := []struct {
		from, to string
		want     bool
	}{
		// 兵
		{"e2", "e3", true},
		{"e2", "e4", false}, // 己方象在 e4
		{"e2", "e5", false},
		{"d2", "d4", true},
		{"d2", "d3", true},
		{"e2", "d3", false}, // 斜走必须吃子
		{"e2", "e1", false}, // 不能后退（也落在己方王上）
		// 马
		{"c4", "d6", true}, // 吃黑兵
		{"c4", "e5", true},
		{"c4", "e4", false}, // 己方象
		{"c4", "c6", false},
		// 象
		{"e4", "h7", true},
		{"e4", "b7", true},
		{"e4", "a8", true},
		{"e4", "e5", false},
		// 车
		{"a1", "a8", true},
		{"a1", "d1", true},
		{"a1", "e1", false}, // 己方王
		{"a1", "b2", false},
		{"h1", "f1", true},
		// 王：易位不算伪合法几何
		{"e1", "d1", true},
		{"e1", "f2", true},
		{"e1", "g1", false},
		{"e1", "e3", false},
	}
	for _, tc := range cases {
		got := b.IsPseudoLegal(mustSq(t, tc.from), mustSq(t, tc.to), pos.EnPassant)
		if got != tc.want {
			t.Fatalf("IsPseudoLegal(%s,%s): got %v want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestQueenCombinesRookAndBishop(t *testing.T) {
	pos := MustParseFEN("4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1")
	d4 := mustSq(t, "d4")
	for _, to := range []string{"d8", "a4", "h4", "a1", "g7", "a7", "g1"} {
		if !pos.Board.IsPseudoLegal(d4, mustSq(t, to), NoSquare) {
			t.Fatalf("queen d4-%s should be pseudo-legal", to)
		}
	}
	for _, to := range []string{"e6", "c2", "b5"} {
		if pos.Board.IsPseudoLegal(d4, mustSq(t, to), NoSquare) {
			t.Fatalf("queen d4-%s should not be pseudo-legal", to)
		}
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	// e2 上的马被 e8 的车钉住
	pos := MustParseFEN("4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	e2 := mustSq(t, "e2")
	if !pos.Board.IsPseudoLegal(e2, mustSq(t, "c3"), NoSquare) {
		t.Fatalf("Nc3 is pseudo-legal")
	}
	if pos.IsLegal(Move{From: e2, To: mustSq(t, "c3")}) {
		t.Fatalf("pinned knight move must be illegal")
	}
	if got := pos.LegalDestinations(e2); len(got) != 0 {
		t.Fatalf("pinned knight destinations: got %v", got)
	}
}

func TestLegalMovesMatchExhaustiveIsLegal(t *testing.T) {
	for _, fen := range sampleFENs {
		pos := MustParseFEN(fen)

		gen := make(map[Move]bool)
		for _, mv := range pos.LegalMoves() {
			gen[mv] = true
		}

		brute := make(map[Move]bool)
		for from := Square(0); from < NumSquares; from++ {
			for to := Square(0); to < NumSquares; to++ {
				m := Move{From: from, To: to}
				if pos.NeedsPromotion(from, to) {
					for _, pt := range promotionChoices {
						m.Promotion = pt
						if pos.IsLegal(m) {
							brute[m] = true
						}
					}
					continue
				}
				if pos.IsLegal(m) {
					brute[m] = true
				}
			}
		}

		if len(gen) != len(brute) {
			t.Fatalf("%s: generator %d moves, exhaustive %d", fen, len(gen), len(brute))
		}
		for mv := range brute {
			if !gen[mv] {
				t.Fatalf("%s: generator missing %v", fen, mv)
			}
		}
	}
}

func TestLegalMovesNeverLeaveOwnKingInCheck(t *testing.T) {
	for _, fen := range sampleFENs {
		pos := MustParseFEN(fen)
		mover := pos.SideToMove
		for _, mv := range pos.LegalMoves() {
			child, ok := pos.ApplyMove(mv)
			if !ok {
				t.Fatalf("%s: ApplyMove(%v) failed for a legal move", fen, mv)
			}
			if child.IsInCheck(mover) {
				t.Fatalf("%s: %v leaves own king in check", fen, mv)
			}
		}
	}
}

func TestLegalDestinationsIdempotent(t *testing.T) {
	pos := MustParseFEN(sampleFENs[1])
	for from := Square(0); from < NumSquares; from++ {
		first := pos.LegalDestinations(from)
		second := pos.LegalDestinations(from)
		if len(first) != len(second) {
			t.Fatalf("%v: %v vs %v", from, first, second)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("%v: %v vs %v", from, first, second)
			}
		}
		if !sort.SliceIsSorted(first, func(i, j int) bool { return first[i] < first[j] }) {
			t.Fatalf("%v: destinations not sorted: %v", from, first)
		}
	}
}

func TestLegalDestinationsCollapsePromotions(t *testing.T) {
	pos := MustParseFEN("1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	got := pos.LegalDestinations(mustSq(t, "a7"))
	want := []Square{mustSq(t, "a8"), mustSq(t, "b8")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("promotion destinations: got %v want %v", got, want)
	}
	if n := len(pos.LegalMovesFrom(mustSq(t, "a7"))); n != 8 {
		t.Fatalf("promotion moves: got %d want 8", n)
	}
}

func TestIsLegalRejectsWrongSideAndBadPromotion(t *testing.T) {
	pos := NewInitialPosition()
	if pos.IsLegal(Move{From: mustSq(t, "e7"), To: mustSq(t, "e5")}) {
		t.Fatalf("black cannot move on white's turn")
	}
	if pos.IsLegal(Move{From: mustSq(t, "e2"), To: mustSq(t, "e4"), Promotion: Queen}) {
		t.Fatalf("promotion piece on a non-promotion move must be rejected")
	}
	if pos.IsLegal(Move{From: NoSquare, To: mustSq(t, "e4")}) {
		t.Fatalf("invalid square must be rejected")
	}

	promo := MustParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	a7, a8 := mustSq(t, "a7"), mustSq(t, "a8")
	if promo.IsLegal(Move{From: a7, To: a8, Promotion: King}) {
		t.Fatalf("promotion to king must be rejected")
	}
	if !promo.IsLegal(Move{From: a7, To: a8}) {
		t.Fatalf("bare promotion push is legal geometry; the piece is chosen later")
	}
	if _, ok := promo.ApplyMove(Move{From: a7, To: a8}); ok {
		t.Fatalf("ApplyMove must require a promotion piece")
	}
}
