package main

import (
	"testing"
	"time"

	"chessmatch/internal/chess"
)

func TestIsLegalUCI(t *testing.T) {
	if !isLegalUCI(chess.StartFEN, "e2e4") {
		t.Fatalf("e2e4 should be legal")
	}
	for _, uci := range []string{"e2e5", "e7e5", "zz", ""} {
		if isLegalUCI(chess.StartFEN, uci) {
			t.Fatalf("%q should be rejected", uci)
		}
	}
	if isLegalUCI("not a fen", "e2e4") {
		t.Fatalf("bad FEN accepted")
	}
}

func TestLegalMask(t *testing.T) {
	mask, n, err := legalMask(chess.StartFEN, chess.NoSquare)
	if err != nil {
		t.Fatalf("legalMask: %v", err)
	}
	// 8 个兵加 2 个马
	if n != 10 {
		t.Fatalf("movable pieces = %d", n)
	}
	g1, _ := chess.ParseSquare("g1")
	if mask[g1] != 1 {
		t.Fatalf("g1 not marked")
	}

	mask, n, err = legalMask(chess.StartFEN, g1)
	if err != nil || n != 2 {
		t.Fatalf("g1 destinations = %d, %v", n, err)
	}
	f3, _ := chess.ParseSquare("f3")
	h3, _ := chess.ParseSquare("h3")
	if mask[f3] != 1 || mask[h3] != 1 {
		t.Fatalf("f3/h3 not marked")
	}

	if _, _, err := legalMask("8/8/8", chess.NoSquare); err == nil {
		t.Fatalf("bad FEN accepted")
	}
}

func TestWinnerCode(t *testing.T) {
	cases := map[string]int8{
		chess.StartFEN: resultOngoing,
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3": resultBlackWin,
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1":                                resultDraw,
		"garbage":                                                       resultError,
	}
	for fen, want := range cases {
		if got := winnerCode(fen); got != want {
			t.Fatalf("winnerCode(%q) = %d, want %d", fen, got, want)
		}
	}
}

func TestBestMoveUCI(t *testing.T) {
	uci, err := bestMoveUCI("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 2, time.Second)
	if err != nil {
		t.Fatalf("bestMoveUCI: %v", err)
	}
	if uci != "a1a8" {
		t.Fatalf("best move = %s, want a1a8", uci)
	}
	uci, err = bestMoveUCI("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 2, time.Second)
	if err != nil || uci != "0000" {
		t.Fatalf("stalemate: %q, %v", uci, err)
	}
}
