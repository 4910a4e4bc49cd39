package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"go.uber.org/zap"

	"chessmatch/internal/chess"
	"chessmatch/internal/cliutil"
)

func main() {
	fen := flag.String("fen", chess.StartFEN, "position to inspect")
	moves := flag.String("moves", "", "space separated UCI moves played from -fen first")
	depth := flag.Int("depth", 3, "perft depth")
	divide := flag.Bool("divide", false, "print perft per root move")
	verify := flag.Bool("verify", false, "cross-check perft against dragontoothmg")
	logLevel := flag.String("log-level", cliutil.Getenv("CHESS_LOG_LEVEL", "warn"), "debug | info | warn | error")
	flag.Parse()

	logger, err := cliutil.NewLogger(*logLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	pos, err := chess.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("-fen: %v", err)
	}
	pos, err = playMoves(pos, strings.Fields(*moves))
	if err != nil {
		log.Fatalf("-moves: %v", err)
	}

	fmt.Println("FEN:", pos.EncodeFEN())
	fmt.Print(pos.Board.String())
	fmt.Println("Status:", pos.Status())
	legal := pos.LegalMoves()
	sans := make([]string, 0, len(legal))
	for _, mv := range legal {
		sans = append(sans, chess.SAN(pos, mv))
	}
	sort.Strings(sans)
	fmt.Printf("Legal moves (%d): %s\n", len(sans), strings.Join(sans, " "))

	start := time.Now()
	counts := divideCounts(pos, *depth)
	var total uint64
	for _, n := range counts {
		total += n
	}
	if *depth <= 0 {
		total = 1
	}
	if *divide {
		for _, k := range sortedKeys(counts) {
			fmt.Printf("%s: %d\n", k, counts[k])
		}
	}
	fmt.Printf("perft(%d) = %d (%v)\n", *depth, total, time.Since(start).Round(time.Millisecond))

	if *verify {
		ref := dragontoothmg.ParseFen(pos.EncodeFEN())
		diffs := compareDivide(counts, refDivide(&ref, *depth))
		if len(diffs) == 0 {
			fmt.Println("dragontoothmg: ok")
			return
		}
		for _, d := range diffs {
			fmt.Println("mismatch", d)
		}
		os.Exit(1)
	}
}

func playMoves(pos *chess.Position, uci []string) (*chess.Position, error) {
	for _, s := range uci {
		mv, err := chess.ParseMove(s)
		if err != nil {
			return nil, err
		}
		if !pos.IsLegal(mv) {
			return nil, fmt.Errorf("%s is illegal in %s", s, pos.EncodeFEN())
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			return nil, fmt.Errorf("apply %s failed", s)
		}
		pos = next
	}
	return pos, nil
}

// 每个根着法下面的 perft(depth-1)
func divideCounts(pos *chess.Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, mv := range pos.LegalMoves() {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		out[mv.String()] = chess.Perft(child, depth-1)
	}
	return out
}

func refDivide(b *dragontoothmg.Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		out[m.String()] = refPerft(b, depth-1)
		unapply()
	}
	return out
}

func refPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		n += refPerft(b, depth-1)
		unapply()
	}
	return n
}

func compareDivide(ours, ref map[string]uint64) []string {
	keys := make(map[string]bool, len(ours)+len(ref))
	for k := range ours {
		keys[k] = true
	}
	for k := range ref {
		keys[k] = true
	}
	var diffs []string
	for k := range keys {
		a, okA := ours[k]
		b, okB := ref[k]
		switch {
		case !okA:
			diffs = append(diffs, fmt.Sprintf("%s: missing (dragontoothmg %d)", k, b))
		case !okB:
			diffs = append(diffs, fmt.Sprintf("%s: extra (ours %d)", k, a))
		case a != b:
			diffs = append(diffs, fmt.Sprintf("%s: ours %d, dragontoothmg %d", k, a, b))
		}
	}
	sort.Strings(diffs)
	return diffs
}

func sortedKeys(m map[string]uint64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
