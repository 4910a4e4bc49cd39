package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chessmatch/internal/chess"
	"chessmatch/internal/engine"
)

// 和 C 侧约定的胜负码
const (
	resultOngoing  int8 = 0
	resultWhiteWin int8 = 1
	resultBlackWin int8 = 2
	resultDraw     int8 = 3
	resultError    int8 = -1
)

// 超过这个时间的调用打一条 Warn
const slowCall = 100 * time.Millisecond

func isLegalUCI(fen, uci string) bool {
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return false
	}
	mv, err := chess.ParseMove(uci)
	if err != nil {
		return false
	}
	return pos.IsLegal(mv)
}

// from 为 NoSquare 时标出所有能动的子，否则标出 from 的合法落点
func legalMask(fen string, from chess.Square) ([chess.NumSquares]int8, int, error) {
	var mask [chess.NumSquares]int8
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return mask, 0, err
	}
	start := time.Now()
	count := 0
	if from == chess.NoSquare {
		for _, mv := range pos.LegalMoves() {
			if mask[mv.From] == 0 {
				mask[mv.From] = 1
				count++
			}
		}
	} else {
		for _, to := range pos.LegalDestinations(from) {
			mask[to] = 1
			count++
		}
	}
	if elapsed := time.Since(start); elapsed > slowCall {
		zap.L().Warn("slow bridge call",
			zap.String("fen", fen),
			zap.Int("count", count),
			zap.Duration("elapsed", elapsed))
	}
	return mask, count, nil
}

func winnerCode(fen string) int8 {
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return resultError
	}
	st := pos.Status()
	switch st.Kind {
	case chess.Checkmate:
		if st.Color == chess.White {
			return resultWhiteWin
		}
		return resultBlackWin
	case chess.Stalemate:
		return resultDraw
	}
	return resultOngoing
}

// 返回 UCI 着法；没有合法着法时是 "0000"
func bestMoveUCI(fen string, depth int, limit time.Duration) (string, error) {
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return "", err
	}
	// 每次取 zap.L()，宿主进程可能在加载后才装好 logger
	e := engine.NewEngine(zap.L().Named("bridge"))
	res := e.Search(context.Background(), pos, engine.SearchConfig{MaxDepth: depth, TimeLimit: limit})
	if res.BestMove.IsNull() && pos.HasLegalMove() {
		return "", fmt.Errorf("engine returned no move for %s", fen)
	}
	return res.BestMove.String(), nil
}

func main() {}
