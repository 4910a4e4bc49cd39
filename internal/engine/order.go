package engine

import (
	"sort"

	"chessmatch/internal/chess"
)

// 排序用的粗略价值（王不算，不会被吃）
var orderValues = [...]int{
	chess.PieceNone: 0,
	chess.Pawn:      1,
	chess.Knight:    3,
	chess.Bishop:    3,
	chess.Rook:      5,
	chess.Queen:     9,
	chess.King:      0,
}

// 吃子 10×被吃子价值；不吃子的兵步减 1；升变加上新子的价值
func moveOrderScore(pos *chess.Position, mv chess.Move) int {
	pc := pos.Board.Squares[mv.From]
	victim := pos.Board.Squares[mv.To]

	score := 0
	switch {
	case victim != chess.NoPiece:
		score = 10 * orderValues[victim.Type()]
	case pc.Type() == chess.Pawn && mv.From.Col() != mv.To.Col():
		score = 10 * orderValues[chess.Pawn] // 吃过路兵
	case pc.Type() == chess.Pawn:
		score = -1
	}
	if mv.Promotion != chess.PieceNone {
		score += 10 * orderValues[mv.Promotion]
	}
	return score
}

// orderMoves 按分数稳定降序；hash 着法（上一轮迭代留下的）放最前
func orderMoves(pos *chess.Position, moves []chess.Move, hashMove chess.Move) {
	scores := make([]int, len(moves))
	idx := make([]int, len(moves))
	for i, mv := range moves {
		scores[i] = moveOrderScore(pos, mv)
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	sorted := make([]chess.Move, len(moves))
	for i, j := range idx {
		sorted[i] = moves[j]
	}
	copy(moves, sorted)

	if hashMove.IsNull() {
		return
	}
	for i := range moves {
		if moves[i] == hashMove {
			// 整体后移一位，保持其余着法的相对顺序
			copy(moves[1:i+1], moves[:i])
			moves[0] = hashMove
			break
		}
	}
}
