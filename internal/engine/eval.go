package engine

import "chessmatch/internal/chess"

// 子力价值（厘兵）
var pieceValues = [...]int{
	chess.PieceNone: 0,
	chess.Pawn:      100,
	chess.Knight:    300,
	chess.Bishop:    350,
	chess.Rook:      500,
	chess.Queen:     900,
	chess.King:      10000,
}

// 兵的位置分，按白方视角，第 0 行是第 8 横线。
// 白兵在第 r 行取 pawnTable[r]，黑兵取 pawnTable[7-r]。
var pawnTable = [chess.Rows][chess.Cols]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

// 中心四格（d5 e5 d4 e4）被任意棋子占据
const centerBonus = 30

var centerSquares = [4]chess.Square{
	chess.Sq(3, 3), chess.Sq(3, 4), chess.Sq(4, 3), chess.Sq(4, 4),
}

// Evaluate 静态评估，白方视角：正数白方好，负数黑方好。
// 搜索层按走子方做极大/极小。
func Evaluate(pos *chess.Position) int {
	score := 0
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		pc := pos.Board.Squares[sq]
		if pc == chess.NoPiece {
			continue
		}
		v := pieceValues[pc.Type()]
		if pc.Type() == chess.Pawn {
			if pc.Color() == chess.White {
				v += pawnTable[sq.Row()][sq.Col()]
			} else {
				v += pawnTable[chess.Rows-1-sq.Row()][sq.Col()]
			}
		}
		if pc.Color() == chess.White {
			score += v
		} else {
			score -= v
		}
	}
	for _, sq := range centerSquares {
		switch pc := pos.Board.Squares[sq]; {
		case pc == chess.NoPiece:
		case pc.Color() == chess.White:
			score += centerBonus
		default:
			score -= centerBonus
		}
	}
	return score
}
