package chess

// 易位涉及的格子（按颜色、王翼/后翼）
type castleSpec struct {
	right            CastlingRights
	kingFrom, kingTo Square
	rookFrom, rookTo Square
}

var castleSpecs = [4]castleSpec{
	{WhiteKingside, Sq(7, 4), Sq(7, 6), Sq(7, 7), Sq(7, 5)},
	{WhiteQueenside, Sq(7, 4), Sq(7, 2), Sq(7, 0), Sq(7, 3)},
	{BlackKingside, Sq(0, 4), Sq(0, 6), Sq(0, 7), Sq(0, 5)},
	{BlackQueenside, Sq(0, 4), Sq(0, 2), Sq(0, 0), Sq(0, 3)},
}

func findCastleSpec(kingFrom, kingTo Square) (castleSpec, bool) {
	for _, cs := range castleSpecs {
		if cs.kingFrom == kingFrom && cs.kingTo == kingTo {
			return cs, true
		}
	}
	return castleSpec{}, false
}

// 王在同一横线上横移两格，就按易位处理
func (p *Position) isCastleAttempt(from, to Square) bool {
	pc := p.Board.Squares[from]
	return pc.Type() == King && from.Row() == to.Row() && abs(to.Col()-from.Col()) == 2
}

// CanCastle 检查易位：权利仍在、车在原位、王车之间全空、王的起点/经过格/终点都不被攻击
func (p *Position) CanCastle(from, to Square) bool {
	if !from.Valid() || !to.Valid() || !p.isCastleAttempt(from, to) {
		return false
	}
	king := p.Board.Squares[from]
	side := king.Color()
	cs, ok := findCastleSpec(from, to)
	if !ok || !p.Castling.Has(cs.right) {
		return false
	}
	if cs.kingFrom.Row() != backRow(side) {
		return false
	}
	if p.Board.Squares[cs.rookFrom] != MakePiece(side, Rook) {
		return false
	}
	if !p.Board.IsPathClear(cs.kingFrom, cs.rookFrom) {
		return false
	}
	enemy := side.Opposite()
	step := sign(to.Col() - from.Col())
	for c := from.Col(); c != to.Col()+step; c += step {
		if p.Board.IsSquareAttacked(Sq(from.Row(), c), enemy) {
			return false
		}
	}
	return true
}

// 王所在格可以走出的易位着法（已做完所有合法性检查）
func (p *Position) castleMoves(from Square, moves []Move) []Move {
	if p.Castling == NoCastling {
		return moves
	}
	for _, to := range [2]Square{from + 2, from - 2} {
		if to.Valid() && to.Row() == from.Row() && p.CanCastle(from, to) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// CanEnPassant 兵斜走一格落到当前过路兵目标格；目标格为空，其后方是刚冲两步的敌兵
func (p *Position) CanEnPassant(from, to Square) bool {
	if !from.Valid() || !to.Valid() || p.EnPassant == NoSquare || to != p.EnPassant {
		return false
	}
	pc := p.Board.Squares[from]
	if pc.Type() != Pawn {
		return false
	}
	side := pc.Color()
	if to.Row()-from.Row() != pawnDir(side) || abs(to.Col()-from.Col()) != 1 {
		return false
	}
	return p.Board.Squares[to] == NoPiece && p.Board.isEnPassantVictim(side, to)
}

// NeedsPromotion 兵走到离起点最远的横线
func (p *Position) NeedsPromotion(from, to Square) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	pc := p.Board.Squares[from]
	return pc.Type() == Pawn && to.Row() == promotionRow(pc.Color())
}

// 棋子离开或者被吃在某个角格上时要清掉的易位权
func castlingLossAt(sq Square) CastlingRights {
	for _, cs := range castleSpecs {
		if cs.rookFrom == sq {
			return cs.right
		}
	}
	return NoCastling
}

func castlingMaskFor(c Color) CastlingRights {
	if c == White {
		return WhiteKingside | WhiteQueenside
	}
	return BlackKingside | BlackQueenside
}
