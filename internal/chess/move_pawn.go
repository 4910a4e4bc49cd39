package chess

var promotionChoices = [4]PieceType{Queen, Rook, Bishop, Knight}

func appendPawnMove(moves []Move, from, to Square, side Color) []Move {
	if to.Row() != promotionRow(side) {
		return append(moves, Move{From: from, To: to})
	}
	for _, pt := range promotionChoices {
		moves = append(moves, Move{From: from, To: to, Promotion: pt})
	}
	return moves
}

func genPawnMoves(p *Position, from Square, moves []Move) []Move {
	row, col := from.Row(), from.Col()
	side := p.Board.Squares[from].Color()
	dir := pawnDir(side)

	r1 := row + dir
	if !onBoard(r1, col) {
		return moves
	}

	// 直走：一步，起始横线可两步
	one := Sq(r1, col)
	if p.Board.Squares[one] == NoPiece {
		moves = appendPawnMove(moves, from, one, side)
		if row == pawnStartRow(side) {
			two := Sq(row+2*dir, col)
			if p.Board.Squares[two] == NoPiece {
				moves = append(moves, Move{From: from, To: two})
			}
		}
	}

	// 斜吃，包括过路兵
	for _, dc := range [2]int{-1, 1} {
		c2 := col + dc
		if !onBoard(r1, c2) {
			continue
		}
		to := Sq(r1, c2)
		dst := p.Board.Squares[to]
		if dst != NoPiece {
			if dst.Color() != side {
				moves = appendPawnMove(moves, from, to, side)
			}
			continue
		}
		if to == p.EnPassant && p.Board.isEnPassantVictim(side, to) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}
