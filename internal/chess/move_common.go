package chess

var (
	rookDirs    = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	kingDirs    = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	knightJumps = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// 车/象/后：沿方向一直走，遇子停（敌子可吃）
func genSliderMoves(p *Position, from Square, dirs [][2]int, moves []Move) []Move {
	row, col := from.Row(), from.Col()
	side := p.Board.Squares[from].Color()
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := Sq(r, c)
			pc := p.Board.Squares[to]
			if pc == NoPiece {
				moves = append(moves, Move{From: from, To: to})
			} else {
				if pc.Color() != side {
					moves = append(moves, Move{From: from, To: to})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	return moves
}

// 马、王：固定偏移一步
func genStepMoves(p *Position, from Square, offsets [][2]int, moves []Move) []Move {
	row, col := from.Row(), from.Col()
	side := p.Board.Squares[from].Color()
	for _, d := range offsets {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		to := Sq(r, c)
		dst := p.Board.Squares[to]
		if dst == NoPiece || dst.Color() != side {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// genPieceMoves 生成 from 上棋子的伪合法走法（不含易位），升变展开成四种
func (p *Position) genPieceMoves(from Square, moves []Move) []Move {
	pc := p.Board.Squares[from]
	switch pc.Type() {
	case Pawn:
		return genPawnMoves(p, from, moves)
	case Knight:
		return genStepMoves(p, from, knightJumps[:], moves)
	case Bishop:
		return genSliderMoves(p, from, bishopDirs[:], moves)
	case Rook:
		return genSliderMoves(p, from, rookDirs[:], moves)
	case Queen:
		moves = genSliderMoves(p, from, rookDirs[:], moves)
		return genSliderMoves(p, from, bishopDirs[:], moves)
	case King:
		return genStepMoves(p, from, kingDirs[:], moves)
	}
	return moves
}
