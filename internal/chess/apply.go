package chess

// ApplyMove 应用一步着法，返回新局面（写时复制，不改 p）。
// 只做最基本的形状检查；合法性由 IsLegal 负责。升变步必须带升变子。
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return nil, false
	}
	pc := p.Board.Squares[m.From]
	if pc == NoPiece || pc.Color() != p.SideToMove {
		return nil, false
	}
	side := p.SideToMove
	promoting := pc.Type() == Pawn && m.To.Row() == promotionRow(side)
	if promoting != (m.Promotion != PieceNone) {
		return nil, false
	}
	if promoting && !m.Promotion.IsPromotionChoice() {
		return nil, false
	}

	np := *p
	h := p.hashOrCompute()
	h ^= zobrist.rights(p.Castling) ^ zobrist.epFile(p.EnPassant)

	captured := p.Board.Squares[m.To]
	captureSq := m.To

	// 吃过路兵：被吃的兵不在目标格上
	if pc.Type() == Pawn && captured == NoPiece && m.From.Col() != m.To.Col() {
		captureSq = Sq(m.From.Row(), m.To.Col())
		captured = p.Board.Squares[captureSq]
	}
	if captured != NoPiece {
		h ^= zobrist.piece(captured, captureSq)
		np.Board.Squares[captureSq] = NoPiece
	}

	placed := pc
	if promoting {
		placed = MakePiece(side, m.Promotion)
	}
	h ^= zobrist.piece(pc, m.From)
	h ^= zobrist.piece(placed, m.To)
	np.Board.Squares[m.From] = NoPiece
	np.Board.Squares[m.To] = placed

	// 易位：车和王同一次提交里一起搬
	if pc.Type() == King && m.From.Row() == m.To.Row() && abs(m.To.Col()-m.From.Col()) == 2 {
		cs, ok := findCastleSpec(m.From, m.To)
		if !ok {
			return nil, false
		}
		rook := np.Board.Squares[cs.rookFrom]
		h ^= zobrist.piece(rook, cs.rookFrom)
		h ^= zobrist.piece(rook, cs.rookTo)
		np.Board.Squares[cs.rookFrom] = NoPiece
		np.Board.Squares[cs.rookTo] = rook
	}

	// 易位权只减不增
	if pc.Type() == King {
		np.Castling &^= castlingMaskFor(side)
	}
	np.Castling &^= castlingLossAt(m.From) | castlingLossAt(m.To)

	np.EnPassant = NoSquare
	if pc.Type() == Pawn && abs(m.To.Row()-m.From.Row()) == 2 {
		np.EnPassant = Sq((m.From.Row()+m.To.Row())/2, m.From.Col())
	}

	if pc.Type() == Pawn || captured != NoPiece {
		np.HalfmoveClock = 0
	} else {
		np.HalfmoveClock++
	}
	if side == Black {
		np.FullmoveNumber++
	}
	np.SideToMove = side.Opposite()

	h ^= zobrist.rights(np.Castling) ^ zobrist.epFile(np.EnPassant)
	h ^= zobrist.blackMove
	np.Hash = h
	return &np, true
}
