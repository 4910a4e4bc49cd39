package chess

// IsPseudoLegal 只看棋子走法几何与占位：不考虑走完后自己的王是否被将军，也不含王车易位。
// ep 为当前过路兵目标格（没有就传 NoSquare）。
func (b *Board) IsPseudoLegal(from, to, ep Square) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	pc := b.Squares[from]
	if pc == NoPiece {
		return false
	}
	dst := b.Squares[to]
	// 不能落在己方棋子上，不管几何是否成立
	if dst != NoPiece && dst.Color() == pc.Color() {
		return false
	}

	dr := to.Row() - from.Row()
	dc := to.Col() - from.Col()
	adr, adc := abs(dr), abs(dc)

	switch pc.Type() {
	case Pawn:
		side := pc.Color()
		dir := pawnDir(side)
		if dc == 0 {
			if dst != NoPiece {
				return false
			}
			if dr == dir {
				return true
			}
			// 起始横线两步：中间格与终点都要空
			return dr == 2*dir && from.Row() == pawnStartRow(side) &&
				b.Squares[Sq(from.Row()+dir, from.Col())] == NoPiece
		}
		if adc != 1 || dr != dir {
			return false
		}
		if dst != NoPiece {
			return true
		}
		return to == ep && b.isEnPassantVictim(side, to)
	case Knight:
		return (adr == 1 && adc == 2) || (adr == 2 && adc == 1)
	case Bishop:
		return adr == adc && adr > 0 && b.IsPathClear(from, to)
	case Rook:
		return (dr == 0) != (dc == 0) && b.IsPathClear(from, to)
	case Queen:
		return ((adr == adc && adr > 0) || (dr == 0) != (dc == 0)) && b.IsPathClear(from, to)
	case King:
		return adr <= 1 && adc <= 1
	}
	return false
}

// 过路兵目标格后面（朝走子方一侧）必须是刚冲两步的敌方兵
func (b *Board) isEnPassantVictim(mover Color, target Square) bool {
	r := target.Row() - pawnDir(mover)
	if !onBoard(r, target.Col()) {
		return false
	}
	return b.Squares[Sq(r, target.Col())] == MakePiece(mover.Opposite(), Pawn)
}

// attacks 是检测层专用的“伪合法攻击”：兵只看斜前方（不管目标格是否有子），
// 不含兵直走、过路兵、易位，也绝不做将军过滤。
func (b *Board) attacks(from, target Square) bool {
	pc := b.Squares[from]
	if pc == NoPiece || from == target {
		return false
	}
	dr := target.Row() - from.Row()
	dc := target.Col() - from.Col()
	adr, adc := abs(dr), abs(dc)

	switch pc.Type() {
	case Pawn:
		return dr == pawnDir(pc.Color()) && adc == 1
	case Knight:
		return (adr == 1 && adc == 2) || (adr == 2 && adc == 1)
	case Bishop:
		return adr == adc && b.IsPathClear(from, target)
	case Rook:
		return (dr == 0 || dc == 0) && b.IsPathClear(from, target)
	case Queen:
		return (adr == adc || dr == 0 || dc == 0) && b.IsPathClear(from, target)
	case King:
		return adr <= 1 && adc <= 1
	}
	return false
}

// IsLegal 伪合法（或合法的易位）且走完后己方王不被将军
func (p *Position) IsLegal(m Move) bool {
	if !m.From.Valid() || !m.To.Valid() {
		return false
	}
	pc := p.Board.Squares[m.From]
	if pc == NoPiece || pc.Color() != p.SideToMove {
		return false
	}
	if m.Promotion != PieceNone {
		if !m.Promotion.IsPromotionChoice() || !p.NeedsPromotion(m.From, m.To) {
			return false
		}
	}
	if p.isCastleAttempt(m.From, m.To) {
		return p.CanCastle(m.From, m.To)
	}
	if !p.Board.IsPseudoLegal(m.From, m.To, p.EnPassant) {
		return false
	}
	return !p.leavesKingInCheck(m)
}

// 在副本上模拟走子，再用检测层看己方王
func (p *Position) leavesKingInCheck(m Move) bool {
	side := p.SideToMove
	b := p.Board
	pc := b.Squares[m.From]
	if pc.Type() == Pawn && m.From.Col() != m.To.Col() && b.Squares[m.To] == NoPiece {
		b.Squares[Sq(m.From.Row(), m.To.Col())] = NoPiece
	}
	b.Squares[m.To] = pc
	b.Squares[m.From] = NoPiece
	kingSq, ok := b.KingSquare(side)
	if !ok {
		return false
	}
	return b.IsSquareAttacked(kingSq, side.Opposite())
}
