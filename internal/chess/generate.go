package chess

import "sort"

// PseudoMoves 走子方的伪合法走法（不含易位）
func (p *Position) PseudoMoves() []Move {
	moves := make([]Move, 0, 48)
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == NoPiece || pc.Color() != p.SideToMove {
			continue
		}
		moves = p.genPieceMoves(sq, moves)
	}
	return moves
}

// LegalMoves 生成合法走法：伪合法过滤掉“送将”，再加上合法的易位
func (p *Position) LegalMoves() []Move {
	pseudo := p.PseudoMoves()
	out := pseudo[:0]
	for _, mv := range pseudo {
		if !p.leavesKingInCheck(mv) {
			out = append(out, mv)
		}
	}
	if kingSq, ok := p.Board.KingSquare(p.SideToMove); ok {
		out = p.castleMoves(kingSq, out)
	}
	return out
}

// LegalMovesFrom 只看 from 上这一个子
func (p *Position) LegalMovesFrom(from Square) []Move {
	if !from.Valid() {
		return nil
	}
	pc := p.Board.Squares[from]
	if pc == NoPiece || pc.Color() != p.SideToMove {
		return nil
	}
	pseudo := p.genPieceMoves(from, make([]Move, 0, 28))
	out := pseudo[:0]
	for _, mv := range pseudo {
		if !p.leavesKingInCheck(mv) {
			out = append(out, mv)
		}
	}
	if pc.Type() == King {
		out = p.castleMoves(from, out)
	}
	return out
}

// LegalDestinations 给界面高亮用：去重且有序，升变的四种合成一个目标格
func (p *Position) LegalDestinations(from Square) []Square {
	moves := p.LegalMovesFrom(from)
	if len(moves) == 0 {
		return nil
	}
	seen := make(map[Square]struct{}, len(moves))
	out := make([]Square, 0, len(moves))
	for _, mv := range moves {
		if _, ok := seen[mv.To]; ok {
			continue
		}
		seen[mv.To] = struct{}{}
		out = append(out, mv.To)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Perft 叶子节点计数，用来和别的走法生成器对拍
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, mv := range moves {
		child, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		n += Perft(child, depth-1)
	}
	return n
}
