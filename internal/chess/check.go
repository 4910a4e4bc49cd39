package chess

import "go.uber.org/zap"

// IsSquareAttacked 判断 sq 是否被 by 这一方攻击。
// 逐个敌子做“伪合法攻击”判断，只用 attacks，不走完整合法性校验，避免递归。
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	for s := Square(0); s < NumSquares; s++ {
		pc := b.Squares[s]
		if pc == NoPiece || pc.Color() != by {
			continue
		}
		if b.attacks(s, sq) {
			return true
		}
	}
	return false
}

// IsInCheck 判断 c 这一方的王是否被将军。
// 找不到王属于内部不一致（正常对局不会发生）：记一条告警并按“未被将军”处理。
func (p *Position) IsInCheck(c Color) bool {
	kingSq, ok := p.Board.KingSquare(c)
	if !ok {
		zap.L().Warn("king missing from board",
			zap.Stringer("color", c),
			zap.String("fen", p.EncodeFEN()))
		return false
	}
	return p.Board.IsSquareAttacked(kingSq, c.Opposite())
}
