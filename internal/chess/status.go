package chess

import "fmt"

type StatusKind int8

const (
	Ongoing StatusKind = iota
	Check
	Checkmate
	Stalemate
)

func (k StatusKind) String() string {
	switch k {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "unknown"
}

// Status Check 时 Color 是被将军的一方；Checkmate 时 Color 是胜方
type Status struct {
	Kind  StatusKind
	Color Color
}

func (s Status) Terminal() bool {
	return s.Kind == Checkmate || s.Kind == Stalemate
}

func (s Status) String() string {
	switch s.Kind {
	case Check, Checkmate:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Color)
	}
	return s.Kind.String()
}

// 以 c 为走子方看这个局面（过路兵只对原走子方有效）
func (p *Position) asSide(c Color) *Position {
	if p.SideToMove == c {
		return p
	}
	np := *p
	np.SideToMove = c
	np.EnPassant = NoSquare
	np.Hash = np.CalculateHash()
	return &np
}

// HasLegalMove 找到第一步合法着法就返回
func (p *Position) HasLegalMove() bool {
	var buf [32]Move
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == NoPiece || pc.Color() != p.SideToMove {
			continue
		}
		moves := p.genPieceMoves(sq, buf[:0])
		for _, mv := range moves {
			if !p.leavesKingInCheck(mv) {
				return true
			}
		}
		if pc.Type() == King && len(p.castleMoves(sq, buf[:0])) > 0 {
			return true
		}
	}
	return false
}

func (p *Position) IsCheckmate(c Color) bool {
	q := p.asSide(c)
	return q.IsInCheck(c) && !q.HasLegalMove()
}

func (p *Position) IsStalemate(c Color) bool {
	q := p.asSide(c)
	return !q.IsInCheck(c) && !q.HasLegalMove()
}

// Status 只由局面决定：棋盘 + 走子方（易位权只影响合法性）
func (p *Position) Status() Status {
	side := p.SideToMove
	inCheck := p.IsInCheck(side)
	hasMove := p.HasLegalMove()
	switch {
	case inCheck && !hasMove:
		return Status{Kind: Checkmate, Color: side.Opposite()}
	case !hasMove:
		return Status{Kind: Stalemate, Color: NoColor}
	case inCheck:
		return Status{Kind: Check, Color: side}
	}
	return Status{Kind: Ongoing, Color: NoColor}
}
