package chess

import "strings"

// SAN 生成标准代数记谱（走子前局面 + 着法）。着法不合法时返回空串。
func SAN(p *Position, m Move) string {
	pc := p.Board.Squares[m.From]
	if pc == NoPiece {
		return ""
	}
	child, ok := p.ApplyMove(m)
	if !ok {
		return ""
	}

	var sb strings.Builder
	switch {
	case p.isCastleAttempt(m.From, m.To):
		if m.To.Col() > m.From.Col() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	case pc.Type() == Pawn:
		capture := m.From.Col() != m.To.Col()
		if capture {
			sb.WriteByte(byte('a' + m.From.Col()))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion != PieceNone {
			sb.WriteByte('=')
			sb.WriteRune(pieceLetters[m.Promotion])
		}
	default:
		sb.WriteRune(pieceLetters[pc.Type()])
		sb.WriteString(disambiguation(p, m, pc))
		if p.Board.Squares[m.To] != NoPiece {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	switch st := child.Status(); st.Kind {
	case Checkmate:
		sb.WriteByte('#')
	case Check:
		sb.WriteByte('+')
	}
	return sb.String()
}

// 同种棋子能走到同一格时，先用起点的列区分，不行再用横线，都不行就两个都写
func disambiguation(p *Position, m Move, pc Piece) string {
	sameFile, sameRank, clash := false, false, false
	for _, other := range p.LegalMoves() {
		if other.To != m.To || other.From == m.From || p.Board.Squares[other.From] != pc {
			continue
		}
		clash = true
		if other.From.Col() == m.From.Col() {
			sameFile = true
		}
		if other.From.Row() == m.From.Row() {
			sameRank = true
		}
	}
	if !clash {
		return ""
	}
	from := m.From.String()
	switch {
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	}
	return from
}
