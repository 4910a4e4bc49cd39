package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

// EncodeFEN 标准 FEN；第一段从第 8 横线写起，正好对应 row 0
func (p *Position) EncodeFEN() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Squares[Sq(r, c)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)
	return sb.String()
}

// ParseFEN 解析 FEN。后两段（半回合计数、回合数）可省略。
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: want at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: want %d ranks, got %d", ErrInvalidFEN, Rows, len(rows))
	}

	pos := &Position{EnPassant: NoSquare, FullmoveNumber: 1}
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, 8-r)
			}
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = White
			}
			pos.Board.Squares[Sq(r, c)] = MakePiece(side, pt)
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-r, c)
		}
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				pos.Castling |= WhiteKingside
			case 'Q':
				pos.Castling |= WhiteQueenside
			case 'k':
				pos.Castling |= BlackKingside
			case 'q':
				pos.Castling |= BlackQueenside
			default:
				return nil, fmt.Errorf("%w: castling %q", ErrInvalidFEN, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant: %v", ErrInvalidFEN, err)
		}
		pos.EnPassant = sq
	}

	if len(fields) >= 6 {
		hm, err := strconv.Atoi(fields[4])
		if err != nil || hm < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		fm, err := strconv.Atoi(fields[5])
		if err != nil || fm < 1 {
			return nil, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
		}
		pos.HalfmoveClock = hm
		pos.FullmoveNumber = fm
	}

	pos.Hash = pos.CalculateHash()
	return pos, nil
}

// MustParseFEN 测试和常量局面用
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}
