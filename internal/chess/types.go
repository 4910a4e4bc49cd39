package chess

import (
	"errors"
	"fmt"
	"unicode"
)

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

type PieceType int8

const (
	PieceNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (pt PieceType) String() string {
	if pt < 0 || int(pt) >= len(pieceTypeNames) {
		return "none"
	}
	return pieceTypeNames[pt]
}

// 升变只能选这四种
func (pt PieceType) IsPromotionChoice() bool {
	return pt == Queen || pt == Rook || pt == Bishop || pt == Knight
}

type Piece int8 // 0=空；>0 白；<0 黑；abs=PieceType

const NoPiece Piece = 0

func MakePiece(c Color, pt PieceType) Piece {
	if pt == PieceNone || c == NoColor {
		return NoPiece
	}
	if c == White {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	return PieceType(abs(p))
}

func (p Piece) Color() Color {
	if p == 0 {
		return NoColor
	}
	if p > 0 {
		return White
	}
	return Black
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	return string(pieceToChar(p))
}

// Move 外部只给 from/to（以及可选的升变子），王车易位和吃过路兵由局面推导
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

var NullMove = Move{From: NoSquare, To: NoSquare}

func (m Move) IsNull() bool {
	return m.From == NoSquare || m.To == NoSquare
}

// UCI 风格："e2e4"、"e7e8q"
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != PieceNone {
		s += string(unicode.ToLower(pieceLetters[m.Promotion]))
	}
	return s
}

var ErrInvalidMove = errors.New("invalid move")

// ParseMove 解析 UCI 写法；只检查格式，不检查合法性
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		pt, ok := ParsePieceType(s[4:])
		if !ok || pt == Pawn || pt == King {
			return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
		}
		m.Promotion = pt
	}
	return m, nil
}

type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

func (cr CastlingRights) Has(r CastlingRights) bool { return cr&r == r }

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr.Has(WhiteKingside) {
		s += "K"
	}
	if cr.Has(WhiteQueenside) {
		s += "Q"
	}
	if cr.Has(BlackKingside) {
		s += "k"
	}
	if cr.Has(BlackQueenside) {
		s += "q"
	}
	return s
}

// Position = 棋盘 + 轮到谁走 + 易位权 + 过路兵目标格
type Position struct {
	Board          Board
	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square
	HalfmoveClock  int
	FullmoveNumber int
	Hash           uint64
}
