package chess

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/exp/constraints"
)

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols
)

// Square 0..63 = row*8+col；row 0 是第 8 横线（黑方底线），col 0 是 a 线
type Square int8

const NoSquare Square = -1

var ErrInvalidSquare = errors.New("invalid square")

func Sq(row, col int) Square { return Square(row*Cols + col) }

func (s Square) Row() int { return int(s) / Cols }
func (s Square) Col() int { return int(s) % Cols }

func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.Col()), byte('8' - s.Row())})
}

// ParseSquare 解析 "e4" 这样的坐标
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	f, r := s[0], s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Sq(int('8'-r), int(f-'a')), nil
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// 兵的前进方向：白向上(-1)，黑向下(+1)
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	if c == Black {
		return +1
	}
	return 0
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

func backRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

type Board struct {
	Squares [NumSquares]Piece
}

// PieceAt 越界直接 panic（调用方的编程错误）
func (b *Board) PieceAt(sq Square) Piece {
	return b.Squares[sq]
}

func (b *Board) IsEmpty(sq Square) bool {
	return b.Squares[sq] == NoPiece
}

// IsPathClear from/to 之间（不含两端）是否全空；两点不在同一直线或斜线上返回 false
func (b *Board) IsPathClear(from, to Square) bool {
	dr := to.Row() - from.Row()
	dc := to.Col() - from.Col()
	if dr == 0 && dc == 0 {
		return false
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return false
	}
	sr, sc := sign(dr), sign(dc)
	r, c := from.Row()+sr, from.Col()+sc
	for r != to.Row() || c != to.Col() {
		if b.Squares[Sq(r, c)] != NoPiece {
			return false
		}
		r += sr
		c += sc
	}
	return true
}

func (b *Board) KingSquare(c Color) (Square, bool) {
	king := MakePiece(c, King)
	for sq, pc := range b.Squares {
		if pc == king {
			return Square(sq), true
		}
	}
	return NoSquare, false
}

var pieceLetters = [...]rune{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}

var letterToPieceType = map[rune]PieceType{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

// ParsePieceType 接受 "q"/"queen"/"Q" 等写法
func ParsePieceType(s string) (PieceType, bool) {
	switch s {
	case "q", "Q", "queen":
		return Queen, true
	case "r", "R", "rook":
		return Rook, true
	case "b", "B", "bishop":
		return Bishop, true
	case "n", "N", "knight":
		return Knight, true
	case "k", "K", "king":
		return King, true
	case "p", "P", "pawn":
		return Pawn, true
	}
	return PieceNone, false
}

func pieceToChar(p Piece) rune {
	if p == NoPiece {
		return '.'
	}
	ch := pieceLetters[p.Type()]
	if p.Color() == Black {
		return unicode.ToLower(ch)
	}
	return ch
}

// String 按显示方向（第 8 横线在上）画出棋盘，调试用
func (b *Board) String() string {
	out := make([]rune, 0, NumSquares+Rows)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			out = append(out, pieceToChar(b.Squares[Sq(r, c)]))
		}
		out = append(out, '\n')
	}
	return string(out)
}

func initialBoard() Board {
	var b Board
	order := [Cols]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for c, pt := range order {
		b.Squares[Sq(0, c)] = MakePiece(Black, pt)
		b.Squares[Sq(1, c)] = MakePiece(Black, Pawn)
		b.Squares[Sq(6, c)] = MakePiece(White, Pawn)
		b.Squares[Sq(7, c)] = MakePiece(White, pt)
	}
	return b
}

func NewInitialPosition() *Position {
	pos := &Position{
		Board:          initialBoard(),
		SideToMove:     White, // 白先
		Castling:       AllCastling,
		EnPassant:      NoSquare,
		FullmoveNumber: 1,
	}
	pos.Hash = pos.CalculateHash()
	return pos
}
