package httpserver

import (
	"chessmatch/internal/chess"
	"chessmatch/internal/match"
)

// 前端用的招法结构，格子用 "e2" 这样的写法
type MoveDTO struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"` // "q"/"r"/"b"/"n"
}

// Move 请求
type MoveRequest struct {
	MoveDTO
}

// Promote 请求
type PromoteRequest struct {
	Piece string `json:"piece"`
}

// Legal 请求：高亮某个格子的可走目标
type LegalRequest struct {
	Square string `json:"square"`
}

type LegalResponse struct {
	Square       string   `json:"square"`
	Destinations []string `json:"destinations"`
}

// Mode 请求
type ModeRequest struct {
	Mode       string `json:"mode"`        // "engine" / "two-player"
	EngineSide string `json:"engine_side"` // "white" / "black"，空为不变
}

type PendingDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// State 返回：刷新页面、每次操作之后都给完整状态
type StateResponse struct {
	GameID     string      `json:"game_id"`
	FEN        string      `json:"fen"`
	Board      [][]string  `json:"board"` // 8 行，第 0 行是第 8 横线；空格为 ""
	ToMove     string      `json:"to_move"`
	Status     string      `json:"status"`       // ongoing / check / checkmate / stalemate
	StatusSide string      `json:"status_color"` // check: 被将军的一方；checkmate: 胜方
	Mode       string      `json:"mode"`
	EngineSide string      `json:"engine_side"`
	Thinking   bool        `json:"thinking"`
	Pending    *PendingDTO `json:"pending,omitempty"`
	History    []string    `json:"history"`
	PGN        string      `json:"pgn"`
	LastMove   *MoveDTO    `json:"last_move,omitempty"`
	CanUndo    bool        `json:"can_undo"`
	CanRedo    bool        `json:"can_redo"`
}

// Move / Promote 返回
type OutcomeResponse struct {
	Result   string        `json:"result"` // applied / promotion-required / illegal / rejected
	Reason   string        `json:"reason,omitempty"`
	Notation string        `json:"notation,omitempty"`
	State    StateResponse `json:"state"`
}

// Undo / Redo 返回
type StepResponse struct {
	OK    bool          `json:"ok"`
	State StateResponse `json:"state"`
}

func moveToDTO(m chess.Move) MoveDTO {
	dto := MoveDTO{From: m.From.String(), To: m.To.String()}
	if m.Promotion != chess.PieceNone {
		dto.Promotion = m.String()[4:]
	}
	return dto
}

// dtoToMove 格子写错时返回 ok=false，由调用方回 invalid-square
func dtoToMove(d MoveDTO) (chess.Move, bool) {
	from, err := chess.ParseSquare(d.From)
	if err != nil {
		return chess.NullMove, false
	}
	to, err := chess.ParseSquare(d.To)
	if err != nil {
		return chess.NullMove, false
	}
	m := chess.Move{From: from, To: to}
	if d.Promotion != "" {
		pt, ok := chess.ParsePieceType(d.Promotion)
		if !ok {
			return chess.NullMove, false
		}
		m.Promotion = pt
	}
	return m, true
}

func boardToDTO(b *chess.Board) [][]string {
	rows := make([][]string, chess.Rows)
	for r := 0; r < chess.Rows; r++ {
		rows[r] = make([]string, chess.Cols)
		for c := 0; c < chess.Cols; c++ {
			if pc := b.PieceAt(chess.Sq(r, c)); pc != chess.NoPiece {
				rows[r][c] = pc.String()
			}
		}
	}
	return rows
}

func colorName(c chess.Color) string {
	if c == chess.NoColor {
		return ""
	}
	return c.String()
}

func parseColor(s string) chess.Color {
	switch s {
	case "white", "w":
		return chess.White
	case "black", "b":
		return chess.Black
	}
	return chess.NoColor
}

func snapshotToDTO(id string, snap match.Snapshot) StateResponse {
	resp := StateResponse{
		GameID:     id,
		FEN:        snap.FEN,
		Board:      boardToDTO(&snap.Position.Board),
		ToMove:     snap.Position.SideToMove.String(),
		Status:     snap.Status.Kind.String(),
		StatusSide: colorName(snap.Status.Color),
		Mode:       snap.Mode.String(),
		EngineSide: snap.EngineSide.String(),
		Thinking:   snap.Thinking,
		History:    snap.Notation,
		PGN:        snap.PGN,
		CanUndo:    snap.CanUndo,
		CanRedo:    snap.CanRedo,
	}
	if resp.History == nil {
		resp.History = []string{}
	}
	if snap.Pending != nil {
		resp.Pending = &PendingDTO{From: snap.Pending.From.String(), To: snap.Pending.To.String()}
	}
	if !snap.LastMove.IsNull() {
		last := moveToDTO(snap.LastMove)
		resp.LastMove = &last
	}
	return resp
}
