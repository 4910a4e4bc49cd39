package history

import (
	"strconv"
	"strings"

	"chessmatch/internal/chess"
)

// ResultToken PGN 结果标记
func ResultToken(st chess.Status) string {
	switch st.Kind {
	case chess.Checkmate:
		if st.Color == chess.White {
			return "1-0"
		}
		return "0-1"
	case chess.Stalemate:
		return "1/2-1/2"
	}
	return "*"
}

// PGN 只输出着法正文："1. e4 e5 2. Nf3 ... 1-0"。
// 回合号取自初始局面，黑方先走时用 "1..." 开头。
func PGN(initial *chess.Position, entries []Entry, result string) string {
	var sb strings.Builder
	move := initial.FullmoveNumber
	if move < 1 {
		move = 1
	}
	side := initial.SideToMove
	for i, e := range entries {
		if side == chess.White {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(move))
			sb.WriteString(". ")
		} else if i == 0 {
			sb.WriteString(strconv.Itoa(move))
			sb.WriteString("... ")
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.Notation)
		if side == chess.Black {
			move++
		}
		side = side.Opposite()
	}
	if result != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(result)
	}
	return sb.String()
}

// PGN 当前 index 之前的着法正文；结果标记要现算一遍当前局面的状态
func (h *History) PGN() string {
	return h.PGNFor(h.Current().Status())
}

// PGNFor 调用方已经知道当前状态时用这个，省一次合法着法扫描
func (h *History) PGNFor(st chess.Status) string {
	return PGN(h.initial, h.Entries(), ResultToken(st))
}
