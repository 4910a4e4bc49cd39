package history

import "chessmatch/internal/chess"

// StepPolicy 决定一次撤销/重做跨几个半回合
type StepPolicy interface {
	UndoSteps(h *History) int
	RedoSteps(h *History) int
}

// PlyStep 一次一个半回合（双人对弈）
type PlyStep struct{}

func (PlyStep) UndoSteps(h *History) int {
	if h.index == 0 {
		return 0
	}
	return 1
}

func (PlyStep) RedoSteps(h *History) int {
	if h.index >= len(h.entries) {
		return 0
	}
	return 1
}

// RoundStep 人机模式：退到（或进到）最近一个轮到 Human 走的局面，
// 通常是人的一步加上引擎的应着。
type RoundStep struct {
	Human chess.Color
}

// 往回找不到轮到人走的局面就不退，免得落在引擎回合上又被立即重走
func (r RoundStep) UndoSteps(h *History) int {
	for i := h.index - 1; i >= 0; i-- {
		if h.At(i).SideToMove == r.Human {
			return h.index - i
		}
	}
	return 0
}

// 往前找不到轮到人走的局面时，进到最后（引擎会接着走）
func (r RoundStep) RedoSteps(h *History) int {
	if h.index >= len(h.entries) {
		return 0
	}
	for i := h.index + 1; i <= len(h.entries); i++ {
		if h.At(i).SideToMove == r.Human {
			return i - h.index
		}
	}
	return len(h.entries) - h.index
}
