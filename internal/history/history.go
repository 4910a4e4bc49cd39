package history

import "chessmatch/internal/chess"

// Entry 一步已提交的着法：走完后的局面、着法本身、提交时生成的记谱
type Entry struct {
	Position *chess.Position
	Move     chess.Move
	Notation string
}

// History 线性历史。index 指向当前局面：0 是初始局面，i 是第 i 步之后。
// 撤销/重做只移动 index；在中间提交新着法会截掉 index 之后的部分。
type History struct {
	initial *chess.Position
	entries []Entry
	index   int
}

func New(initial *chess.Position) *History {
	return &History{initial: initial}
}

// Commit 截断 index 之后的记录，追加并前进
func (h *History) Commit(e Entry) {
	h.entries = append(h.entries[:h.index], e)
	h.index = len(h.entries)
}

func (h *History) Index() int { return h.index }

// Len 包括已撤销但还能重做的记录
func (h *History) Len() int { return len(h.entries) }

func (h *History) Initial() *chess.Position { return h.initial }

// At 第 i 个局面（0 为初始局面）
func (h *History) At(i int) *chess.Position {
	if i <= 0 {
		return h.initial
	}
	return h.entries[i-1].Position
}

func (h *History) Current() *chess.Position { return h.At(h.index) }

// Undo 按 policy 往回退；到头或 policy 给出 0 步时不动
func (h *History) Undo(policy StepPolicy) bool {
	n := policy.UndoSteps(h)
	if n <= 0 || n > h.index {
		return false
	}
	h.index -= n
	return true
}

func (h *History) Redo(policy StepPolicy) bool {
	n := policy.RedoSteps(h)
	if n <= 0 || h.index+n > len(h.entries) {
		return false
	}
	h.index += n
	return true
}

func (h *History) CanUndo(policy StepPolicy) bool {
	n := policy.UndoSteps(h)
	return n > 0 && n <= h.index
}

func (h *History) CanRedo(policy StepPolicy) bool {
	n := policy.RedoSteps(h)
	return n > 0 && h.index+n <= len(h.entries)
}

// Entries 到 index 为止的记录（不含可重做部分）
func (h *History) Entries() []Entry {
	out := make([]Entry, h.index)
	copy(out, h.entries[:h.index])
	return out
}

// Notations 第 1..index 步的记谱
func (h *History) Notations() []string {
	out := make([]string, 0, h.index)
	for _, e := range h.entries[:h.index] {
		out = append(out, e.Notation)
	}
	return out
}

func (h *History) Moves() []chess.Move {
	out := make([]chess.Move, 0, h.index)
	for _, e := range h.entries[:h.index] {
		out = append(out, e.Move)
	}
	return out
}

func (h *History) Reset(initial *chess.Position) {
	h.initial = initial
	h.entries = nil
	h.index = 0
}
