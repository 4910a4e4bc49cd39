package engine

import "chessmatch/internal/chess"

const ttMaxEntries = 1_000_000

// 只存 hash 着法用于排序，不存分数，不做截断
type ttEntry struct {
	Key   uint64
	Depth int
	Move  chess.Move
}

type hashMoveTable struct {
	m map[uint64]ttEntry
}

func newHashMoveTable() *hashMoveTable {
	return &hashMoveTable{m: make(map[uint64]ttEntry, 1<<14)}
}

// 深度优先替换；表满了直接清空
func (t *hashMoveTable) store(key uint64, depth int, mv chess.Move) {
	if mv.IsNull() {
		return
	}
	if len(t.m) > ttMaxEntries {
		t.m = make(map[uint64]ttEntry, 1<<14)
	}
	old, ok := t.m[key]
	if !ok || depth >= old.Depth {
		t.m[key] = ttEntry{Key: key, Depth: depth, Move: mv}
	}
}

func (t *hashMoveTable) move(key uint64) chess.Move {
	if e, ok := t.m[key]; ok {
		return e.Move
	}
	return chess.NullMove
}
