package engine

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Engine 无状态的搜索入口：每次 Search 都新建自己的 searcher 和哈希表，
// 这里只留日志和累计节点数，可以被多个 goroutine 同时调用。
type Engine struct {
	log   *zap.Logger
	nodes atomic.Int64
}

func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// TotalNodes 所有搜索累计访问的节点数（selfplay 统计用）
func (e *Engine) TotalNodes() int64 {
	return e.nodes.Load()
}
