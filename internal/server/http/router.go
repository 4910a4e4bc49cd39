package httpserver

import (
	"net/http"

	"go.uber.org/zap"

	"chessmatch/internal/server/game"
)

// NewRouter /api/* 交给 Handler，其余是静态页面
func NewRouter(sess *game.Session, webDir string, log *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(sess, log))
	RegisterStaticRoutes(mux, webDir)
	return mux
}
