package mobile

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"chessmatch/internal/engine"
	"chessmatch/internal/match"
	"chessmatch/internal/server/game"
	httpserver "chessmatch/internal/server/http"
)

var (
	mu      sync.Mutex
	running *http.Server
	session *game.Session
)

// newServer 只监听 127.0.0.1；gomobile 导出的函数只能用基本类型，配置都摊平成参数
func newServer(webDir, port string, depth int, engineWhite bool, log *zap.Logger) (*http.Server, *game.Session) {
	sess := game.NewSession(match.Config{
		Mode:        match.ModeEngine,
		EngineWhite: engineWhite,
		Search:      engine.SearchConfig{MaxDepth: depth},
		Logger:      log,
	})
	srv := &http.Server{
		Addr:              "127.0.0.1:" + port,
		Handler:           httpserver.NewRouter(sess, webDir, log.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv, sess
}

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// depth: engine search depth, <=0 for the default
func StartServer(webDir string, port string, depth int, engineWhite bool) {
	mu.Lock()
	defer mu.Unlock()
	if running != nil {
		return
	}
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	zap.ReplaceGlobals(logger)

	srv, sess := newServer(webDir, port, depth, engineWhite, logger)
	running, session = srv, sess

	// 放到后台，不阻塞 Android UI 线程
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server Error: %v", err)
		}
	}()
}

// StopServer 关掉服务并让引擎搜索退出
func StopServer() {
	mu.Lock()
	defer mu.Unlock()
	if running == nil {
		return
	}
	_ = running.Close()
	session.Close()
	running, session = nil, nil
}
