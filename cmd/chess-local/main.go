package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chessmatch/internal/cliutil"
	"chessmatch/internal/engine"
	"chessmatch/internal/match"
	"chessmatch/internal/server/game"
	httpserver "chessmatch/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，没有图形界面时会失败，忽略
}

func browserURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr + "/web/"
}

func main() {
	addr := flag.String("addr", cliutil.Getenv("CHESS_ADDR", "127.0.0.1:2888"), "listen address")
	webDir := flag.String("web", cliutil.Getenv("CHESS_WEB", "./web"), "directory with index.html / js / css")
	mode := flag.String("mode", cliutil.Getenv("CHESS_MODE", "engine"), "engine | two-player")
	engineWhite := flag.Bool("engine-white", cliutil.Getenb("CHESS_ENGINE_WHITE", false), "engine plays white in engine mode")
	depth := flag.Int("depth", cliutil.Getenvi("CHESS_DEPTH", engine.DefaultMaxDepth), "engine max search depth (plies)")
	thinkTime := flag.Duration("time", cliutil.GetenvMillis("CHESS_TIME_MS", engine.DefaultTimeLimit), "engine time limit per move")
	logLevel := flag.String("log-level", cliutil.Getenv("CHESS_LOG_LEVEL", "info"), "debug | info | warn | error")
	noBrowser := flag.Bool("no-browser", cliutil.Getenb("CHESS_NO_BROWSER", false), "do not open the default browser")
	flag.Parse()

	logger, err := cliutil.NewLogger(*logLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	m, err := match.ParseMode(*mode)
	if err != nil {
		log.Fatalf("-mode: %v", err)
	}

	sess := game.NewSession(match.Config{
		Mode:        m,
		EngineWhite: *engineWhite,
		Search:      engine.SearchConfig{MaxDepth: *depth, TimeLimit: *thinkTime},
		Logger:      logger,
	})
	defer sess.Close()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpserver.NewRouter(sess, *webDir, logger.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s, serving static from %s", *addr, *webDir)
	logger.Info("session started",
		zap.String("game_id", sess.ID()),
		zap.Stringer("mode", m),
		zap.Int("depth", *depth),
		zap.Duration("time_limit", *thinkTime))

	if !*noBrowser {
		// 延迟 100ms 打开默认浏览器，否则服务可能还没起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser(browserURL(*addr))
		}()
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	logger.Info("server stopped")
}
