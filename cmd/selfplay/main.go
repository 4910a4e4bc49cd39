package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"chessmatch/internal/cliutil"
	"chessmatch/internal/engine"
)

func main() {
	games := flag.Int("games", 2, "number of games to play")
	whiteDepth := flag.Int("a-depth", cliutil.Getenvi("CHESS_DEPTH", 3), "search depth of player A")
	blackDepth := flag.Int("b-depth", 2, "search depth of player B")
	thinkTime := flag.Duration("time", cliutil.GetenvMillis("CHESS_TIME_MS", time.Second), "time limit per move")
	maxPlies := flag.Int("max-plies", 200, "adjudicate a draw after this many plies")
	printPGN := flag.Bool("pgn", true, "print the movetext of every game")
	pprofAddr := flag.String("pprof", "", "serve net/http/pprof on this address, e.g. localhost:6060")
	logLevel := flag.String("log-level", cliutil.Getenv("CHESS_LOG_LEVEL", "info"), "debug | info | warn | error")
	flag.Parse()

	logger, err := cliutil.NewLogger(*logLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := PlayerConfig{
		Name: fmt.Sprintf("A (depth %d)", *whiteDepth),
		Cfg:  engine.SearchConfig{MaxDepth: *whiteDepth, TimeLimit: *thinkTime},
	}
	b := PlayerConfig{
		Name: fmt.Sprintf("B (depth %d)", *blackDepth),
		Cfg:  engine.SearchConfig{MaxDepth: *blackDepth, TimeLimit: *thinkTime},
	}

	e := engine.NewEngine(logger.Named("engine"))
	start := time.Now()
	t, err := runArena(ctx, e, a, b, *games, *maxPlies, logger, func(g int, white, black PlayerConfig, r gameResult) {
		fmt.Printf("\n=== Game %d: White [%s] vs Black [%s] ===\n", g+1, white.Name, black.Name)
		if *printPGN {
			fmt.Println(r.PGN)
		}
		fmt.Printf("Result: %s after %d plies (%s)\n", resultLine(r, white, black), r.Plies, r.Reason)
	})
	if err != nil {
		log.Fatalf("selfplay: %v", err)
	}

	elapsed := time.Since(start)
	nodes := e.TotalNodes()
	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", a.Name, t.Wins[a.Name])
	fmt.Printf("%s: %d\n", b.Name, t.Wins[b.Name])
	fmt.Printf("Draws: %d\n", t.Draws)
	fmt.Printf("Nodes: %d, Time: %v, NPS: %d\n", nodes, elapsed.Round(time.Millisecond), int64(float64(nodes)/elapsed.Seconds()))
}
