package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chessmatch/internal/chess"
	"chessmatch/internal/engine"
	"chessmatch/internal/match"
)

type PlayerConfig struct {
	Name string
	Cfg  engine.SearchConfig
}

type gameResult struct {
	Winner chess.Color // NoColor 为和棋
	Reason string
	Plies  int
	PGN    string
}

// 工具里的判和，不属于规则：步数上限或 100 个半回合无吃子无兵动
const fiftyMoveHalfmoves = 100

func playGame(ctx context.Context, e *engine.Engine, white, black PlayerConfig, maxPlies int, log *zap.Logger) (gameResult, error) {
	m := match.NewMatch(log.Named("match"))

	for ply := 0; ; ply++ {
		if m.Terminal() {
			st := m.Status()
			res := gameResult{Winner: chess.NoColor, Reason: st.Kind.String(), Plies: ply, PGN: m.PGN()}
			if st.Kind == chess.Checkmate {
				res.Winner = st.Color
			}
			return res, nil
		}
		if ply >= maxPlies || m.Position().HalfmoveClock >= fiftyMoveHalfmoves {
			return gameResult{Winner: chess.NoColor, Reason: "adjudicated", Plies: ply, PGN: m.PGN()}, nil
		}
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}

		player := white
		if m.SideToMove() == chess.Black {
			player = black
		}
		res := e.Search(ctx, m.Position(), player.Cfg)
		if res.BestMove.IsNull() {
			return gameResult{}, fmt.Errorf("%s returned no move at %s", player.Name, m.Position().EncodeFEN())
		}
		out := m.Attempt(res.BestMove)
		if !out.OK() {
			return gameResult{}, fmt.Errorf("%s played %s: %s", player.Name, res.BestMove, out)
		}
		log.Debug("selfplay move",
			zap.Int("ply", ply+1),
			zap.String("player", player.Name),
			zap.String("san", out.Notation),
			zap.Int("score", res.Score),
			zap.Int("depth", res.Depth),
			zap.Int64("nodes", res.Nodes),
			zap.Duration("elapsed", res.TimeUsed))
	}
}

type tally struct {
	Wins  map[string]int
	Draws int
}

// runArena 两个配置轮流执白
func runArena(ctx context.Context, e *engine.Engine, a, b PlayerConfig, games, maxPlies int, log *zap.Logger, report func(game int, white, black PlayerConfig, r gameResult)) (tally, error) {
	t := tally{Wins: map[string]int{a.Name: 0, b.Name: 0}}
	for g := 0; g < games; g++ {
		white, black := a, b
		if g%2 == 1 {
			white, black = b, a
		}
		r, err := playGame(ctx, e, white, black, maxPlies, log)
		if err != nil {
			return t, err
		}
		switch r.Winner {
		case chess.White:
			t.Wins[white.Name]++
		case chess.Black:
			t.Wins[black.Name]++
		default:
			t.Draws++
		}
		if report != nil {
			report(g, white, black, r)
		}
	}
	return t, nil
}

// 结果标记之外带上胜方名字
func resultLine(r gameResult, white, black PlayerConfig) string {
	switch r.Winner {
	case chess.White:
		return "1-0, " + white.Name + " wins"
	case chess.Black:
		return "0-1, " + black.Name + " wins"
	}
	return "1/2-1/2"
}
