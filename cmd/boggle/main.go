// Command boggle prints a board and every word on it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/boggle/board"
	"github.com/domino14/boggle/bot"
	"github.com/domino14/boggle/config"
	"github.com/domino14/boggle/lexicon"
	"github.com/domino14/boggle/search"
	"github.com/domino14/boggle/tilemapping"
)

func makeBoard(cfg *config.Config) (*board.Board, error) {
	if path := cfg.GetString(config.ConfigBoardFile); path != "" {
		return board.LoadBoardFile(path)
	}
	if desc := cfg.GetString(config.ConfigBoard); desc != "" {
		return board.ParseBoard(desc)
	}
	ld, err := tilemapping.NamedLetterDistribution(cfg, cfg.GetString(config.ConfigDefaultLetterDistribution))
	if err != nil {
		return nil, err
	}
	return board.MakeBoard(cfg.GetInt(config.ConfigBoardRows), cfg.GetInt(config.ConfigBoardCols), ld.RandomTile)
}

func solveLocal(ctx context.Context, cfg *config.Config, b *board.Board) ([]string, error) {
	lex, err := lexicon.Load(ctx, cfg, "", lexicon.OptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}
	words, err := search.NewSolver(cfg).Solve(ctx, b, lex.Root())
	if err != nil {
		return nil, err
	}
	return search.FilterLength(words, cfg.GetInt(config.ConfigMinWordLength)), nil
}

func solveRemote(cfg *config.Config, b *board.Board) ([]string, error) {
	nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		return nil, err
	}
	defer nc.Close()
	client := bot.NewClient(nc, cfg.GetString(config.ConfigNatsChannel))
	resp, err := client.RequestSolve(&bot.SolveRequest{
		Rows:      b.Rows(),
		Lexicon:   cfg.GetString(config.ConfigDefaultLexicon),
		MinLength: cfg.GetInt(config.ConfigMinWordLength),
	}, cfg.GetDuration(config.ConfigFetchTimeout))
	if err != nil {
		return nil, err
	}
	return resp.Words, nil
}

func solveLambda(ctx context.Context, cfg *config.Config, b *board.Board) ([]string, error) {
	client, err := bot.NewLambdaClient(ctx, cfg.GetString(config.ConfigSolveLambda))
	if err != nil {
		return nil, err
	}
	resp, err := client.RequestSolve(ctx, &bot.SolveRequest{
		Rows:      b.Rows(),
		Lexicon:   cfg.GetString(config.ConfigDefaultLexicon),
		MinLength: cfg.GetInt(config.ConfigMinWordLength),
	})
	if err != nil {
		return nil, err
	}
	return resp.Words, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	b, err := makeBoard(cfg)
	if err != nil {
		return fmt.Errorf("making board: %w", err)
	}
	fmt.Println(b.ToDisplayText())

	var found []string
	switch {
	case cfg.GetString(config.ConfigSolveLambda) != "":
		log.Debug().Str("function", cfg.GetString(config.ConfigSolveLambda)).Msg("solving with lambda")
		found, err = solveLambda(ctx, cfg, b)
	case cfg.GetBool(config.ConfigSolveRemote):
		log.Debug().Str("url", cfg.GetString(config.ConfigNatsURL)).Msg("solving remotely")
		found, err = solveRemote(cfg, b)
	default:
		found, err = solveLocal(ctx, cfg, b)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%d words\n", len(found))
	fmt.Println(strings.Join(found, "\n"))
	return nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("")
		stop()
		os.Exit(1)
	}
}
