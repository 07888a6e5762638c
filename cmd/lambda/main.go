package main

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/boggle/bot"
	"github.com/domino14/boggle/config"
)

var solver *bot.Bot

const HardTimeLimit = 60 * time.Second

func HandleRequest(ctx context.Context, req bot.SolveRequest) (*bot.SolveResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, HardTimeLimit)
	defer cancel()

	st := time.Now()
	resp := solver.Solve(ctx, &req)
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	log.Info().Int("words", len(resp.Words)).Dur("elapsed", time.Since(st)).
		Msg("solved")
	return resp, nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(nil); err != nil {
		panic(err)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	solver = bot.NewBot(cfg)
	lambda.Start(HandleRequest)
}
