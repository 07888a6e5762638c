package main

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/boggle/bot"
	"github.com/domino14/boggle/config"
)

func TestHandleRequest(t *testing.T) {
	is := is.New(t)
	solver = bot.NewBot(config.DefaultConfig())
	evt := bot.SolveRequest{
		Board:     "ca/ts",
		Lexicon:   "words:cat cats act at",
		MinLength: 3,
	}
	ret, err := HandleRequest(context.Background(), evt)
	is.NoErr(err)
	is.Equal(ret.Words, []string{"act", "cat", "cats"})

	_, err = HandleRequest(context.Background(), bot.SolveRequest{Board: "ab/c"})
	is.True(err != nil)
}
