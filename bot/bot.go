package bot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/boggle/board"
	"github.com/domino14/boggle/config"
	"github.com/domino14/boggle/lexicon"
	"github.com/domino14/boggle/search"
	"github.com/domino14/boggle/tilemapping"
)

// SolveRequest asks for the words on a board. If neither Rows nor Board is
// given, a random board is generated and returned in the response.
type SolveRequest struct {
	Rows         [][]string `json:"rows,omitempty"`
	Board        string     `json:"board,omitempty"`
	Lexicon      string     `json:"lexicon,omitempty"`
	MinLength    int        `json:"min_length,omitempty"`
	Distribution string     `json:"distribution,omitempty"`
	BoardRows    int        `json:"board_rows,omitempty"`
	BoardCols    int        `json:"board_cols,omitempty"`
}

type SolveResponse struct {
	Board [][]string `json:"board,omitempty"`
	Words []string   `json:"words"`
	Error string     `json:"error,omitempty"`
}

type Bot struct {
	config *config.Config
	solver *search.Solver
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{config: cfg, solver: search.NewSolver(cfg)}
}

func errorResponse(message string, err error) *SolveResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &SolveResponse{Error: msg}
}

func (bot *Bot) makeBoard(req *SolveRequest) (*board.Board, error) {
	switch {
	case len(req.Rows) > 0:
		return board.BoardFromRows(req.Rows)
	case req.Board != "":
		return board.ParseBoard(req.Board)
	}
	distName := req.Distribution
	if distName == "" {
		distName = bot.config.GetString(config.ConfigDefaultLetterDistribution)
	}
	ld, err := tilemapping.NamedLetterDistribution(bot.config, distName)
	if err != nil {
		return nil, err
	}
	rows, cols := req.BoardRows, req.BoardCols
	if rows == 0 {
		rows = bot.config.GetInt(config.ConfigBoardRows)
	}
	if cols == 0 {
		cols = bot.config.GetInt(config.ConfigBoardCols)
	}
	return board.MakeBoard(rows, cols, ld.RandomTile)
}

// Solve answers a request. Errors are reported in the response.
func (bot *Bot) Solve(ctx context.Context, req *SolveRequest) *SolveResponse {
	b, err := bot.makeBoard(req)
	if err != nil {
		return errorResponse("bad board", err)
	}
	lex, err := lexicon.Load(ctx, bot.config, req.Lexicon, lexicon.OptionsFromConfig(bot.config))
	if err != nil {
		return errorResponse("could not load lexicon", err)
	}
	words, err := bot.solver.Solve(ctx, b, lex.Root())
	if err != nil {
		return errorResponse("solve failed", err)
	}
	minLength := req.MinLength
	if minLength == 0 {
		minLength = bot.config.GetInt(config.ConfigMinWordLength)
	}
	return &SolveResponse{
		Board: b.Rows(),
		Words: search.FilterLength(words, minLength),
	}
}

func (bot *Bot) handle(ctx context.Context, data []byte) *SolveResponse {
	req := SolveRequest{}
	if err := json.Unmarshal(data, &req); err != nil {
		return errorResponse("could not parse request", err)
	}
	return bot.Solve(ctx, &req)
}

func reply(m *nats.Msg, data []byte) {
	if err := m.Respond(data); err != nil {
		log.Err(err).Msg("respond-error")
	}
}

// Serve answers solve requests on channel until ctx is done.
func (bot *Bot) Serve(ctx context.Context, channel string) error {
	nc, err := nats.Connect(bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()

	_, err = nc.Subscribe(channel, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		resp := bot.handle(ctx, m.Data)
		data, err := json.Marshal(resp)
		if err != nil {
			// Should never happen, ideally, but we need to do something sensible here.
			reply(m, []byte(err.Error()))
			return
		}
		reply(m, data)
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}

	log.Info().Msgf("Listening on [%s]", channel)
	<-ctx.Done()
	log.Info().Msg("draining nats connection")
	return nc.Drain()
}
