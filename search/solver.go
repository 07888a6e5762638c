package search

import (
	"context"
	"maps"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/boggle/board"
	"github.com/domino14/boggle/config"
	"github.com/domino14/boggle/trie"
)

// A Solver runs the searches from each starting tile concurrently. Every
// goroutine has its own frontier and result set; the board and the trie
// are only read.
type Solver struct {
	threads int
}

func NewSolver(cfg *config.Config) *Solver {
	threads := cfg.GetInt(config.ConfigSolverThreads)
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	return &Solver{threads: threads}
}

func (s *Solver) Threads() int {
	return s.threads
}

// Solve returns the same set as AllWords.
func (s *Solver) Solve(ctx context.Context, b *board.Board, dict *trie.Node) (map[string]struct{}, error) {
	st := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.threads)

	var mu sync.Mutex
	words := make(map[string]struct{})

	for _, t := range b.Tiles() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found := make(map[string]struct{})
			collect(b, dict, t, found, ctx.Done())
			if err := ctx.Err(); err != nil {
				return err
			}
			mu.Lock()
			maps.Copy(words, found)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug().Int("words", len(words)).Int("threads", s.threads).
		Dur("elapsed", time.Since(st)).Msg("solved board")
	return words, nil
}
