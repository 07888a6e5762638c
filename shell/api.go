package shell

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/boggle/board"
	"github.com/domino14/boggle/config"
	"github.com/domino14/boggle/lexicon"
	"github.com/domino14/boggle/search"
	"github.com/domino14/boggle/tilemapping"
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) dispatch(ctx context.Context, cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newBoard(cmd)
	case "board":
		return sc.setBoard(cmd)
	case "show":
		if sc.curBoard == nil {
			return nil, errNoBoard
		}
		return msg(sc.curBoard.ToDisplayText()), nil
	case "load":
		return sc.load(ctx, cmd)
	case "solve":
		return sc.solve(ctx, cmd)
	case "find":
		return sc.find(cmd)
	case "stats":
		return sc.stats()
	case "set":
		return sc.set(cmd)
	case "script":
		return sc.script(cmd)
	}
	return nil, fmt.Errorf("unknown command %q; try `help`", cmd.cmd)
}

func (sc *ShellController) intOption(cmd *shellcmd, key string, def int) (int, error) {
	v, ok := cmd.options[key]
	if !ok {
		return def, nil
	}
	return strconv.Atoi(v)
}

func (sc *ShellController) newBoard(cmd *shellcmd) (*Response, error) {
	rows, err := sc.intOption(cmd, "rows", sc.config.GetInt(config.ConfigBoardRows))
	if err != nil {
		return nil, err
	}
	cols, err := sc.intOption(cmd, "cols", sc.config.GetInt(config.ConfigBoardCols))
	if err != nil {
		return nil, err
	}
	distName := sc.distName
	if d, ok := cmd.options["dist"]; ok {
		distName = d
	}
	ld, err := tilemapping.NamedLetterDistribution(sc.config, distName)
	if err != nil {
		return nil, err
	}
	b, err := board.MakeBoard(rows, cols, ld.RandomTile)
	if err != nil {
		return nil, err
	}
	sc.curBoard = b
	sc.lastWords = nil
	return msg(b.ToDisplayText()), nil
}

func (sc *ShellController) setBoard(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: board <row> [<row> ...], e.g. board cat dog \"qu i t\"")
	}
	b, err := board.ParseBoard(strings.Join(cmd.args, "/"))
	if err != nil {
		return nil, err
	}
	sc.curBoard = b
	sc.lastWords = nil
	return msg(b.ToDisplayText()), nil
}

func (sc *ShellController) load(ctx context.Context, cmd *shellcmd) (*Response, error) {
	source := strings.Join(cmd.args, " ")
	opts := lexicon.OptionsFromConfig(sc.config)
	if t, ok := cmd.options["tiles"]; ok {
		opts.MultiLetterTiles = strings.Split(t, ",")
	}
	lex, err := lexicon.Load(ctx, sc.config, source, opts)
	if err != nil {
		return nil, err
	}
	sc.curLex = lex
	sc.lastWords = nil
	return msg(fmt.Sprintf("Loaded %v (%d words)", lex.Name(), lex.Root().NumWords())), nil
}

func (sc *ShellController) ensureLexicon(ctx context.Context) error {
	if sc.curLex != nil {
		return nil
	}
	lex, err := lexicon.Load(ctx, sc.config, "", lexicon.OptionsFromConfig(sc.config))
	if err != nil {
		return fmt.Errorf("no lexicon loaded and the default failed: %w", err)
	}
	sc.curLex = lex
	return nil
}

func (sc *ShellController) solve(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.curBoard == nil {
		return nil, errNoBoard
	}
	minLength, err := sc.intOption(cmd, "min", sc.minLength)
	if err != nil {
		return nil, err
	}
	if err := sc.ensureLexicon(ctx); err != nil {
		return nil, err
	}
	words, err := sc.solver.Solve(ctx, sc.curBoard, sc.curLex.Root())
	if err != nil {
		return nil, err
	}
	sc.lastWords = words
	return msg(formatWords(search.FilterLength(words, minLength))), nil
}

// formatWords prints the words one line per length, longest first.
func formatWords(words []string) string {
	byLen := lo.GroupBy(words, func(w string) int {
		return utf8.RuneCountInString(w)
	})
	lengths := slices.Sorted(maps.Keys(byLen))
	slices.Reverse(lengths)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d words\n", len(words))
	for _, l := range lengths {
		fmt.Fprintf(&sb, "%3d: %s\n", l, strings.Join(byLen[l], " "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) find(cmd *shellcmd) (*Response, error) {
	if sc.curBoard == nil {
		return nil, errNoBoard
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: find <word>")
	}
	if err := sc.ensureLexicon(context.Background()); err != nil {
		return nil, err
	}
	word := cmd.args[0]
	path := search.FindPath(sc.curBoard, sc.curLex.Root(), word)
	if path == nil {
		if !sc.curLex.HasWord(word) {
			return msg(word + " is not in the lexicon"), nil
		}
		return msg(word + " is not on the board"), nil
	}
	steps := lo.Map(path, func(t board.Tile, _ int) string {
		return sc.curBoard.Letter(t) + t.String()
	})
	return msg(word + ": " + strings.Join(steps, " ")), nil
}

func (sc *ShellController) stats() (*Response, error) {
	if sc.lastWords == nil {
		return nil, errors.New("please `solve` first")
	}
	if len(sc.lastWords) == 0 {
		return msg("no words found"), nil
	}
	lengths := lo.Map(lo.Keys(sc.lastWords), func(w string, _ int) float64 {
		return float64(utf8.RuneCountInString(w))
	})
	mean, std := stat.MeanStdDev(lengths, nil)
	longest := lo.MaxBy(lo.Keys(sc.lastWords), func(a, b string) bool {
		return cmp.Or(cmp.Compare(len(a), len(b)), cmp.Compare(b, a)) > 0
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d words, mean length %.2f", len(lengths), mean)
	if len(lengths) > 1 {
		fmt.Fprintf(&sb, " (stddev %.2f)", std)
	}
	fmt.Fprintf(&sb, ", longest %v\n", longest)
	bins := int(slices.Max(lengths)-slices.Min(lengths)) + 1
	hist := histogram.Hist(bins, lengths)
	if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settingsText()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <option> <value>")
	}
	switch cmd.args[0] {
	case "minlen":
		n, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return nil, err
		}
		sc.minLength = n
	case "dist":
		if _, err := tilemapping.NamedLetterDistribution(sc.config, cmd.args[1]); err != nil {
			return nil, err
		}
		sc.distName = cmd.args[1]
	default:
		return nil, errors.New("no such option: " + cmd.args[0])
	}
	return msg(sc.settingsText()), nil
}

func (sc *ShellController) settingsText() string {
	lex := "(default) " + sc.config.GetString(config.ConfigDefaultLexicon)
	if sc.curLex != nil {
		lex = sc.curLex.Name()
	}
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	fmt.Fprintf(&sb, "  minlen: %d\n", sc.minLength)
	fmt.Fprintf(&sb, "  dist: %s\n", sc.distName)
	fmt.Fprintf(&sb, "  lexicon: %s", lex)
	return sb.String()
}
