package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/boggle/board"
	"github.com/domino14/boggle/config"
	"github.com/domino14/boggle/lexicon"
	"github.com/domino14/boggle/search"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoBoard           = errors.New("please make a board first with the `new` or `board` command")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	curBoard  *board.Board
	curLex    *lexicon.Lexicon
	lastWords map[string]struct{}
	solver    *search.Solver

	minLength int
	distName  string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func newController(cfg *config.Config) *ShellController {
	return &ShellController{
		config:    cfg,
		solver:    search.NewSolver(cfg),
		minLength: cfg.GetInt(config.ConfigMinWordLength),
		distName:  cfg.GetString(config.ConfigDefaultLetterDistribution),
	}
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(cfg)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mboggle>\033[0m ",
		HistoryFile:     "/tmp/boggle_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    completer,

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

// extractFields splits a line into the command, its positional arguments,
// and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if len(f) > 1 && f[0] == '-' {
			if _, err := strconv.Atoi(f); err != nil {
				if i == len(fields)-1 {
					return nil, errWrongOptionSyntax
				}
				options[f[1:]] = fields[i+1]
				i++
				continue
			}
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	} else if err != nil {
		sc.showError(err)
		return nil
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	case "help":
		if len(cmd.args) == 0 {
			usage(sc.l.Stderr())
		} else {
			usageTopic(sc.l.Stderr(), cmd.args[0])
		}
		return nil
	}
	resp, err := sc.dispatch(context.Background(), cmd)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.standardModeSwitch(line, sig); err != nil {
			log.Debug().Err(err).Msg("leaving shell")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
