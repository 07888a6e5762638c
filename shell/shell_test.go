package shell

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/boggle/config"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"load -tiles qu /path/to/words.txt",
			&shellcmd{"load", []string{"/path/to/words.txt"}, map[string]string{"tiles": "qu"}},
			nil},
		{"solve",
			&shellcmd{"solve", nil, map[string]string{}},
			nil},
		{`board cat dog "qu i t" -x 3 `,
			&shellcmd{"board",
				[]string{"cat", "dog", "qu i t"},
				map[string]string{"x": "3"}},
			nil,
		},
		{"set minlen -1",
			&shellcmd{"set", []string{"minlen", "-1"}, map[string]string{}},
			nil},
		{"new -rows 5 -cols",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func run(t *testing.T, sc *ShellController, line string) (*Response, error) {
	t.Helper()
	cmd, err := extractFields(line)
	if err != nil {
		t.Fatal(err)
	}
	return sc.dispatch(context.Background(), cmd)
}

func TestSolveSession(t *testing.T) {
	is := is.New(t)
	sc := newController(config.DefaultConfig())

	_, err := run(t, sc, "solve")
	is.Equal(err, errNoBoard)

	resp, err := run(t, sc, "board ca ts")
	is.NoErr(err)
	is.Equal(resp.message, "c a\nt s\n")

	resp, err = run(t, sc, `load "words:cat cats at as act"`)
	is.NoErr(err)
	is.Equal(resp.message, "Loaded inline (5 words)")

	resp, err = run(t, sc, "solve")
	is.NoErr(err)
	is.Equal(resp.message, "Found 3 words\n  4: cats\n  3: act cat")

	resp, err = run(t, sc, "solve -min 2")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "  2: as at"))

	resp, err = run(t, sc, "find cats")
	is.NoErr(err)
	is.Equal(resp.message, "cats: c(1,1) a(1,2) t(2,1) s(2,2)")

	resp, err = run(t, sc, "find dog")
	is.NoErr(err)
	is.Equal(resp.message, "dog is not in the lexicon")

	resp, err = run(t, sc, "stats")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "5 words, mean length 2.80"))
	is.True(strings.Contains(resp.message, "longest cats"))
}

func TestNewBoard(t *testing.T) {
	is := is.New(t)
	sc := newController(config.DefaultConfig())
	resp, err := run(t, sc, "new -rows 3 -cols 5 -dist english_qu")
	is.NoErr(err)
	is.Equal(strings.Count(resp.message, "\n"), 3)
	rows, cols := sc.curBoard.Dim()
	is.Equal(rows, 3)
	is.Equal(cols, 5)

	_, err = run(t, sc, "new -rows 0")
	is.True(err != nil)
	_, err = run(t, sc, "new -dist klingon")
	is.True(err != nil)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc := newController(config.DefaultConfig())
	resp, err := run(t, sc, "set minlen 5")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "minlen: 5"))
	is.Equal(sc.minLength, 5)

	_, err = run(t, sc, "set dist english_qu")
	is.NoErr(err)
	is.Equal(sc.distName, "english_qu")

	_, err = run(t, sc, "set dist klingon")
	is.True(err != nil)
	_, err = run(t, sc, "set color blue")
	is.True(err != nil)
}

func TestUnknownCommand(t *testing.T) {
	is := is.New(t)
	sc := newController(config.DefaultConfig())
	_, err := run(t, sc, "frobnicate")
	is.True(err != nil)
}

func TestFindWithQuTiles(t *testing.T) {
	is := is.New(t)
	sc := newController(config.DefaultConfig())
	_, err := run(t, sc, "board ca ts")
	is.NoErr(err)
	_, err = run(t, sc, `load -tiles qu "words:quit cat"`)
	is.NoErr(err)

	resp, err := run(t, sc, "find quit")
	is.NoErr(err)
	is.Equal(resp.message, "quit is not on the board")

	resp, err = run(t, sc, "find quay")
	is.NoErr(err)
	is.Equal(resp.message, "quay is not in the lexicon")

	_, err = run(t, sc, `board "qu i" "x t"`)
	is.NoErr(err)
	resp, err = run(t, sc, "find quit")
	is.NoErr(err)
	is.Equal(resp.message, "quit: qu(1,1) i(1,2) t(2,2)")
}

const solveScript = `
local json = require("json")
local http = require("http")
local r, err = http.get(%q)
if err then error(err) end
assert(boggle_board("ca ts"))
assert(boggle_load("words:" .. r.body))
assert(boggle_solve())
local w = json.encode(boggle_words())
if w ~= '["cat","cats"]' then error("got " .. w) end
local out, e = boggle_find("dog")
if out ~= "dog is not in the lexicon" then error(e or out) end
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScript(t *testing.T) {
	is := is.New(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "cat cats at as")
	}))
	defer ts.Close()

	sc := newController(config.DefaultConfig())
	path := writeScript(t, fmt.Sprintf(solveScript, ts.URL))
	resp, err := run(t, sc, "script "+path)
	is.NoErr(err)
	is.Equal(resp.message, "ran "+path)
	is.Equal(len(sc.lastWords), 4)
	rows, cols := sc.curBoard.Dim()
	is.Equal(rows, 2)
	is.Equal(cols, 2)
}

func TestScriptErrors(t *testing.T) {
	is := is.New(t)
	sc := newController(config.DefaultConfig())
	_, err := run(t, sc, "script")
	is.True(err != nil)
	_, err = run(t, sc, "script "+filepath.Join(t.TempDir(), "missing.lua"))
	is.True(err != nil)

	// Shell errors come back to the script as nil, message.
	path := writeScript(t, `assert(boggle_solve())`)
	_, err = run(t, sc, "script "+path)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "please make a board first"))
}
