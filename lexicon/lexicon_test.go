package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/boggle/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigFetchAttempts, 3)
	return cfg
}

func TestBuild(t *testing.T) {
	is := is.New(t)
	root := Build([]string{"Cat", "", "DOG", "cat"}, Options{FoldCase: true})
	is.Equal(root.Words(), []string{"cat", "dog"})

	root = Build([]string{"Cat", "cat"}, Options{})
	is.Equal(root.Words(), []string{"Cat", "cat"})

	root = Build([]string{"quit", "quo"}, Options{MultiLetterTiles: []string{"qu"}})
	is.True(root.Child("qu") != nil)
	is.True(root.Child("q") == nil)
	is.Equal(root.NumWords(), 2)
}

func TestKindOf(t *testing.T) {
	is := is.New(t)
	is.Equal(kindOf("words:cat"), sourceInline)
	is.Equal(kindOf("cat dog"), sourceInline)
	is.Equal(kindOf("https://example.com/words.txt"), sourceURL)
	is.Equal(kindOf("sqlite:/tmp/words.db"), sourceSQLite)
	is.Equal(kindOf("file:/tmp/words.txt"), sourceFile)
	is.Equal(kindOf("/tmp/words.txt"), sourceFile)
	is.Equal(kindOf("twl06"), sourceFile)
}

func TestReadInline(t *testing.T) {
	is := is.New(t)
	words, err := ReadWords(context.Background(), testConfig(), "words:cat  cats\nat\tas")
	is.NoErr(err)
	is.Equal(words, []string{"cat", "cats", "at", "as"})

	_, err = ReadWords(context.Background(), testConfig(), "  ")
	is.Equal(err, ErrNoSource)
}

func TestReadFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")
	is.NoErr(os.WriteFile(path, []byte("apple banana\ncherry\n\n"), 0644))

	words, err := ReadWords(context.Background(), testConfig(), path)
	is.NoErr(err)
	is.Equal(words, []string{"apple", "banana", "cherry"})

	words, err = ReadWords(context.Background(), testConfig(), "file:"+path)
	is.NoErr(err)
	is.Equal(len(words), 3)

	_, err = ReadWords(context.Background(), testConfig(), filepath.Join(dir, "missing.txt"))
	is.True(err != nil)
}

func TestReadNamedLexicon(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(os.MkdirAll(filepath.Join(dir, "lexica"), 0755))
	is.NoErr(os.WriteFile(filepath.Join(dir, "lexica", "tiny.txt"), []byte("zo\nza\n"), 0644))
	cfg := testConfig()
	cfg.Set(config.ConfigDataPath, dir)

	words, err := ReadWords(context.Background(), cfg, "tiny")
	is.NoErr(err)
	is.Equal(words, []string{"zo", "za"})

	_, err = ReadWords(context.Background(), cfg, "huge")
	is.True(err != nil)
}

func TestReadURL(t *testing.T) {
	is := is.New(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		switch r.URL.Path {
		case "/flaky":
			if n == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, "alpha beta\ngamma\n")
		case "/words":
			fmt.Fprint(w, "alpha beta\ngamma\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	words, err := ReadWords(context.Background(), testConfig(), srv.URL+"/words")
	is.NoErr(err)
	is.Equal(words, []string{"alpha", "beta", "gamma"})

	hits.Store(0)
	words, err = ReadWords(context.Background(), testConfig(), srv.URL+"/flaky")
	is.NoErr(err)
	is.Equal(len(words), 3)
	is.Equal(hits.Load(), int32(2))

	// A 404 is not retried.
	hits.Store(0)
	_, err = ReadWords(context.Background(), testConfig(), srv.URL+"/missing")
	is.True(err != nil)
	is.Equal(hits.Load(), int32(1))
}

func TestReadSQLite(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "words.db")
	db, err := sql.Open("sqlite", path)
	is.NoErr(err)
	_, err = db.Exec("CREATE TABLE words (word TEXT NOT NULL)")
	is.NoErr(err)
	for _, w := range []string{"quit", "quiet", "tie"} {
		_, err = db.Exec("INSERT INTO words (word) VALUES (?)", w)
		is.NoErr(err)
	}
	is.NoErr(db.Close())

	words, err := ReadWords(context.Background(), testConfig(), "sqlite:"+path)
	is.NoErr(err)
	is.Equal(len(words), 3)

	_, err = ReadWords(context.Background(), testConfig(), "sqlite:"+filepath.Join(t.TempDir(), "none.db"))
	is.True(err != nil)
}

func TestLoadCaches(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	src := "words:load caches test"
	lex, err := Load(context.Background(), cfg, src, Options{FoldCase: true})
	is.NoErr(err)
	is.Equal(lex.Name(), "inline")
	is.True(lex.HasWord("caches"))
	is.True(!lex.HasWord("cache"))

	again, err := Load(context.Background(), cfg, src, Options{FoldCase: true})
	is.NoErr(err)
	is.True(lex == again)

	other, err := Load(context.Background(), cfg, src, Options{})
	is.NoErr(err)
	is.True(lex != other)
}

func TestLoadDefaultSource(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigDefaultLexicon, "words:default source")
	lex, err := Load(context.Background(), cfg, "", OptionsFromConfig(cfg))
	is.NoErr(err)
	is.True(lex.HasWord("default"))
	is.Equal(lex.Root().NumWords(), 2)
}

func TestHasWordWithMultiLetterTiles(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	opts := Options{FoldCase: true, MultiLetterTiles: []string{"qu"}}
	lex, err := Load(context.Background(), cfg, "words:quit quiet tiq", opts)
	is.NoErr(err)
	is.True(lex.Root().Child("qu") != nil)
	is.True(lex.HasWord("quit"))
	is.True(lex.HasWord("quiet"))
	is.True(lex.HasWord("tiq"))
	is.True(!lex.HasWord("qui"))
	is.True(!lex.HasWord("quits"))
}
