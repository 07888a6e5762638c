package lexicon

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/domino14/boggle/cache"
	"github.com/domino14/boggle/config"
	"github.com/domino14/boggle/tilemapping"
	"github.com/domino14/boggle/trie"
)

// A Lexicon is a loaded dictionary: where it came from and the trie built
// from its words. The trie is shared and must not be modified.
type Lexicon struct {
	name  string
	root  *trie.Node
	multi []string
}

func (l *Lexicon) Name() string {
	return l.name
}

func (l *Lexicon) Root() *trie.Node {
	return l.root
}

// HasWord reports whether word is in the lexicon. A lexicon built with
// multi-letter tiles splits word into the same tiles first.
func (l *Lexicon) HasWord(word string) bool {
	if len(l.multi) > 0 {
		return l.root.ContainsUnits(tilemapping.Tokenize(word, l.multi))
	}
	return l.root.Contains(word)
}

// Options control how raw words become trie entries.
type Options struct {
	// FoldCase lower-cases every word.
	FoldCase bool
	// MultiLetterTiles, if set, are inserted as single edges, e.g. "qu".
	MultiLetterTiles []string
}

// OptionsFromConfig builds options from the config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{FoldCase: cfg.GetBool(config.ConfigFoldCase)}
}

func (o Options) key() string {
	return strconv.FormatBool(o.FoldCase) + ":" + strings.Join(o.MultiLetterTiles, ",")
}

// Build inserts words into a new trie. Empty entries are skipped.
func Build(words []string, opts Options) *trie.Node {
	root := trie.New()
	caser := cases.Lower(language.Und)
	for _, w := range words {
		if opts.FoldCase {
			w = caser.String(w)
		}
		if w == "" {
			continue
		}
		if len(opts.MultiLetterTiles) > 0 {
			root.InsertUnits(tilemapping.Tokenize(w, opts.MultiLetterTiles))
		} else {
			root.Insert(w)
		}
	}
	return root
}

func cacheKey(source string, opts Options) string {
	if kindOf(source) == sourceInline {
		return fmt.Sprintf("lexicon:inline:%x:%s", xxhash.Sum64([]byte(source)), opts.key())
	}
	return "lexicon:" + source + ":" + opts.key()
}

// Load reads the words from source and builds a lexicon, or returns the
// one already built for the same source and options. See ReadWords for
// the kinds of source understood.
func Load(ctx context.Context, cfg *config.Config, source string, opts Options) (*Lexicon, error) {
	if source == "" {
		source = cfg.GetString(config.ConfigDefaultLexicon)
	}
	key := cacheKey(source, opts)
	obj, err := cache.Load(cfg, key, func(cfg *config.Config, key string) (any, error) {
		words, err := ReadWords(ctx, cfg, source)
		if err != nil {
			return nil, err
		}
		root := Build(words, opts)
		log.Info().Str("source", displayName(source)).Int("words", root.NumWords()).
			Msg("built lexicon")
		return &Lexicon{name: displayName(source), root: root, multi: opts.MultiLetterTiles}, nil
	})
	if err != nil {
		return nil, err
	}
	return obj.(*Lexicon), nil
}

func displayName(source string) string {
	if kindOf(source) == sourceInline {
		return "inline"
	}
	return source
}
