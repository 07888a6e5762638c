package tilemapping

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	wgltm "github.com/domino14/word-golib/tilemapping"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/boggle/cache"
	"github.com/domino14/boggle/config"
)

//go:embed data/*.csv
var embeddedDistributions embed.FS

var ErrEmptyDistribution = errors.New("letter distribution has no tiles")

// Distributions named scrabble:<name> are word-game tile bags loaded with
// word-golib from <data-path>/letterdistributions/<name>.csv.
const scrabblePrefix = "scrabble:"

// LetterDistribution encodes how often each tile appears on a random board.
// A tile is usually one letter but may be a combined tile like "qu".
type LetterDistribution struct {
	Name        string
	tiles       []string
	weights     []int
	numTotal    int
	multiLetter []string
}

// ScanLetterDistribution reads CSV rows of the form letter,quantity.
// Any further columns are ignored.
func ScanLetterDistribution(data io.Reader) (*LetterDistribution, error) {
	r := csv.NewReader(data)
	r.FieldsPerRecord = -1
	r.Comment = '#'
	ld := &LetterDistribution{}
	seen := map[string]bool{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("bad distribution row %v: need letter,quantity", record)
		}
		letter := strings.TrimSpace(record[0])
		if letter == "" {
			return nil, fmt.Errorf("bad distribution row %v: empty letter", record)
		}
		if seen[letter] {
			return nil, fmt.Errorf("letter %v appears twice in distribution", letter)
		}
		seen[letter] = true
		n, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative quantity for letter %v", letter)
		}
		ld.add(letter, n)
	}
	if ld.numTotal == 0 {
		return nil, ErrEmptyDistribution
	}
	return ld, nil
}

// NamedLetterDistribution loads <data-path>/letterdistributions/<name>.csv,
// falling back to the distributions built into the binary. A name of the
// form scrabble:<name> reads a word-game distribution instead.
func NamedLetterDistribution(cfg *config.Config, name string) (*LetterDistribution, error) {
	name = strings.ToLower(name)
	key := "letterdistribution:" + name
	obj, err := cache.Load(cfg, key, func(cfg *config.Config, _ string) (any, error) {
		return loadLetterDistribution(cfg, name)
	})
	if err != nil {
		return nil, err
	}
	return obj.(*LetterDistribution), nil
}

func (ld *LetterDistribution) add(letter string, n int) {
	ld.tiles = append(ld.tiles, letter)
	ld.weights = append(ld.weights, n)
	ld.numTotal += n
	if utf8.RuneCountInString(letter) > 1 {
		ld.multiLetter = append(ld.multiLetter, letter)
	}
}

func loadLetterDistribution(cfg *config.Config, name string) (*LetterDistribution, error) {
	if strings.HasPrefix(name, scrabblePrefix) {
		return scrabbleDistribution(cfg, strings.TrimPrefix(name, scrabblePrefix))
	}
	var f io.ReadCloser
	var err error
	path := filepath.Join(cfg.GetString(config.ConfigDataPath), "letterdistributions", name+".csv")
	f, err = os.Open(path)
	if err != nil {
		log.Debug().Str("path", path).Msg("no distribution on disk, using built-in")
		f, err = embeddedDistributions.Open("data/" + name + ".csv")
		if err != nil {
			return nil, fmt.Errorf("letter distribution %v not found", name)
		}
	}
	defer f.Close()
	ld, err := ScanLetterDistribution(f)
	if err != nil {
		return nil, err
	}
	ld.Name = name
	return ld, nil
}

// scrabbleDistribution turns a word-golib tile bag into a board
// distribution. Blanks have no letter and are dropped; multi-letter tiles
// such as [CH] become "ch".
func scrabbleDistribution(cfg *config.Config, name string) (*LetterDistribution, error) {
	dist, err := wgltm.GetDistribution(cfg.WGLConfig(), name)
	if err != nil {
		return nil, err
	}
	tm := dist.TileMapping()
	ld := &LetterDistribution{Name: scrabblePrefix + name}
	for ml, n := range dist.Distribution() {
		if ml == 0 || n == 0 {
			continue
		}
		letter := wgltm.MachineLetter(ml).UserVisible(tm, false)
		ld.add(strings.ToLower(strings.Trim(letter, "[]")), int(n))
	}
	if ld.numTotal == 0 {
		return nil, ErrEmptyDistribution
	}
	log.Debug().Str("name", ld.Name).Int("tiles", ld.numTotal).Msg("loaded word-game distribution")
	return ld, nil
}

// EnglishLetterDistribution returns the English letter distribution.
func EnglishLetterDistribution(cfg *config.Config) (*LetterDistribution, error) {
	return NamedLetterDistribution(cfg, "english")
}

// RandomTile draws a tile weighted by its quantity. Tiles are drawn with
// replacement; every call sees the full distribution.
func (ld *LetterDistribution) RandomTile() string {
	n := frand.Intn(ld.numTotal)
	for i, w := range ld.weights {
		if n < w {
			return ld.tiles[i]
		}
		n -= w
	}
	// unreachable while numTotal is the sum of the weights
	return ld.tiles[len(ld.tiles)-1]
}

// Tiles returns the distinct tiles in file order.
func (ld *LetterDistribution) Tiles() []string {
	return ld.tiles
}

// Quantity returns how many of the given tile the distribution holds.
func (ld *LetterDistribution) Quantity(tile string) int {
	for i, t := range ld.tiles {
		if t == tile {
			return ld.weights[i]
		}
	}
	return 0
}

func (ld *LetterDistribution) NumTotalTiles() int {
	return ld.numTotal
}

// MultiLetterTiles are the tiles longer than one letter, e.g. "qu".
func (ld *LetterDistribution) MultiLetterTiles() []string {
	return ld.multiLetter
}
