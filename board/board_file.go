package board

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseRow splits one row description into tiles. A row containing
// whitespace is split on it ("qu i t"); otherwise every rune is one tile
// ("cat").
func ParseRow(row string) []string {
	row = strings.TrimSpace(row)
	if strings.ContainsAny(row, " \t") {
		return strings.Fields(row)
	}
	return splitRunes(row)
}

// ParseBoard reads a board from a single string with rows separated by "/"
// or newlines, e.g. "ca/ts" or "qu i/t e".
func ParseBoard(desc string) (*Board, error) {
	desc = strings.ReplaceAll(desc, "\n", "/")
	var rows [][]string
	for _, r := range strings.Split(desc, "/") {
		if strings.TrimSpace(r) == "" {
			continue
		}
		rows = append(rows, ParseRow(r))
	}
	return BoardFromRows(rows)
}

type boardFile struct {
	// Each row is either a string (see ParseRow) or a list of tiles.
	Rows []any `yaml:"rows"`
}

// ReadBoardYAML reads a board description such as
//
//	rows:
//	  - [c, a]
//	  - "t s"
func ReadBoardYAML(r io.Reader) (*Board, error) {
	var bf boardFile
	if err := yaml.NewDecoder(r).Decode(&bf); err != nil {
		return nil, fmt.Errorf("reading board yaml: %w", err)
	}
	rows := make([][]string, 0, len(bf.Rows))
	for i, raw := range bf.Rows {
		switch row := raw.(type) {
		case string:
			rows = append(rows, ParseRow(row))
		case []any:
			tiles := make([]string, len(row))
			for j, t := range row {
				tiles[j] = fmt.Sprint(t)
			}
			rows = append(rows, tiles)
		default:
			return nil, fmt.Errorf("row %d: unsupported row type %T", i+1, raw)
		}
	}
	return BoardFromRows(rows)
}

// LoadBoardFile reads a YAML board file from disk.
func LoadBoardFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBoardYAML(f)
}

func splitRunes(s string) []string {
	tiles := make([]string, 0, len(s))
	for _, r := range s {
		tiles = append(tiles, string(r))
	}
	return tiles
}
