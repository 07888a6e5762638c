package lexicon

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/boggle/config"
)

type sourceKind int

const (
	sourceFile sourceKind = iota
	sourceInline
	sourceURL
	sourceSQLite
)

const (
	inlinePrefix = "words:"
	filePrefix   = "file:"
	sqlitePrefix = "sqlite:"
)

var ErrNoSource = errors.New("no lexicon source given")

func kindOf(source string) sourceKind {
	switch {
	case strings.HasPrefix(source, inlinePrefix):
		return sourceInline
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return sourceURL
	case strings.HasPrefix(source, sqlitePrefix):
		return sourceSQLite
	case strings.HasPrefix(source, filePrefix):
		return sourceFile
	case strings.ContainsAny(source, " \t\n"):
		return sourceInline
	}
	return sourceFile
}

// ReadWords returns the words named by source, which is one of:
//
//	words:cat dog       whitespace-separated words (the prefix is optional
//	                    when the text contains whitespace)
//	http(s)://...       a word list fetched over HTTP
//	sqlite:path.db      the word column of the words table
//	file:path, path     a local word list
//	name                <data-path>/lexica/<name>.txt
//
// Word lists are split on any whitespace.
func ReadWords(ctx context.Context, cfg *config.Config, source string) ([]string, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrNoSource
	}
	switch kindOf(source) {
	case sourceInline:
		return Words(strings.NewReader(strings.TrimPrefix(source, inlinePrefix)))
	case sourceURL:
		return fetchWords(ctx, cfg, source)
	case sourceSQLite:
		return queryWords(ctx, strings.TrimPrefix(source, sqlitePrefix))
	}
	return fileWords(cfg, strings.TrimPrefix(source, filePrefix))
}

// Words splits r on whitespace.
func Words(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func fileWords(cfg *config.Config, path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !strings.ContainsAny(path, `/\.`) {
		named := filepath.Join(cfg.GetString(config.ConfigDataPath), "lexica", path+".txt")
		log.Debug().Str("path", named).Msg("looking for named lexicon")
		f, err = os.Open(named)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Words(f)
}

type httpStatusError struct {
	url    string
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("fetching %v: status %d", e.url, e.status)
}

func fetchWords(ctx context.Context, cfg *config.Config, url string) ([]string, error) {
	client := &http.Client{Timeout: cfg.GetDuration(config.ConfigFetchTimeout)}
	attempts := max(cfg.GetInt(config.ConfigFetchAttempts), 1)
	var words []string
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				err := &httpStatusError{url: url, status: resp.StatusCode}
				if resp.StatusCode < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			words, err = Words(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Str("url", url).Msg("retrying lexicon fetch")
		}),
	)
	if err != nil {
		return nil, err
	}
	return words, nil
}

func queryWords(ctx context.Context, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	rows, err := db.QueryContext(ctx, "SELECT word FROM words")
	if err != nil {
		return nil, fmt.Errorf("querying %v: %w", path, err)
	}
	defer rows.Close()
	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, strings.Fields(w)...)
	}
	return words, rows.Err()
}
