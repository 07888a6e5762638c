package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	wglconfig "github.com/domino14/word-golib/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath                  = "data-path"
	ConfigDefaultLexicon            = "default-lexicon"
	ConfigDefaultLetterDistribution = "default-letter-distribution"
	ConfigBoardRows                 = "board-rows"
	ConfigBoardCols                 = "board-cols"
	ConfigBoard                     = "board"
	ConfigBoardFile                 = "board-file"
	ConfigMinWordLength             = "min-word-length"
	ConfigFoldCase                  = "fold-case"
	ConfigSolverThreads             = "solver-threads"
	ConfigNatsURL                   = "nats-url"
	ConfigNatsChannel               = "nats-channel"
	ConfigSolveRemote               = "solve-remote"
	ConfigSolveLambda               = "solve-lambda"
	ConfigFetchAttempts             = "fetch-attempts"
	ConfigFetchTimeout              = "fetch-timeout"
	ConfigDebug                     = "debug"
)

type option struct {
	key   string
	value any
	usage string
}

var options = []option{
	{ConfigDataPath, "./data", "directory holding lexica and letter distributions"},
	{ConfigDefaultLexicon, "words", "the default dictionary source: a lexicon name, file, URL or sqlite: database"},
	{ConfigDefaultLetterDistribution, "english", "the letter distribution used for random boards. english, english_qu, or scrabble:<name> for a word-game tile bag"},
	{ConfigBoardRows, 4, "number of rows for random boards"},
	{ConfigBoardCols, 4, "number of columns for random boards"},
	{ConfigBoard, "", "explicit board, rows separated by /"},
	{ConfigBoardFile, "", "path to a YAML board file"},
	{ConfigMinWordLength, 3, "only report words at least this long"},
	{ConfigFoldCase, true, "lower-case dictionary words as they are loaded"},
	{ConfigSolverThreads, 0, "number of concurrent searches; 0 means one per CPU"},
	{ConfigNatsURL, "nats://127.0.0.1:4222", "NATS server URL for the solve service"},
	{ConfigNatsChannel, "boggle.solve", "NATS subject the solve service listens on"},
	{ConfigSolveRemote, false, "send the board to the solve service instead of solving locally"},
	{ConfigSolveLambda, "", "name of an AWS Lambda function to send the board to instead of solving locally"},
	{ConfigFetchAttempts, 3, "attempts when fetching a dictionary over HTTP"},
	{ConfigFetchTimeout, 30 * time.Second, "timeout for a single dictionary fetch"},
	{ConfigDebug, false, "debug logging on"},
}

// Config wraps a viper instance. Values come from flags, then BOGGLE_
// environment variables, then the defaults above.
type Config struct {
	*viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	for _, o := range options {
		v.SetDefault(o.key, o.value)
	}
	v.SetEnvPrefix("boggle")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns a config with only defaults and environment applied.
func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

func (c *Config) Load(args []string) error {
	c.Viper = newViper()
	fs := pflag.NewFlagSet("boggle", pflag.ContinueOnError)
	for _, o := range options {
		switch v := o.value.(type) {
		case string:
			fs.String(o.key, v, o.usage)
		case int:
			fs.Int(o.key, v, o.usage)
		case bool:
			fs.Bool(o.key, v, o.usage)
		case time.Duration:
			fs.Duration(o.key, v, o.usage)
		default:
			return fmt.Errorf("unhandled option type for %v", o.key)
		}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.BindPFlags(fs)
}

// AdjustRelativePaths makes the data path absolute relative to basePath,
// which is usually the directory of the running executable.
func (c *Config) AdjustRelativePaths(basePath string) {
	dp := c.GetString(ConfigDataPath)
	if strings.HasPrefix(dp, "./") {
		c.Set(ConfigDataPath, filepath.Join(basePath, dp))
	}
}

// WGLConfig is the config handed to word-golib. It shares our data path.
func (c *Config) WGLConfig() *wglconfig.Config {
	return &wglconfig.Config{DataPath: c.GetString(ConfigDataPath)}
}
