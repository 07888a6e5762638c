package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigBoardRows), 4)
	is.Equal(cfg.GetInt(ConfigMinWordLength), 3)
	is.True(cfg.GetBool(ConfigFoldCase))
	is.Equal(cfg.GetDuration(ConfigFetchTimeout), 30*time.Second)
	is.Equal(cfg.GetString(ConfigDefaultLetterDistribution), "english")
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--board-rows", "5", "--min-word-length=4", "--debug"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigBoardRows), 5)
	is.Equal(cfg.GetInt(ConfigBoardCols), 4)
	is.Equal(cfg.GetInt(ConfigMinWordLength), 4)
	is.True(cfg.GetBool(ConfigDebug))
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("BOGGLE_BOARD_COLS", "6")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigBoardCols), 6)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--no-such-flag"})
	is.True(err != nil)
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.AdjustRelativePaths("/opt/boggle")
	is.Equal(cfg.GetString(ConfigDataPath), "/opt/boggle/data")
}

func TestWGLConfig(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Set(ConfigDataPath, "/srv/boggle/data")
	is.Equal(cfg.WGLConfig().DataPath, "/srv/boggle/data")
}
