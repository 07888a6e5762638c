package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/boggle/config"
)

func TestLoadOnce(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	calls := 0
	loader := func(cfg *config.Config, key string) (any, error) {
		calls++
		return key + "-obj", nil
	}
	obj, err := Load(cfg, "test-load-once", loader)
	is.NoErr(err)
	is.Equal(obj, "test-load-once-obj")
	obj, err = Load(cfg, "test-load-once", loader)
	is.NoErr(err)
	is.Equal(obj, "test-load-once-obj")
	is.Equal(calls, 1)

	Forget("test-load-once")
	_, err = Load(cfg, "test-load-once", loader)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestLoadErrorNotCached(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	calls := 0
	loader := func(cfg *config.Config, key string) (any, error) {
		calls++
		return nil, errors.New("boom")
	}
	_, err := Load(cfg, "test-load-error", loader)
	is.True(err != nil)
	_, err = Load(cfg, "test-load-error", loader)
	is.True(err != nil)
	is.Equal(calls, 2)
}
