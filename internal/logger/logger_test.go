package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNew_File(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	log, closeLog, err := New(Config{Level: "debug", Encoding: "json", File: file})
	is.NoErr(err)
	log.Debug("hello")
	is.NoErr(closeLog())

	bs, err := os.ReadFile(file)
	is.NoErr(err)
	is.True(strings.Contains(string(bs), `"msg":"hello"`))
	is.True(strings.Contains(string(bs), `"timestamp"`))
}

func TestNew_LevelFallback(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "app.log")
	log, closeLog, err := New(Config{Level: "loud", File: file})
	is.NoErr(err)
	log.Debug("hidden")
	log.Info("shown")
	is.NoErr(closeLog())

	bs, err := os.ReadFile(file)
	is.NoErr(err)
	is.True(!strings.Contains(string(bs), "hidden"))
	is.True(strings.Contains(string(bs), "shown"))
}

func TestNew_Disabled(t *testing.T) {
	is := is.New(t)
	log, closeLog, err := New(Config{})
	is.NoErr(err)
	log.Info("nowhere")
	is.NoErr(closeLog())
}
