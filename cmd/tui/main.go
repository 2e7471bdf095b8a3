package main

import (
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/td0m/pomotask/internal/config"
	"github.com/td0m/pomotask/internal/logger"
	"github.com/td0m/pomotask/pkg/notify"
	"github.com/td0m/pomotask/pkg/persist"
	"github.com/td0m/pomotask/pkg/task"
	"github.com/td0m/pomotask/pkg/timer"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var (
	configPath  = flag.String("config", "", "Path to config file (default: user config dir)")
	backend     = flag.String("backend", "", "Storage backend: json, bolt, redis or memory")
	filePath    = flag.String("file", "", "Path to task file or database")
	writeConfig = flag.Bool("write-config", false, "Write the resolved config to the config file and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath, config.Overrides{Backend: *backend, Path: *filePath})
	check(err)
	if *writeConfig {
		path := *configPath
		if path == "" {
			path = config.DefaultPath()
		}
		check(config.Save(path, cfg))
		fmt.Println("config written to", path)
		return
	}

	log, closeLog, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.Logger.File,
	})
	check(err)
	defer closeLog()

	db, err := persist.Open(persist.Options{
		Backend:  cfg.Store.Backend,
		Path:     cfg.Store.Path,
		RedisURL: cfg.Store.RedisURL,
	})
	check(err)
	defer db.Close()

	toasts := notify.NewQueue(16)
	defer toasts.Close()
	sink := notify.Multi(toasts, notify.Log(log))

	store := task.NewStore(persist.NewTasks(db), task.WithSink(sink), task.WithLogger(log))
	store.Load()

	engine := timer.New(timer.WithSink(sink), timer.WithLogger(log))
	defer engine.Close()

	a := newApp(store, engine, toasts)
	log.Info("starting", zap.String("backend", cfg.Store.Backend), zap.Int("tasks", store.Len()))

	p := tea.NewProgram(a)
	p.EnterAltScreen()
	defer p.ExitAltScreen()

	check(p.Start())
}
