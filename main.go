package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/pdxmph/todo-tui/internal/config"
	"github.com/pdxmph/todo-tui/internal/logging"
	"github.com/pdxmph/todo-tui/internal/storage"
	"github.com/pdxmph/todo-tui/internal/todo"
	"github.com/pdxmph/todo-tui/internal/tui"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file (default ~/.config/todo-tui/config.toml)")
		filePath   = flag.String("file", "", "task file, overrides config")
		backend    = flag.String("backend", "", "storage backend: json or sqlite")
		list       = flag.Bool("list", false, "print tasks and exit")
		fixtures   = flag.String("fixtures", "", "write sample tasks to `path` and exit")
		initConfig = flag.Bool("init-config", false, "write the default config file and exit")
	)
	flag.Parse()

	if *initConfig {
		if err := config.Default().Save(); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %s\n", config.Path())
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	if *filePath != "" {
		cfg.Storage.Path = *filePath
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *fixtures != "" {
		cfg.Storage.Path = *fixtures
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		fatal(err)
	}
	defer closer.Close()

	backendImpl, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path, logger)
	if err != nil {
		fatal(err)
	}
	defer backendImpl.Close()

	if *fixtures != "" {
		if err := todo.WriteFixtures(backendImpl, time.Now()); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote sample tasks to %s\n", cfg.Storage.Path)
		return
	}

	store, err := todo.NewStore(backendImpl, logger)
	if err != nil {
		fatal(err)
	}

	if *list {
		printTasks(os.Stdout, store.List())
		return
	}

	if err := run(store, logger); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func run(store *todo.Store, logger *log.Logger) error {
	logger.Info("starting", "backend", store.Backend(), "tasks", store.Len())

	p := tea.NewProgram(tui.New(store, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	logger.Info("exiting")
	return nil
}

func printTasks(w io.Writer, tasks []todo.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for i, t := range tasks {
		fmt.Fprintf(w, "%3d. %s\n", i, t)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "todo-tui: %v\n", err)
	os.Exit(1)
}
