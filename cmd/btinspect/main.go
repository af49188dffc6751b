// Command btinspect is an interactive inspector for persisted snapshot
// stacks in a badger or sqlite store.
//
// Usage:
//
//	btinspect -backend badger -path ./data/stacks
//	btinspect -backend sqlite -path ./stacks.db
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rickchristie/backtrack/store/badger"
	"github.com/rickchristie/backtrack/store/sqlite"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorYellow = "\033[33m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

type closingStore interface {
	keyedStore
	Close() error
}

func openStore(backend, path string) (closingStore, error) {
	switch backend {
	case "badger":
		cfg := badger.DefaultConfig(path)
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		return badger.Open(cfg)
	case "sqlite":
		return sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unknown backend %q (want badger or sqlite)", backend)
	}
}

func run() error {
	backend := flag.String("backend", "badger", "store backend: badger or sqlite")
	path := flag.String("path", "", "store path (directory for badger, file for sqlite)")
	flag.Parse()

	if *path == "" {
		return errors.New("-path is required")
	}

	store, err := openStore(*backend, *path)
	if err != nil {
		return fmt.Errorf("open %s store: %w", *backend, err)
	}
	defer store.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          colorCyan + "btinspect> " + colorReset,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("list"),
			readline.PcItem("load"),
			readline.PcItem("show"),
			readline.PcItem("diff"),
			readline.PcItem("delete"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return fmt.Errorf(
			"failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Printf("%s%sbtinspect%s %s store at %s (type 'help')\n",
		colorBold, colorYellow, colorReset, *backend, *path)

	return repl(context.Background(), rl, os.Stdout, newInspector(store))
}

// lineReader is the part of *readline.Instance the REPL uses.
type lineReader interface {
	Readline() (string, error)
}

func repl(ctx context.Context, rl lineReader, w io.Writer, in *inspector) error {
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Fprintf(w, "%sGoodbye!%s\n", colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf(
				"failed to read input: %w", err)
		}

		quit, err := in.exec(ctx, w, strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(w, "%s%v%s\n", colorRed, err, colorReset)
			continue
		}
		if quit {
			fmt.Fprintf(w, "%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		}
	}
}
