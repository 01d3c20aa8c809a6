package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Jacob-Lockwood/uiua/engine"
	"github.com/Jacob-Lockwood/uiua/value"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to an instruction listing")
		expr        = flag.String("e", "", "Inline instruction listing")
		limit       = flag.Int("limit", 0, "Max elements per array result (0 = unlimited)")
		trace       = flag.Bool("trace", false, "Log every evaluation step")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *trace {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		engine.SetLogger(log)
	}

	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	if *interactive || (*file == "" && *expr == "" && stdinTTY) {
		if err := runInteractive(*limit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, *expr, *limit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file, expr string, limit int) error {
	src, name := expr, "-e"
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		src, name = string(data), file
	case expr == "":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		src, name = string(data), "stdin"
	}

	instrs, err := parseListing(src)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	var opts []engine.Option
	if limit > 0 {
		opts = append(opts, engine.WithLimit(limit))
	}
	out, err := engine.Evaluate(engine.DefaultTable(), instrs, nil, opts...)
	if err != nil {
		return err
	}

	// top of stack first
	for i := len(out) - 1; i >= 0; i-- {
		fmt.Println(formatValue(out[i]))
	}
	return nil
}

func formatValue(v engine.Value) string {
	switch v := v.(type) {
	case *value.Array:
		return v.String()
	case *engine.Function:
		return fmt.Sprintf("fn %s (%d -> %d)", v.Name(), v.In(), v.Out())
	}
	return fmt.Sprintf("%v", v)
}
