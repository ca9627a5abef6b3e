package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/KromDaniel/regexopt/pkg/regexopt"
)

const historyFile = ".regex_opt_history"

// repl reads patterns line by line and prints each optimized form until EOF
// or :quit.
func repl(opts regexopt.Options, stdout, stderr io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("regex-opt> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(stdout)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if quit := evalLine(line, opts, stdout, stderr); quit {
			return nil
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}
}

// evalLine handles one line of the interactive session and reports whether
// the session should end.
func evalLine(line string, opts regexopt.Options, stdout, stderr io.Writer) bool {
	switch strings.TrimSpace(line) {
	case "":
		return false
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(stdout, "Enter a regular expression to optimize, or :quit to exit.")
		return false
	}
	if strings.HasPrefix(strings.TrimSpace(line), ":") {
		fmt.Fprintln(stdout, "unknown command. Type :help for help.")
		return false
	}

	res, err := regexopt.Optimize(line, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return false
	}
	saved := len([]rune(res.Input)) - len([]rune(res.Output))
	fmt.Fprintf(stdout, "%s\t(%d chars saved)\n", res.Output, saved)
	return false
}
