package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

func main() {
	var trace bool
	var program string
	var statePath string
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.StringVar(&program, "e", "", "program text to run")
	flag.StringVar(&statePath, "state", "", "session state file to load on start and save on exit")
	flag.Parse()

	var opts []Option
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}

	interactive := program == "" && flag.NArg() == 0
	if interactive {
		opts = append(opts, WithTee(os.Stdout))
	}
	in := New(opts...)

	if statePath != "" {
		if err := loadStateFile(in, statePath); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
			os.Exit(1)
		}
	}

	var err error
	switch {
	case interactive:
		err = repl(in)
	case program != "":
		err = runBatch(in, program)
	default:
		err = runFiles(in, flag.Args())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}

	if statePath != "" {
		if err := saveStateFile(in, statePath); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
			os.Exit(1)
		}
	}
}

func runBatch(in *Interp, program string) error {
	out, err := in.Execute(program)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println(out)
	}
	return nil
}

func runFiles(in *Interp, paths []string) error {
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := in.Execute(string(src)); err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}
	}
	if out := in.Output(); out != "" {
		fmt.Println(out)
	}
	return nil
}

func loadStateFile(in *Interp, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil // fresh session
	} else if err != nil {
		return err
	}
	defer f.Close()
	return in.LoadState(f)
}

func saveStateFile(in *Interp, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := in.SaveState(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// repl reads lines until EOF, executing each against the shared session.
// Print output streams through the tee as it is produced; the stack is
// echoed after each line, and :dump shows full interpreter state.
func repl(in *Interp) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          color.GreenString("> "),
		HistoryFile:     filepath.Join(os.TempDir(), ".ratl-history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	rl.CaptureExitSignal()

	errColor := color.New(color.FgRed)
	stackColor := color.New(color.FgHiBlack)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":dump" {
			interpDumper{in: in, out: os.Stdout}.dump()
			continue
		}

		if _, err := in.Execute(line); err != nil {
			errColor.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if snap := in.StackSnapshot(); len(snap) > 0 {
			stackColor.Printf("-- stack: %v\n", strings.Join(snap, " "))
		}
	}
}
