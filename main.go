package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chzyer/readline"
)

func main() {
	ctx := context.Background()

	var trace bool
	var retDepth int
	var dumpState bool
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&retDepth, "ret-depth", 0, "override return stack depth")
	flag.BoolVar(&dumpState, "dump", false, "dump interpreter state on exit")
	flag.Parse()

	var opts = []Option{
		WithOutput(os.Stdout),
		WithInput(os.Stdin),
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	if retDepth != 0 {
		opts = append(opts, WithReturnDepth(retDepth))
	}
	f := New(opts...)

	var err error
	if readline.DefaultIsTerminal() {
		err = repl(f)
	} else {
		err = f.Run(ctx, os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}

	if dumpState {
		f.dump(os.Stderr)
	}
}

func repl(f *Forth) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		InterruptPrompt:   "^C",
		EOFPrompt:         "bye",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		// line errors already reached the sink as a status event
		f.ExecuteLine(line)
	}
}
