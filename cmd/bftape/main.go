// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ezrec/bftape/machine"
	"github.com/ezrec/bftape/runner"
	"github.com/ezrec/bftape/script"
	"github.com/ezrec/bftape/writer"
)

func main() {
	var expr string
	var write bool
	var debug bool
	var cells int
	var input string
	var output string
	var timeout int
	var steps int
	var starfile string
	var verbose bool

	flag.StringVar(&expr, "e", "", "Program text (otherwise read from the file argument)")
	flag.BoolVar(&write, "w", false, "Generate a program that prints the input instead of running")
	flag.BoolVar(&debug, "d", false, "Debug trace mode")
	flag.IntVar(&cells, "m", machine.DefaultTapeSize, "Tape cells")
	flag.StringVar(&input, "i", "-", "Program input")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.IntVar(&timeout, "t", 0, "Timeout in milliseconds (0 = BF_TIMEOUT_MS or 2000)")
	flag.IntVar(&steps, "s", 0, "Maximum steps (0 = BF_MAX_STEPS or unbounded)")
	flag.StringVar(&starfile, "x", "", ".star script to execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if len(starfile) != 0 {
		_, err := script.Exec(starfile, nil)
		if err != nil {
			log.Fatalf("%v: %v", starfile, err)
		}
		return
	}

	var code string
	switch {
	case len(expr) != 0:
		code = expr
	case flag.NArg() == 1:
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("%v: %v", flag.Arg(0), err)
		}
		code = string(data)
	default:
		log.Fatalf("%v: expected a program file or -e text", os.Args[0])
	}

	ouf := os.Stdout
	if output != "-" {
		var err error
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if write {
		// In write mode the program text is the payload to reproduce.
		generated, err := writer.New([]byte(code)).Generate()
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		fmt.Fprintln(ouf, generated)
		return
	}

	var inf io.Reader = os.Stdin
	if input != "-" {
		file, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer file.Close()
		inf = file
	}

	run := runner.NewRunner()
	run.Verbose = verbose
	run.TapeSize = cells
	run.In = inf
	run.Out = ouf
	run.FromEnv()
	if timeout > 0 {
		run.Timeout = time.Duration(timeout) * time.Millisecond
	}
	if steps > 0 {
		run.MaxSteps = steps
	}

	var err error
	if debug {
		err = run.RunDebug(code, ouf)
	} else {
		err = run.RunWithTimeout(code)
	}

	// Canceled and step-limit are expected outcomes with their own exit
	// status; everything else is a program error.
	var limit machine.ErrStepLimit
	switch {
	case err == nil:
	case errors.Is(err, machine.ErrCanceled):
		log.Printf("%v: %v", os.Args[0], err)
		os.Exit(3)
	case errors.As(err, &limit):
		log.Printf("%v: %v", os.Args[0], err)
		os.Exit(3)
	default:
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
