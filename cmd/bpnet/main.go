// Package main provides the bpnet CLI.
//
// Usage:
//
//	bpnet train [-config run.yaml] [flags]   train, save and test a network
//	bpnet eval  [-config run.yaml] [flags]   test a saved network
//	bpnet version
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "bpnet %s\n", version)
		return 0
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	case "train", "eval":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	fs := flag.NewFlagSet("bpnet "+args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := parseConfig(fs, args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if args[0] == "train" {
		err = runTrain(cfg, stdout)
	} else {
		err = runEval(cfg, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "bpnet %s - two-layer backpropagation network\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train on the train split, save the model, test it")
	fmt.Fprintln(w, "  eval       Test a saved model on the test split")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'bpnet <command> -h' for the flags of a command.")
}
