package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/imp-lang/imp/pkgs/parser"
)

func main() {
	// Exit code constants
	const (
		ExitSuccess          = 0
		ExitInvalidArguments = 1
		ExitIOError          = 2
		ExitParseError       = 3
	)

	// Command line flags
	var inputFile string
	flag.StringVar(&inputFile, "f", "", "Path to the IMP source file (default: stdin)")
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(ExitInvalidArguments)
	}

	// Read source
	var content []byte
	var err error
	if inputFile == "" || inputFile == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(inputFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(ExitIOError)
	}

	// Parse the program
	res, err := parser.Parse(string(content))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitParseError)
	}

	// A partial parse is a failure for a whole-file invocation
	if len(res.Remaining) > 0 {
		fmt.Fprintf(os.Stderr, "unconsumed input starting at '%s'\n", res.Remaining[0])
		os.Exit(ExitParseError)
	}

	// Output the result
	fmt.Println(res.Command.String())
	os.Exit(ExitSuccess)
}
