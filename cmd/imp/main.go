package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/imp-lang/imp/core/astfmt"
	"github.com/imp-lang/imp/pkgs/lexer"
	"github.com/imp-lang/imp/pkgs/parser"
)

// defaultFile is used when neither -f nor a positional argument names a
// source file and nothing is piped on stdin.
const defaultFile = "program.imp"

func main() {
	var (
		file        string
		showTokens  bool
		showSymbols bool
		asJSON      bool
		fingerprint bool
		watch       bool
		debug       bool
		noColor     bool
	)

	rootCmd := &cobra.Command{
		Use:           "imp [file]",
		Short:         "Parse IMP programs and print the resulting command",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				file = args[0]
			}
			opts := outputOptions{
				tokens:      showTokens,
				symbols:     showSymbols,
				json:        asJSON,
				fingerprint: fingerprint,
				debug:       debug,
				useColor:    ShouldUseColor(noColor),
			}
			if watch {
				return watchAndParse(file, opts)
			}
			return parseOnce(file, opts)
		},
	}

	// Add flags
	rootCmd.PersistentFlags().StringVarP(&file, "file", "f", defaultFile, "Path to the IMP source file")
	rootCmd.PersistentFlags().BoolVar(&showTokens, "tokens", false, "Print the token stream")
	rootCmd.PersistentFlags().BoolVar(&showSymbols, "symbols", false, "Print the symbol table")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print the parsed command as canonical JSON")
	rootCmd.PersistentFlags().BoolVar(&fingerprint, "fingerprint", false, "Print the canonical sha256 fingerprint")
	rootCmd.PersistentFlags().BoolVar(&watch, "watch", false, "Reparse whenever the source file changes")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Print parse telemetry to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	if err := rootCmd.Execute(); err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			// The diagnostic was already rendered to stderr.
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

// outputOptions selects what a successful parse prints.
type outputOptions struct {
	tokens      bool
	symbols     bool
	json        bool
	fingerprint bool
	debug       bool
	useColor    bool
}

// parseOnce reads the whole input and parses it as a single program.
func parseOnce(file string, opts outputOptions) error {
	reader, closeFunc, err := getInputReader(file)
	if err != nil {
		return err
	}
	defer func() { _ = closeFunc() }()

	source, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", file, err)
	}

	return parseSource(string(source), opts)
}

// parseFile reads a named file and parses it. Watch mode uses this directly
// so reparses never fall back to stdin detection.
func parseFile(file string, opts outputOptions) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", file, err)
	}
	return parseSource(string(content), opts)
}

// parseSource parses source and prints the selected outputs. Parse failures
// are rendered to stderr here and returned unmodified so the caller can pick
// the exit code without printing twice.
func parseSource(source string, opts outputOptions) error {
	var parserOpts []parser.ParserOpt
	if opts.debug {
		parserOpts = append(parserOpts, parser.WithTelemetryTiming())
	}

	res, err := parser.Parse(source, parserOpts...)
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			FormatError(os.Stderr, parseErr, opts.useColor)
		}
		return err
	}

	if len(res.Remaining) > 0 {
		parseErr := remainderError(lexer.Tokenize(source), res.Remaining)
		FormatError(os.Stderr, parseErr, opts.useColor)
		return parseErr
	}

	if opts.tokens {
		DisplayTokens(os.Stdout, lexer.Tokenize(source))
	}
	if opts.symbols {
		DisplaySymbols(os.Stdout, res.Symbols)
	}

	if opts.json || opts.fingerprint {
		doc := astfmt.FromCommand(res.Command, res.Symbols.Idents())
		if opts.json {
			data, err := doc.EncodeJSON()
			if err != nil {
				return fmt.Errorf("error encoding JSON: %w", err)
			}
			fmt.Println(string(data))
		}
		if opts.fingerprint {
			fp, err := doc.Fingerprint()
			if err != nil {
				return fmt.Errorf("error computing fingerprint: %w", err)
			}
			fmt.Println(fp)
		}
	} else {
		fmt.Println(res.Command.String())
	}

	if opts.debug && res.Telemetry != nil {
		DisplayTelemetry(os.Stderr, res.Telemetry)
	}

	return nil
}

// watchAndParse parses the file once, then reparses on every change until
// interrupted. It watches the containing directory rather than the file
// itself so the watch survives editors that save by rename.
func watchAndParse(file string, opts outputOptions) error {
	if file == "-" {
		return fmt.Errorf("watch mode requires a file, not stdin")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if err := parseFile(file, opts); err != nil {
		var parseErr *parser.ParseError
		if !errors.As(err, &parseErr) {
			// IO failure on the first pass: nothing sensible to watch.
			return err
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Debounce: editors emit several events per save.
	const debounceDelay = 200 * time.Millisecond
	var lastRun time.Time

	target := filepath.Clean(file)
	for {
		select {
		case <-sigCh:
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if time.Since(lastRun) < debounceDelay {
				continue
			}
			lastRun = time.Now()

			banner := fmt.Sprintf("--- %s changed at %s ---", file, time.Now().Format(time.TimeOnly))
			fmt.Println(Colorize(banner, ColorGray, opts.useColor))
			if err := parseFile(file, opts); err != nil {
				var parseErr *parser.ParseError
				if !errors.As(err, &parseErr) {
					FormatError(os.Stderr, err, opts.useColor)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: watch: %v\n", err)
		}
	}
}

// getInputReader handles the 3 modes of input:
// 1. Explicit stdin with -f -
// 2. Piped input (auto-detected when using the default file)
// 3. File input (specific file or the default program.imp)
func getInputReader(file string) (io.Reader, func() error, error) {
	// Mode 1: Explicit stdin
	if file == "-" {
		return os.Stdin, func() error { return nil }, nil
	}

	// Mode 2: Check for piped input when using the default file
	if file == defaultFile {
		if hasPipedInput() {
			return os.Stdin, func() error { return nil }, nil
		}
	}

	// Mode 3: File input
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening file %s: %w", file, err)
	}

	closeFunc := func() error {
		return f.Close()
	}

	return f, closeFunc, nil
}

// hasPipedInput detects if there's data piped to stdin
func hasPipedInput() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	// Check if stdin is not a character device (i.e., it's piped)
	// Note: We don't check Size() > 0 because pipes may not report size correctly
	return (stat.Mode() & os.ModeCharDevice) == 0
}
