// Command csvrows prints the rows of a CSV file or URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/csvrows/internal/output"
	"github.com/shapestone/csvrows/pkg/csv"
	"github.com/shapestone/csvrows/pkg/source"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type config struct {
	sep       string
	outSep    string
	detect    bool
	noHeader  bool
	named     bool
	format    string
	infer     bool
	limit     int
	onBadLine string
	noCache   bool
	cacheDir  string
	verbose   bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csvrows", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	fs.StringVar(&cfg.sep, "sep", "", "Field separator (disables detection), e.g. ';' or '\\t'")
	fs.BoolVar(&cfg.detect, "detect", true, "Detect the separator from the header line")
	fs.BoolVar(&cfg.noHeader, "no-header", false, "Input has no header line")
	fs.BoolVar(&cfg.named, "named", true, "Key rows by header name (ignored with -no-header)")
	fs.StringVar(&cfg.format, "f", "table", "Output format: table, jsonl, csv")
	fs.StringVar(&cfg.outSep, "out-sep", ",", "Field separator of csv output")
	fs.BoolVar(&cfg.infer, "infer", false, "Write numbers and booleans as JSON values (jsonl only)")
	fs.IntVar(&cfg.limit, "limit", 0, "Limit number of rows (0 = unlimited)")
	fs.StringVar(&cfg.onBadLine, "on-bad-line", "warn", "Malformed lines: warn, skip, error")
	fs.BoolVar(&cfg.noCache, "no-cache", false, "Do not cache URLs locally")
	fs.StringVar(&cfg.cacheDir, "cache-dir", os.TempDir(), "Directory for cached URLs")
	fs.BoolVar(&cfg.verbose, "v", false, "Verbose diagnostics on stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: csvrows [options] <file|url|->\n\n")
		fmt.Fprintf(stderr, "Reads CSV rows from a file, a URL or standard input.\n")
		fmt.Fprintf(stderr, "Files ending in .gz, .zst, .lz4 or .br are decompressed.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  csvrows data.csv\n")
		fmt.Fprintf(stderr, "  csvrows -f jsonl -limit 10 https://example.com/data.csv\n")
		fmt.Fprintf(stderr, "  csvrows -sep '|' -no-header -f csv data.txt.gz\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one input argument\n\n")
		fs.Usage()
		return 2
	}

	logger := csv.NewStandardLogger(stderr, cfg.verbose)
	opts, err := cfg.parserOptions(logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	outSep, err := parseSeparator(cfg.outSep)
	if err != nil {
		fmt.Fprintf(stderr, "Error: -out-sep: %v\n", err)
		return 2
	}
	formatter, err := output.New(cfg.format, stdout, outSep)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if jf, ok := formatter.(*output.JSONFormatter); ok {
		jf.Infer = cfg.infer
	}

	in, err := cfg.open(ctx, fs.Arg(0), stdin, logger)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Error: file '%s' not found\n", fs.Arg(0))
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	defer in.Close()

	p := csv.NewParserWithOptions(opts)
	src := csv.NewLineReader(in)
	if cfg.named && opts.HeaderLine {
		err = writeNamed(p, src, formatter, cfg.limit)
	} else {
		err = writeRows(p, src, formatter, cfg.limit)
	}
	// Rows written before a failure are still printed.
	if ferr := formatter.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (cfg config) parserOptions(logger csv.Logger) (csv.Options, error) {
	opts := csv.DefaultOptions()
	opts.Logger = logger
	opts.HeaderLine = !cfg.noHeader
	opts.DetectSeparator = cfg.detect

	if cfg.sep != "" {
		sep, err := parseSeparator(cfg.sep)
		if err != nil {
			return opts, err
		}
		opts.Separator = sep
		opts.DetectSeparator = false
	}

	switch cfg.onBadLine {
	case "warn":
		opts.OnBadLine = csv.BadLineModeWarn
	case "skip":
		opts.OnBadLine = csv.BadLineModeSkip
	case "error":
		opts.OnBadLine = csv.BadLineModeError
	default:
		return opts, fmt.Errorf("unknown -on-bad-line mode %q", cfg.onBadLine)
	}
	return opts, opts.Validate()
}

// parseSeparator accepts a single character or the escape "\t".
func parseSeparator(s string) (rune, error) {
	if s == `\t` || s == "tab" {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	return r, nil
}

func (cfg config) open(ctx context.Context, arg string, stdin io.Reader, logger csv.Logger) (io.ReadCloser, error) {
	switch {
	case arg == "-":
		return io.NopCloser(stdin), nil
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		opts := source.DefaultOptions()
		opts.UseCache = !cfg.noCache
		opts.CacheDir = cfg.cacheDir
		opts.Logger = logger
		return source.OpenURL(ctx, arg, opts)
	default:
		return source.Open(arg)
	}
}

func writeRows(p *csv.Parser, src csv.LineSource, f output.Formatter, limit int) error {
	n := 0
	for row, err := range p.Rows(src) {
		if err != nil {
			return err
		}
		if err := f.WriteRow(row); err != nil {
			return err
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	return nil
}

func writeNamed(p *csv.Parser, src csv.LineSource, f output.Formatter, limit int) error {
	sc, err := p.OpenNamed(src)
	if err != nil {
		return err
	}

	n := 0
	header := false
	for sc.Scan() {
		if !header {
			if err := f.WriteHeader(sc.Headers()); err != nil {
				return err
			}
			header = true
		}
		if err := f.WriteRow(sc.Row().Values()); err != nil {
			return err
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	// Header-only input still prints its header.
	if hs := sc.Headers(); !header && len(hs) > 0 {
		if err := f.WriteHeader(hs); err != nil {
			return err
		}
	}
	return nil
}
