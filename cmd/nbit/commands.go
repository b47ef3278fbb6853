package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"text/tabwriter"

	"github.com/avdva/nbit"
	"github.com/avdva/nbit/clock"
	"github.com/avdva/nbit/pageloader"
)

const (
	defaultBits = 16
	minBits     = 1
	maxBits     = 64
)

var errBitSize = fmt.Errorf("invalid bit size, enter a value between %d and %d", minBits, maxBits)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func checkBits(bits int) error {
	if bits < minBits || bits > maxBits {
		return errBitSize
	}
	return nil
}

// fieldError prints an error next to the name of the input that caused it.
func fieldError(stderr io.Writer, field string, err error) int {
	fmt.Fprintf(stderr, "%s: %v\n", field, err)
	return 1
}

func runConvert(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("convert", stderr)
	bits := fs.Int("bits", defaultBits, "bit width")
	from := fs.String("from", "decimal", "input base: binary, decimal or hex")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "convert: expected exactly one value")
		return 2
	}
	if err := checkBits(*bits); err != nil {
		return fieldError(stderr, "bits", err)
	}
	input := fs.Arg(0)
	var (
		v   nbit.Int
		err error
	)
	switch *from {
	case "binary":
		v, err = nbit.FromBitString(input)
	case "decimal":
		v, err = nbit.FromDecimalString(input, *bits)
	case "hex", "hexadecimal":
		v, err = nbit.FromHexString(input, *bits)
	default:
		err = fmt.Errorf("unknown conversion source %q", *from)
	}
	if err != nil {
		return fieldError(stderr, *from, err)
	}
	w := tabwriter.NewWriter(stdout, 0, 4, 1, ' ', 0)
	fmt.Fprintf(w, "binary:\t%s\n", v.FormattedBinaryString())
	fmt.Fprintf(w, "decimal:\t%s\n", v.FormattedDecimalString())
	fmt.Fprintf(w, "hex:\t%s\n", v.FormattedHexString())
	w.Flush()
	return 0
}

func runOps(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("ops", stderr)
	bits := fs.Int("bits", defaultBits, "bit width")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "ops: expected two values")
		return 2
	}
	if err := checkBits(*bits); err != nil {
		return fieldError(stderr, "bits", err)
	}
	x, err := nbit.FromDecimalString(fs.Arg(0), *bits)
	if err != nil {
		return fieldError(stderr, "num1", err)
	}
	y, err := nbit.FromDecimalString(fs.Arg(1), *bits)
	if err != nil {
		return fieldError(stderr, "num2", err)
	}
	fmt.Fprintf(stdout, "Number 1 (Binary): %s\n", x.FormattedBinaryString())
	fmt.Fprintf(stdout, "Number 2 (Binary): %s\n", y.FormattedBinaryString())
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "U\tOP0\tOP1\tOPERATION\tDECIMAL\tBINARY\tHEX")
	for _, r := range nbit.Evaluate(x, y) {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\t%s\n", r.U, r.Op0, r.Op1, r.Name,
			r.Value.FormattedDecimalString(), r.Value.FormattedBinaryString(), r.Value.FormattedHexString())
	}
	w.Flush()
	return 0
}

func runClock(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("clock", stderr)
	from := fs.String("from", "frequency", "input field: frequency, total, half or adjusted")
	precise := fs.Bool("precise", false, "do not round the results")
	delay := fs.Duration("delay", clock.DefaultPropagationDelay, "propagation delay")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "clock: expected exactly one value")
		return 2
	}
	field, err := clock.ParseField(*from)
	if err != nil {
		return fieldError(stderr, "from", err)
	}
	c := clock.New(clock.WithPropagationDelay(*delay), clock.WithHighPrecision(*precise))
	r, err := c.Set(field, fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	w := tabwriter.NewWriter(stdout, 0, 4, 1, ' ', 0)
	for f := clock.Frequency; f <= clock.AdjustedCycleTime; f++ {
		fmt.Fprintf(w, "%s:\t%s\n", f, r.Get(f))
	}
	w.Flush()
	return 0
}

func runPage(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("page", stderr)
	base := fs.String("base", "", "base url of the site")
	timeout := fs.Duration("timeout", pageloader.DefaultTimeout, "request timeout")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 || *base == "" {
		fmt.Fprintln(stderr, "page: expected -base and a page name")
		return 2
	}
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	l, err := pageloader.New(*base,
		pageloader.WithHTTPClient(&http.Client{Timeout: *timeout}),
		pageloader.WithLogger(logger))
	if err != nil {
		return fieldError(stderr, "base", err)
	}
	page, err := l.Load(context.Background(), fs.Arg(0))
	fmt.Fprintf(stdout, "title: %s\n\n%s\n", page.Title, page.Content)
	if err != nil {
		return 1
	}
	return 0
}
