// Command rle compresses and decompresses files with the rle codec, and
// compares it with other codecs.
//
// Usage:
//
//	rle encode [-v] input output
//	rle decode [-v] [-max-size n] input output
//	rle inspect input
//	rle bench [-v] [-codecs rle,snappy,...] input
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/andybalholm/rle"
	"github.com/andybalholm/rle/internal/bench"
	"github.com/andybalholm/rle/internal/codecs"
	"github.com/pkg/errors"
)

var errUsage = errors.New("usage")

const usage = `usage:
  rle encode [-v] input output
  rle decode [-v] [-max-size n] input output
  rle inspect input
  rle bench [-v] [-codecs list] input
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("rle: ")

	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	default:
		log.Print(err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log each step")
	logger := log.New(io.Discard, "rle: ", 0)

	switch cmd {
	case "encode":
		if err := parse(fs, args, 2, verbose, logger, stderr); err != nil {
			return err
		}
		return encode(fs.Arg(0), fs.Arg(1), logger)

	case "decode":
		maxSize := fs.Int("max-size", 0, "refuse streams that decode to more than `n` bytes (0 for no limit)")
		if err := parse(fs, args, 2, verbose, logger, stderr); err != nil {
			return err
		}
		return decode(fs.Arg(0), fs.Arg(1), rle.Decoder{MaxSize: *maxSize}, logger)

	case "inspect":
		if err := parse(fs, args, 1, verbose, logger, stderr); err != nil {
			return err
		}
		return inspect(fs.Arg(0), stdout)

	case "bench":
		list := fs.String("codecs", strings.Join(codecs.Names(), ","), "comma-separated codecs to run")
		if err := parse(fs, args, 1, verbose, logger, stderr); err != nil {
			return err
		}
		return runBench(fs.Arg(0), strings.Split(*list, ","), stdout, logger)
	}

	return errors.Wrapf(errUsage, "unknown command %q", cmd)
}

// parse parses the flags and checks the number of positional arguments.
func parse(fs *flag.FlagSet, args []string, nargs int, verbose *bool, logger *log.Logger, stderr io.Writer) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// The flag package has already printed the defaults.
			return err
		}
		return errors.Wrap(errUsage, err.Error())
	}
	if fs.NArg() != nargs {
		return errors.Wrapf(errUsage, "%s takes %d arguments, got %d", fs.Name(), nargs, fs.NArg())
	}
	if *verbose {
		logger.SetOutput(stderr)
	}
	return nil
}

func encode(in, out string, logger *log.Logger) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	logger.Printf("read %d bytes from %s", len(data), in)

	encoded, err := rle.Compress(data)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", in)
	}
	logger.Printf("encoded to %d bytes", len(encoded))

	return errors.Wrap(os.WriteFile(out, encoded, 0o644), "writing output")
}

func decode(in, out string, d rle.Decoder, logger *log.Logger) error {
	encoded, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	logger.Printf("read %d bytes from %s", len(encoded), in)

	data, err := d.Decode(encoded)
	if err != nil {
		return errors.Wrapf(err, "decoding %s", in)
	}
	logger.Printf("decoded to %d bytes", len(data))

	return errors.Wrap(os.WriteFile(out, data, 0o644), "writing output")
}

func inspect(in string, stdout io.Writer) error {
	encoded, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	text, err := rle.AppendText(nil, encoded)
	if err != nil {
		return errors.Wrapf(err, "inspecting %s", in)
	}
	text = append(text, '\n')
	_, err = stdout.Write(text)
	return err
}

func runBench(in string, names []string, stdout io.Writer, logger *log.Logger) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}

	var cs []codecs.Codec
	defer func() { codecs.Close(cs...) }()
	for _, name := range names {
		c, err := codecs.Lookup(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		cs = append(cs, c)
	}

	logger.Printf("running %d codecs on %d bytes", len(cs), len(data))
	results, err := bench.RunAll(cs, data)
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		if !r.Verified() {
			failed++
		}
	}

	if err := bench.WriteTable(stdout, results); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf("%d of %d codecs did not reproduce the input", failed, len(results))
	}
	return nil
}
