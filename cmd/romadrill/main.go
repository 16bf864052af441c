// romadrill - romanized Japanese typing drills on the command line
//
//	romadrill run      Run a typing drill, reading key strokes from stdin
//	romadrill preview  Print a drill's spell and ideal key stroke lines
//	romadrill check    Validate a dictionary file
package main

import (
	"flag"
	"fmt"
	"os"

	"romatype/internal/dict"
	"romatype/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "run":
		err = cmdRun(os.Args[2:])
	case "preview":
		err = cmdPreview(os.Args[2:])
	case "check":
		err = cmdCheck(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `romadrill - romanized Japanese typing drills

Usage:
  romadrill run [-config path] [-words file] [-count n] [-strokes n] [-random]
  romadrill preview [-config path] [-words file] [-count n] [-strokes n]
  romadrill check <dictionary file>

Options:
  -config path   TOML configuration file
  -words file    vocabulary file, one "view:reading,..." entry per line
  -count n       number of vocabularies per drill
  -strokes n     budget the drill by ideal key strokes instead
  -random        shuffle the vocabulary order
`)
}

// drillFlags binds the flags shared by run and preview onto cfg.
func drillFlags(fs *flag.FlagSet, configPath *string) (apply func(cfg *Config)) {
	words := fs.String("words", "", "vocabulary file")
	count := fs.Int("count", 0, "vocabularies per drill")
	strokes := fs.Int("strokes", 0, "key stroke budget")
	random := fs.Bool("random", false, "shuffle vocabulary order")
	fs.StringVar(configPath, "config", "", "configuration file")

	return func(cfg *Config) {
		if *words != "" {
			cfg.Drill.Words = *words
		}
		if *count > 0 {
			cfg.Drill.Count = *count
			cfg.Drill.Strokes = 0
		}
		if *strokes > 0 {
			cfg.Drill.Strokes = *strokes
		}
		if *random {
			cfg.Drill.Random = true
		}
	}
}

func setupLogging(cfg *Config) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	log := logging.New(&logging.Config{
		Level:     level,
		Format:    format,
		Output:    "stderr",
		Component: "romadrill",
	})
	logging.SetDefault(log)
	return log, nil
}

// loadDictionary builds the drill dictionary: the built-in table,
// optionally merged with a user dictionary file.
func loadDictionary(cfg *Config, log *logging.Logger) (*dict.Dictionary, error) {
	if cfg.Dictionary.Path == "" {
		return dict.Builtin(), nil
	}
	user, err := dict.Load(cfg.Dictionary.Path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	log.Info("dictionary loaded", "path", cfg.Dictionary.Path, "units", user.Len())
	return dict.Builtin().Merge(user), nil
}

func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("check: expected exactly one dictionary file")
	}
	path := fs.Arg(0)
	logging.Default().Debug("validating dictionary", "path", path)
	d, err := dict.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok, %d units\n", path, d.Len())
	return nil
}
