package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"romatype/internal/dict"
	"romatype/internal/engine"
	"romatype/internal/keystroke"
	"romatype/internal/logging"
	"romatype/internal/query"
	"romatype/internal/statistics"
	"romatype/internal/vocabulary"
)

// buildRequest turns the drill configuration into a query request.
func buildRequest(cfg *Config) (query.Request, error) {
	if cfg.Drill.Words == "" {
		return query.Request{}, fmt.Errorf("no vocabulary file configured (use -words or the config file)")
	}
	f, err := os.Open(cfg.Drill.Words)
	if err != nil {
		return query.Request{}, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	entries, err := vocabulary.ParseLines(f)
	if err != nil {
		return query.Request{}, fmt.Errorf("parse vocabulary %s: %w", cfg.Drill.Words, err)
	}

	req := query.Request{Entries: entries}

	if cfg.Drill.Strokes > 0 {
		req.Quantifier = query.KeyStrokes(cfg.Drill.Strokes)
	} else {
		req.Quantifier = query.Vocabularies(cfg.Drill.Count)
	}

	switch cfg.Drill.Separator {
	case "", "none":
		req.Separator = query.NoSeparator()
	case "whitespace", "space":
		req.Separator = query.WhiteSpaceSeparator()
	default:
		return query.Request{}, fmt.Errorf("unknown separator %q", cfg.Drill.Separator)
	}

	if cfg.Drill.Random {
		req.Order = query.Random(nil)
	} else {
		req.Order = query.InOrder()
	}
	return req, nil
}

func setupDrill(args []string, name string) (*Config, *logging.Logger, *dict.Dictionary, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var configPath string
	apply := drillFlags(fs, &configPath)
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	apply(cfg)

	log, err := setupLogging(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	d, err := loadDictionary(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, d, nil
}

func cmdPreview(args []string) error {
	cfg, _, d, err := setupDrill(args, "preview")
	if err != nil {
		return err
	}
	req, err := buildRequest(cfg)
	if err != nil {
		return err
	}

	e := engine.New(d)
	if err := e.Init(req); err != nil {
		return err
	}
	if err := e.Start(); err != nil {
		return err
	}

	info, err := e.DisplayInfo(statistics.LapSpec{})
	if err != nil {
		return err
	}

	var view strings.Builder
	for _, v := range e.VocabularyInfos() {
		view.WriteString(v.View())
	}
	fmt.Println(view.String())
	fmt.Println(info.Spell.Text)
	fmt.Println(info.KeyStroke.Text)
	return nil
}

func cmdRun(args []string) error {
	cfg, log, d, err := setupDrill(args, "run")
	if err != nil {
		return err
	}
	req, err := buildRequest(cfg)
	if err != nil {
		return err
	}

	// Hot-reload only affects the next drill; the current query keeps
	// the dictionary it was compiled with.
	if cfg.Dictionary.Watch && cfg.Dictionary.Path != "" {
		dictLog := log.WithComponent("dict")
		loader := dict.NewLoader(cfg.Dictionary.Path)
		loader.OnChange(func(nd *dict.Dictionary) {
			dictLog.Info("dictionary reloaded", "path", cfg.Dictionary.Path, "units", nd.Len())
		})
		if err := loader.Watch(); err != nil {
			return err
		}
		defer loader.Close()
	}

	e := engine.New(d, engine.WithLogger(log.WithComponent("engine").Logger))
	if err := e.Init(req); err != nil {
		return err
	}
	if err := e.Start(); err != nil {
		return err
	}

	info, err := e.DisplayInfo(statistics.LapSpec{})
	if err != nil {
		return err
	}
	fmt.Println(info.Spell.Text)
	fmt.Println(info.KeyStroke.Text)
	fmt.Println("type the line above, key by key:")

	reader := bufio.NewReader(os.Stdin)
	for !e.IsFinished() {
		r, _, err := reader.ReadRune()
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if r == '\n' || r == '\r' {
			continue
		}
		key, err := keystroke.NewKey(r)
		if err != nil {
			log.Debug("ignoring non-key input", "rune", string(r))
			continue
		}
		out, err := e.StrokeKey(key)
		if err != nil {
			return err
		}
		if out.Classification == keystroke.Miss {
			fmt.Print("x")
		} else {
			fmt.Print(string(rune(key)))
		}
	}
	fmt.Println()

	lap := statistics.LapSpec{}
	if cfg.Drill.LapEvery > 0 {
		lap = statistics.LapSpec{Target: statistics.TargetKeyStroke, Every: cfg.Drill.LapEvery}
	}
	res, err := e.Result(lap)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func printResult(res statistics.Result) {
	fmt.Printf("session  %s\n", res.ID)
	fmt.Printf("time     %s\n", res.Elapsed.Round(10*time.Millisecond))
	fmt.Printf("strokes  %d correct, %d wrong (%.1f%% accuracy)\n",
		res.KeyStroke.Finished, res.KeyStroke.Wrong, res.Accuracy()*100)
	fmt.Printf("speed    %.2f keys/s\n", res.KeysPerSecond())
	fmt.Printf("spell    %d/%d clean\n", res.Spell.CompletelyCorrect, res.Spell.Finished)
	for _, ks := range res.Skill.Keys {
		if len(ks.WrongCounts) == 0 {
			continue
		}
		worst := ks.WrongRanking()[0]
		fmt.Printf("key %-4c %.0f%% clean, avg %s, most mistyped as %c\n",
			rune(ks.Key), ks.Accuracy()*100,
			ks.AverageTime().Round(time.Millisecond), rune(worst.Key))
	}
	for i, lap := range res.Laps {
		fmt.Printf("lap %-3d  %s (%d strokes)\n", i+1, lap.Elapsed.Round(10*time.Millisecond), lap.KeyStroke)
	}
}
