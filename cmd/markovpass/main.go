package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/hgrove/markovpass/pkg/passphrase"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// cliFlags holds the parsed command line. set records which flags were
// given explicitly, so unset flags fall through to the config file.
type cliFlags struct {
	configPath  string
	count       int
	minEntropy  float64
	ngramLength int
	minWordLen  int
	pruneBelow  int
	showEntropy bool
	logLevel    string
	version     bool
	files       []string
	set         map[string]bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("markovpass", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML config file (created with defaults if missing)")
	fs.IntVar(&f.count, "n", 1, "Number of passphrases to generate")
	fs.Float64Var(&f.minEntropy, "e", 60, "Minimum entropy in bits")
	fs.IntVar(&f.ngramLength, "l", 3, "Ngram length, must be at least 1")
	fs.IntVar(&f.minWordLen, "w", 5, "Minimum word length for corpus words")
	fs.IntVar(&f.pruneBelow, "prune", 0, "Drop transitions observed fewer than N times (0 disables)")
	fs.BoolVar(&f.showEntropy, "show-entropy", false, "Print the entropy for each passphrase")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	fs.BoolVar(&f.version, "version", false, "Print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: markovpass [FILE...] [options]\n\n"+
			"Generates pronounceable passphrases from a Markov chain trained on the\n"+
			"given corpus files, or on stdin when no file (or \"-\") is given.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	f.files = fs.Args()
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// merge folds explicitly set flags over the config file values.
func (f *cliFlags) merge(config *Config) {
	if f.set["n"] {
		config.Count = f.count
	}
	if f.set["e"] {
		config.MinEntropy = f.minEntropy
	}
	if f.set["l"] {
		config.NgramLength = f.ngramLength
	}
	if f.set["w"] {
		config.MinWordLength = f.minWordLen
	}
	if f.set["prune"] {
		config.PruneBelow = f.pruneBelow
	}
	if f.set["log-level"] {
		config.LogLevel = f.logLevel
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// openCorpus returns a reader over the given corpus files, concatenated in
// order, or over stdin when none (or "-") is given. Reading a corpus from an
// interactive terminal would just hang, so that case is rejected up front.
func openCorpus(files []string) (io.Reader, func(), error) {
	if len(files) == 0 || (len(files) == 1 && files[0] == "-") {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("stdin is a terminal; pass corpus files or pipe text in")
		}
		return os.Stdin, func() {}, nil
	}

	readers := make([]io.Reader, 0, len(files))
	opened := make([]*os.File, 0, len(files))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("could not open corpus file: %w", err)
		}
		opened = append(opened, f)
		readers = append(readers, f)
	}
	return io.MultiReader(readers...), closeAll, nil
}

func run(args []string, out io.Writer) int {
	flags, err := parseFlags(args)
	if err != nil {
		return 2
	}
	if flags.version {
		fmt.Fprintf(out, "markovpass %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return 0
	}

	config := DefaultConfig()
	if flags.configPath != "" {
		if config, err = LoadConfig(flags.configPath); err != nil {
			fmt.Fprintf(os.Stderr, "markovpass: %v\n", err)
			return 1
		}
	}
	flags.merge(config)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(config.LogLevel),
	}))

	if err = config.Validate(); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		return 2
	}

	corpus, closeCorpus, err := openCorpus(flags.files)
	if err != nil {
		logger.Error("could not read corpus", slog.Any("error", err))
		return 1
	}

	words, err := passphrase.Tokenize(corpus, config.MinWordLength)
	closeCorpus()
	if err != nil {
		logger.Error("tokenization failed", slog.Any("error", err))
		return 1
	}

	model, err := passphrase.NewModel(words, config.NgramLength)
	if err != nil {
		logger.Error("model construction failed", slog.Any("error", err))
		return 1
	}
	if config.PruneBelow > 0 {
		removed := model.Prune(config.PruneBelow)
		logger.Info("model pruned",
			slog.Int("prune_below", config.PruneBelow),
			slog.Int("transitions_removed", removed),
		)
	}

	stats := model.Stats()
	logger.Debug("model built",
		slog.Int("words", len(words)),
		slog.Int("ngram_length", config.NgramLength),
		slog.Int("contexts", stats.Contexts),
		slog.Int("transitions", stats.Transitions),
		slog.Int("total_frequency", stats.TotalFrequency),
		slog.Int("start_symbols", stats.StartSymbols),
		slog.Float64("model_entropy", model.Entropy()),
	)

	// Each goroutine owns its Generator (and so its RNG); the model is
	// shared read-only.
	results := make([]passphrase.Passphrase, config.Count)
	errs := make([]error, config.Count)
	var wg sync.WaitGroup
	for i := 0; i < config.Count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g := passphrase.NewGenerator(model, passphrase.WithLogger(logger))
			results[i], errs[i] = g.Passphrase(config.MinEntropy)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			logger.Error("generation failed",
				slog.Any("error", err),
				slog.String("hint", generationHint(err)),
			)
			return 1
		}
	}

	for _, p := range results {
		if flags.showEntropy {
			fmt.Fprintf(out, "%s <%.2f>\n", p.Phrase, p.Entropy)
		} else {
			fmt.Fprintln(out, p.Phrase)
		}
	}
	return 0
}

// generationHint maps the library's error taxonomy to actionable advice.
func generationHint(err error) string {
	switch {
	case errors.Is(err, passphrase.ErrEmptyModel):
		return "the corpus contained no words of the minimum length; lower -w or supply more text"
	case errors.Is(err, passphrase.ErrModelTooSparse):
		return "the corpus is too sparse for this ngram length; lower -l or supply more text"
	case errors.Is(err, passphrase.ErrNoEntropy):
		return "the corpus is too repetitive to carry entropy; supply more varied text"
	default:
		return "check the corpus and parameters"
	}
}
