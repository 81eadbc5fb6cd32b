package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/felixge/fgprof"

	"crosswarped.com/anagram"
	"crosswarped.com/anagram/internal"
	"crosswarped.com/anagram/pkg/blobstore"
	"crosswarped.com/anagram/pkg/results"
	"crosswarped.com/anagram/pkg/trie"
)

// stringList is a flag that may be given more than once.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, internal.SplitList(v)...)
	return nil
}

func main() {
	os.Exit(cli(os.Args[1:]))
}

// cli runs the command line and returns the exit code. Deferred cleanups, such as
// flushing profiles, have all run by the time it returns.
func cli(args []string) int {
	defaults := internal.DefaultConfig()

	fs := flag.NewFlagSet("anagramcli", flag.ContinueOnError)
	configFile := fs.String("config", "", "An ini file with a [search] section")
	dictionary := fs.String("dictionary", defaults.Dictionary, "The dictionary to load words from (path, s3://bucket/key or minio://bucket/key; .zst and .lz4 are decompressed)")
	output := fs.String("output", defaults.Output, "Where to write the matches")
	maxWords := fs.Int("words", defaults.MaxWords, "The maximum number of words in an anagram")
	minWordLength := fs.Int("length", defaults.MinWordLength, "The minimum length of a word")
	phrase := fs.String("phrase", defaults.Phrase, "The phrase to find anagrams of")
	var hashes stringList
	fs.Var(&hashes, "hash", "An accepted MD5 digest (repeatable, or comma separated)")

	parallelism := fs.Int("parallelism", 0, "The maximum number of goroutines searching at once (0 means GOMAXPROCS)")
	timeout := fs.Duration("timeout", 0, "Stop searching after this long (0 means never)")
	dynamoTable := fs.String("dynamodb-table", "", "Also store matches in this DynamoDB table")
	dynamoRate := fs.Float64("dynamodb-rate", 25, "The maximum DynamoDB writes per second")

	logLevel := fs.String("log-level", "info", "The log level (debug, info, warn, error)")
	logJSON := fs.Bool("log-json", false, "Log as JSON")

	profile := fs.Bool("profile", false, "Profile the search")
	profileFile := fs.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	wallProfileFile := fs.String("wall-profile-file", "", "The file to write a wall clock profile to")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Println("Invalid -log-level:", err)
		return 1
	}
	logger := anagram.NewTextLogger(level)
	if *logJSON {
		logger = anagram.NewJSONLogger(level)
	}

	cfg := defaults
	if *configFile != "" {
		var err error
		if cfg, err = internal.LoadConfig(*configFile); err != nil {
			fmt.Println("Error loading config:", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dictionary":
			cfg.Dictionary = *dictionary
		case "output":
			cfg.Output = *output
		case "words":
			cfg.MaxWords = *maxWords
		case "length":
			cfg.MinWordLength = *minWordLength
		case "phrase":
			cfg.Phrase = *phrase
		case "hash":
			cfg.Hashes = hashes
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			return 1
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}
	if *wallProfileFile != "" {
		f, err := os.Create(*wallProfileFile)
		if err != nil {
			fmt.Println("Error creating wall clock profile file:", err)
			return 1
		}
		defer f.Close()

		stopWall := fgprof.Start(f, fgprof.FormatPprof)
		defer func() {
			if err := stopWall(); err != nil {
				fmt.Println("Error writing wall clock profile:", err)
			}
		}()
	}

	if err := run(ctx, cfg, logger, *parallelism, *dynamoTable, *dynamoRate); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg internal.Config, logger *anagram.Logger, parallelism int, dynamoTable string, dynamoRate float64) error {
	start := time.Now()

	words, loaded, err := loadWords(ctx, cfg)
	logger.LogDictionary(ctx, cfg.Dictionary, loaded, len(words), err)
	if err != nil {
		return err
	}

	root := trie.Build(words)
	finder, err := anagram.NewFinder(root, anagram.FinderParams{
		Phrase:      cfg.Phrase,
		Hashes:      cfg.Hashes,
		MaxWords:    cfg.MaxWords,
		Parallelism: parallelism,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	// Cancelling ctx stops the search only. Matches already found are still written.
	outCtx := context.WithoutCancel(ctx)

	var sinks []results.Sink
	if dynamoTable != "" {
		client, err := newDDBClient(outCtx)
		if err != nil {
			return err
		}
		sinks = append(sinks, results.NewDynamoSink(client, dynamoTable, cfg.Phrase, dynamoRate))
	}

	out, err := createURI(outCtx, cfg.Output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.Output, err)
	}
	lines := results.NewLineWriter(out)
	sink := results.Multi(append([]results.Sink{lines}, sinks...)...)

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := finder.Search(searchCtx)
	var putErr error
	for m := range session.Matches() {
		if putErr != nil {
			continue
		}
		if putErr = sink.Put(outCtx, m); putErr != nil {
			// The rest of the matches would be lost; stop searching.
			cancel()
			continue
		}
		fmt.Println(m.Repr())
	}
	searchErr := session.Err()

	if err := sink.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	if putErr != nil {
		return putErr
	}

	stats := session.Stats()
	fmt.Printf("words: %s of %s, trie nodes: %s, candidates: %s, matches: %s\n",
		humanize.Comma(int64(len(words))),
		humanize.Comma(int64(loaded)),
		humanize.Comma(int64(root.Size())),
		humanize.Comma(stats.Candidates),
		humanize.Comma(int64(lines.Count())),
	)
	fmt.Println("executed in:", time.Since(start))

	return searchErr
}

// loadWords reads the dictionary and filters it down to the words usable for cfg.Phrase.
func loadWords(ctx context.Context, cfg internal.Config) (words []string, loaded int, err error) {
	r, err := openURI(ctx, cfg.Dictionary)
	if err != nil {
		return nil, 0, fmt.Errorf("opening dictionary %s: %w", cfg.Dictionary, err)
	}
	defer r.Close()

	lines, err := blobstore.ReadLines(r)
	if err != nil {
		return nil, 0, fmt.Errorf("reading dictionary %s: %w", cfg.Dictionary, err)
	}

	minWordLength := cfg.MinWordLength
	words, err = internal.FilterWords(ctx, lines, internal.FilterParams{
		Phrase:        cfg.Phrase,
		MinWordLength: &minWordLength,
	})
	return words, len(lines), err
}
