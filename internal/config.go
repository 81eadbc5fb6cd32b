package internal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vaughan0/go-ini"
)

// ConfigSection is the ini section holding search settings.
const ConfigSection = "search"

// Config holds the settings of a search run.
type Config struct {
	Phrase        string
	Hashes        []string
	MaxWords      int
	MinWordLength int
	Dictionary    string
	Output        string
}

// DefaultConfig returns the settings used when neither a config file nor a flag says otherwise.
func DefaultConfig() Config {
	return Config{
		Phrase: "poultry outwits ants",
		Hashes: []string{
			"e4820b45d2277f3844eac66c903e84be",
			"23170acc097c24edb98fc5488ab033fe",
			"665e5bcb0c20062fe8abaaf4628bb154",
		},
		MaxWords:      4,
		MinWordLength: DefaultMinWordLength,
		Dictionary:    "wordlist",
		Output:        "anagrams",
	}
}

// LoadConfig reads the [search] section of the ini file at path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	file, err := ini.LoadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	return fromFile(file)
}

// ParseConfig is LoadConfig for an already open file.
func ParseConfig(r io.Reader) (Config, error) {
	file, err := ini.Load(r)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return fromFile(file)
}

func fromFile(file ini.File) (Config, error) {
	cfg := DefaultConfig()
	section := file.Section(ConfigSection)

	if v, ok := section["phrase"]; ok {
		cfg.Phrase = v
	}
	if v, ok := section["hashes"]; ok {
		cfg.Hashes = SplitList(v)
	}
	if v, ok := section["dictionary"]; ok {
		cfg.Dictionary = v
	}
	if v, ok := section["output"]; ok {
		cfg.Output = v
	}

	var err error
	if v, ok := section["words"]; ok {
		if cfg.MaxWords, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("config key words: %w", err)
		}
	}
	if v, ok := section["length"]; ok {
		if cfg.MinWordLength, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("config key length: %w", err)
		}
	}

	return cfg, nil
}

// SplitList splits a comma separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
