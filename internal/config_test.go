package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
[search]
phrase = an ant
hashes = abc, def ,,
words = 2
length = 1
dictionary = s3://words/english.zst
`))
	require.NoError(t, err)

	assert.Equal(t, "an ant", cfg.Phrase)
	assert.Equal(t, []string{"abc", "def"}, cfg.Hashes)
	assert.Equal(t, 2, cfg.MaxWords)
	assert.Equal(t, 1, cfg.MinWordLength)
	assert.Equal(t, "s3://words/english.zst", cfg.Dictionary)
	assert.Equal(t, DefaultConfig().Output, cfg.Output)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader("[other]\nphrase = ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_BadNumber(t *testing.T) {
	_, err := ParseConfig(strings.NewReader("[search]\nwords = four\n"))
	assert.ErrorContains(t, err, "words")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anagram.ini")
	require.NoError(t, os.WriteFile(path, []byte("[search]\noutput = results.txt\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "results.txt", cfg.Output)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,b, "))
}
