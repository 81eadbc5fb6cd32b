package anagram

import (
	"context"
	"iter"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"crosswarped.com/anagram/pkg/primitives"
	"crosswarped.com/anagram/pkg/trie"
)

const defaultBuffer = 64

var tracer = otel.Tracer("crosswarped.com/anagram")

// FinderParams configures a Finder.
type FinderParams struct {
	// Phrase is the text to find anagrams of. Whitespace is ignored.
	Phrase string
	// Hashes are the accepted lowercase hex MD5 digests.
	Hashes []string
	// MaxWords is the maximum number of words in an anagram.
	MaxWords int

	// Parallelism bounds the number of goroutines exploring branches at once.
	// Zero means GOMAXPROCS.
	Parallelism int
	// Buffer is the capacity of the match channel. Zero means a small default.
	Buffer int

	Logger *Logger
}

// Finder searches a trie for the anagrams of a phrase whose digest is accepted.
//
// A Finder is immutable and may run any number of searches, concurrently or not.
type Finder struct {
	root        *trie.Letter
	phrase      string
	letters     primitives.Letters
	verifier    *Verifier
	maxWords    int
	parallelism int
	buffer      int
	logger      *Logger
}

// NewFinder creates a Finder over the trie rooted at root.
func NewFinder(root *trie.Letter, params FinderParams) (*Finder, error) {
	if root == nil {
		return nil, ErrNilTrie
	}
	if params.MaxWords < 1 {
		return nil, &ErrInvalidMaxWords{MaxWords: params.MaxWords}
	}

	letters := primitives.NewLetters(params.Phrase)
	if letters.IsEmpty() {
		return nil, ErrEmptyPhrase
	}

	parallelism := params.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	buffer := params.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	logger := params.Logger
	if logger == nil {
		logger = NoopLogger()
	}

	return &Finder{
		root:        root,
		phrase:      params.Phrase,
		letters:     letters,
		verifier:    NewVerifier(params.Hashes),
		maxWords:    params.MaxWords,
		parallelism: parallelism,
		buffer:      buffer,
		logger:      logger.WithPhrase(params.Phrase),
	}, nil
}

// Session is a single run of a Finder.
type Session struct {
	matches  chan Match
	done     chan struct{}
	err      error
	counters counters
}

// Matches returns the channel matches are delivered on. It is closed once every branch
// of the search has returned. Matches arrive in no particular order.
func (s *Session) Matches() <-chan Match {
	return s.matches
}

// Err waits for the session to end and returns the error that stopped it, or nil if the
// whole search space was explored. Matches must be drained before calling Err.
func (s *Session) Err() error {
	<-s.done
	return s.err
}

// Stats returns the work done so far.
func (s *Session) Stats() Stats {
	return s.counters.snapshot()
}

// branch is the state of one recursion step. It is passed by value; nothing in it is
// shared with sibling branches except the read-only trie.
type branch struct {
	parent    *trie.Letter
	prefix    string
	remaining primitives.Letters
	// words is the number of completed words in prefix.
	words int
}

// Search starts searching and returns immediately.
//
// Cancelling ctx stops the search; the session then ends with the context's error. A
// consumer that stops reading Matches must cancel ctx, or the producers block forever.
func (f *Finder) Search(ctx context.Context) *Session {
	ctx, span := tracer.Start(ctx, "anagram.Search", trace.WithAttributes(
		attribute.String("phrase", f.phrase),
		attribute.Int("max_words", f.maxWords),
		attribute.Int("hashes", f.verifier.Len()),
	))

	s := &Session{
		matches: make(chan Match, f.buffer),
		done:    make(chan struct{}),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.parallelism)

	start := time.Now()
	g.Go(func() error {
		return f.combine(gctx, g, s, branch{parent: f.root, remaining: f.letters})
	})

	go func() {
		s.err = g.Wait()

		stats := s.Stats()
		span.SetAttributes(
			attribute.Int64("matches", stats.Matches),
			attribute.Int64("candidates", stats.Candidates),
		)
		if s.err != nil {
			span.RecordError(s.err)
			span.SetStatus(codes.Error, s.err.Error())
		}
		span.End()
		f.logger.LogSearch(ctx, stats, time.Since(start), s.err)

		close(s.matches)
		close(s.done)
	}()

	return s
}

// Anagrams returns the matches as a lazy sequence. Stopping the iteration early cancels
// the rest of the search.
func (f *Finder) Anagrams(ctx context.Context) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		ctx, cancel := context.WithCancel(ctx)
		s := f.Search(ctx)
		defer func() {
			for range s.Matches() {
			}
		}()
		defer cancel()

		for m := range s.Matches() {
			if !yield(m) {
				return
			}
		}
	}
}

// FindAll runs a search to completion and returns every match.
func (f *Finder) FindAll(ctx context.Context) ([]Match, error) {
	s := f.Search(ctx)
	var matches []Match
	for m := range s.Matches() {
		matches = append(matches, m)
	}
	return matches, s.Err()
}

// fork runs fn on a new goroutine if the group has room, and on the current one otherwise.
// Running inline when the group is full keeps nested fan-out from waiting on itself.
func (f *Finder) fork(g *errgroup.Group, s *Session, fn func() error) error {
	if g.TryGo(fn) {
		s.counters.spawned.Add(1)
		return nil
	}
	s.counters.inline.Add(1)
	return fn()
}

// combine tries every child of b.parent as the next letter of the anagram.
func (f *Finder) combine(ctx context.Context, g *errgroup.Group, s *Session, b branch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, child := range b.parent.Children() {
		if err := f.fork(g, s, func() error {
			return f.extend(ctx, g, s, b, child)
		}); err != nil {
			return err
		}
	}
	return nil
}

// extend appends child's letter to the candidate in b.
func (f *Finder) extend(ctx context.Context, g *errgroup.Group, s *Session, b branch, child *trie.Letter) error {
	remaining, ok := b.remaining.Consume(child.Character())
	if !ok {
		return nil
	}
	s.counters.nodesVisited.Add(1)

	candidate := b.prefix + string(child.Character())

	if remaining.IsEmpty() {
		if !child.IsWord() {
			return nil
		}
		return f.emit(ctx, s, candidate)
	}

	// A word that ends here may also be the start of a longer word, so both the longer
	// word and a fresh word from the root are explored.
	if child.IsWord() && b.words+1 < f.maxWords {
		next := branch{
			parent:    f.root,
			prefix:    candidate + " ",
			remaining: remaining,
			words:     b.words + 1,
		}
		if err := f.fork(g, s, func() error {
			return f.combine(ctx, g, s, next)
		}); err != nil {
			return err
		}
	}

	return f.combine(ctx, g, s, branch{
		parent:    child,
		prefix:    candidate,
		remaining: remaining,
		words:     b.words,
	})
}

func (f *Finder) emit(ctx context.Context, s *Session, candidate string) error {
	s.counters.candidates.Add(1)

	digest, ok := f.verifier.Verify(candidate)
	if !ok {
		return nil
	}

	select {
	case s.matches <- Match{Text: candidate, Digest: digest}:
		s.counters.matches.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
