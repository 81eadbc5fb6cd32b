// Package results persists the matches of a search.
package results

import (
	"bufio"
	"context"
	"errors"
	"io"

	"crosswarped.com/anagram"
)

// Sink receives matches. Sinks are fed by the single consumer of a search and need not be
// safe for concurrent use.
type Sink interface {
	Put(ctx context.Context, m anagram.Match) error
	Close() error
}

// LineWriter writes one "<digest> <anagram>" line per match.
type LineWriter struct {
	w      *bufio.Writer
	closer io.Closer
	count  int
}

// NewLineWriter returns a LineWriter writing to w. If w is also an io.Closer, closing the
// LineWriter closes it.
func NewLineWriter(w io.Writer) *LineWriter {
	lw := &LineWriter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		lw.closer = c
	}
	return lw
}

func (l *LineWriter) Put(_ context.Context, m anagram.Match) error {
	if _, err := l.w.WriteString(m.Repr()); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	l.count++
	return nil
}

// Count returns the number of lines written.
func (l *LineWriter) Count() int {
	return l.count
}

func (l *LineWriter) Close() error {
	err := l.w.Flush()
	if l.closer != nil {
		err = errors.Join(err, l.closer.Close())
	}
	return err
}

type multi []Sink

// Multi returns a Sink that puts every match into each of sinks in order.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Put(ctx context.Context, match anagram.Match) error {
	for _, s := range m {
		if err := s.Put(ctx, match); err != nil {
			return err
		}
	}
	return nil
}

func (m multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
