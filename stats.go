package anagram

import "sync/atomic"

// Stats is a snapshot of the work done by a Finder.
type Stats struct {
	// NodesVisited counts trie nodes whose letter could be consumed.
	NodesVisited int64
	// Candidates counts complete anagrams that were hashed.
	Candidates int64
	// Matches counts anagrams sent to the consumer.
	Matches int64
	// Spawned counts branches that ran on their own goroutine.
	Spawned int64
	// Inline counts branches that ran on their parent's goroutine because the pool was full.
	Inline int64
}

type counters struct {
	nodesVisited atomic.Int64
	candidates   atomic.Int64
	matches      atomic.Int64
	spawned      atomic.Int64
	inline       atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		NodesVisited: c.nodesVisited.Load(),
		Candidates:   c.candidates.Load(),
		Matches:      c.matches.Load(),
		Spawned:      c.spawned.Load(),
		Inline:       c.inline.Load(),
	}
}
