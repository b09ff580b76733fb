package session

import (
	"errors"
	"fmt"
)

// Unranked is the rank value that returns an identity to the unranked pool.
const Unranked = 0

var (
	// ErrUnknownCombination means no comparison has been run for the key.
	ErrUnknownCombination = errors.New("no comparison state for combination")

	// ErrUnknownIdentity means the identity is not part of the current
	// result set for the combination.
	ErrUnknownIdentity = errors.New("identity not present in current results")
)

// Assign moves an outcome identity to newRank within the combination's rank
// assignment. newRank == Unranked drops the identity back to the unranked
// pool. prevRank is the slot the drag originated from (Unranked when it
// came from the pool).
//
// The order of operations preserves the bijection: first the moved item
// leaves its old slot, then whatever occupies the destination slot is
// evicted to the pool, then the moved item takes the slot. The evicted
// item does not inherit the moved item's old rank.
func (s *Session) Assign(key Key, identity string, newRank, prevRank int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.combos[key]
	if !ok || c.results == nil {
		return ErrUnknownCombination
	}

	found := false
	for i := range c.results {
		if c.results[i].Outcome.MostSimilar == identity {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownIdentity, identity)
	}

	if limit := len(c.results); newRank < Unranked || newRank > limit {
		return fmt.Errorf("rank %d out of range [1..%d]", newRank, limit)
	}

	if prevRank != Unranked {
		for id, rank := range c.ranks {
			if rank == prevRank {
				delete(c.ranks, id)
			}
		}
	}

	for id, rank := range c.ranks {
		if rank == newRank {
			delete(c.ranks, id)
		}
	}

	if newRank != Unranked {
		c.ranks[identity] = newRank
	} else {
		delete(c.ranks, identity)
	}
	return nil
}

// Ready reports whether every result group for the combination has a rank,
// which is the precondition for submitting.
func (s *Session) Ready(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyLocked(key)
}

func (s *Session) readyLocked(key Key) bool {
	c, ok := s.combos[key]
	if !ok || len(c.results) == 0 || !c.multi {
		return false
	}
	return len(c.ranks) == len(c.results)
}

// Ranks returns a copy of the combination's current rank assignment.
func (s *Session) Ranks(key Key) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.combos[key]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(c.ranks))
	for id, rank := range c.ranks {
		out[id] = rank
	}
	return out
}

// Results returns the combination's active result groups.
func (s *Session) Results(key Key) []ResultGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.combos[key]
	if !ok {
		return nil
	}
	return c.results
}
