package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/lmalina/shape-rank/internal/shapeapi"
)

// ErrNotReady means the rank assignment is still partial.
var ErrNotReady = errors.New("not every result group has been ranked")

// BuildSubmission expands the combination's group ranks into a per-method
// SubmissionRecord: every method in a group inherits the group's rank.
func (s *Session) BuildSubmission(key Key) (*shapeapi.SubmissionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildSubmissionLocked(key)
}

func (s *Session) buildSubmissionLocked(key Key) (*shapeapi.SubmissionRecord, error) {
	if !s.readyLocked(key) {
		return nil, ErrNotReady
	}
	if s.image == nil || s.selectedObject == nil || s.selectedCategory == "" {
		return nil, ErrIncompleteSelection
	}

	c := s.combos[key]
	rankings := make(map[string]int)
	for identity, rank := range c.ranks {
		for i := range c.results {
			if c.results[i].Outcome.MostSimilar != identity {
				continue
			}
			for _, method := range c.results[i].Methods {
				rankings[method] = rank
			}
		}
	}

	return &shapeapi.SubmissionRecord{
		SessionID:     s.sessionID,
		ImageFileName: s.image.FileName,
		ObjectID:      s.selectedObject.ObjectID,
		CategoryID:    s.selectedCategory,
		Rankings:      rankings,
	}, nil
}

// Submit sends the active combination's ranking to the backend. The
// submitted flag flips only on an explicit success acknowledgment; any
// other response leaves the rank assignment untouched so the user can
// retry.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	key := s.currentKeyLocked()
	if key == "" {
		s.mu.Unlock()
		return ErrIncompleteSelection
	}
	record, err := s.buildSubmissionLocked(key)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	gen := s.combos[key].generation
	s.mu.Unlock()

	resp, err := s.backend.SubmitRankings(ctx, *record)
	if err != nil {
		return err
	}
	if resp.Status != "success" {
		return fmt.Errorf("ranking submission rejected with status %q", resp.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.combos[key]; ok && c.generation == gen {
		c.submitted = true
	}
	return nil
}

// Submitted reports whether the combination's ranking has been accepted.
func (s *Session) Submitted(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.combos[key]
	return ok && c.submitted
}
