package session

import "github.com/lmalina/shape-rank/internal/shapeapi"

// Snapshot is a read-only view of the session for presentation layers.
// Results and category reflect comparison time, not the current selection,
// so a category change mid-render cannot repoint results at the wrong
// reference set.
type Snapshot struct {
	SessionID        string                         `json:"session_id"`
	Image            *shapeapi.ProcessImageResponse `json:"image,omitempty"`
	SelectedObjectID *int                           `json:"selected_object_id,omitempty"`
	SelectedCategory string                         `json:"selected_category,omitempty"`
	SelectedMethod   string                         `json:"selected_method,omitempty"`

	CombinationKey     Key            `json:"combination_key,omitempty"`
	Results            []ResultGroup  `json:"results,omitempty"`
	ComparisonCategory string         `json:"comparison_category,omitempty"`
	MultiMethod        bool           `json:"multi_method"`
	Ranks              map[string]int `json:"ranks,omitempty"`
	Ready              bool           `json:"ready"`
	Submitted          bool           `json:"submitted"`
}

// Snapshot captures the current session state for the active combination.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:        s.sessionID,
		Image:            s.image,
		SelectedCategory: s.selectedCategory,
		SelectedMethod:   s.selectedMethod,
	}
	if s.selectedObject != nil {
		id := s.selectedObject.ObjectID
		snap.SelectedObjectID = &id
	}

	key := s.currentKeyLocked()
	if key == "" {
		return snap
	}
	snap.CombinationKey = key

	c, ok := s.combos[key]
	if !ok {
		return snap
	}

	snap.Results = c.results
	snap.ComparisonCategory = c.category
	snap.MultiMethod = c.multi
	snap.Ready = s.readyLocked(key)
	snap.Submitted = c.submitted

	snap.Ranks = make(map[string]int, len(c.ranks))
	for id, rank := range c.ranks {
		snap.Ranks[id] = rank
	}
	return snap
}

// Object returns the detected object with the given id from the current
// image, or nil if there is no such object.
func (s *Session) Object(objectID int) *shapeapi.DetectedObject {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.image == nil {
		return nil
	}
	for i := range s.image.Objects {
		if s.image.Objects[i].ObjectID == objectID {
			return &s.image.Objects[i]
		}
	}
	return nil
}
