// Package session implements the comparison-session state machine: the
// per-combination comparison results, the rank assignments over them, and
// the submission gate. It is the only owner of that state; the CLI and the
// web handlers drive it exclusively through its exported operations.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lmalina/shape-rank/internal/config"
	"github.com/lmalina/shape-rank/internal/shapeapi"
)

var (
	// ErrIncompleteSelection means object, category, or method is missing.
	// Callers treat it as "the compare button is disabled", not a failure.
	ErrIncompleteSelection = errors.New("object, category, and method must all be selected")

	// ErrSuperseded means a newer compare for the same combination started
	// before this one finished; its result was discarded.
	ErrSuperseded = errors.New("comparison superseded by a newer request")

	// ErrNoImage means no image has been processed yet.
	ErrNoImage = errors.New("no image has been uploaded")
)

// Backend is the remote collaborator that computes similarity and ingests
// submitted rankings.
type Backend interface {
	Compare(ctx context.Context, req shapeapi.CompareRequest) (*shapeapi.CompareResult, error)
	SubmitRankings(ctx context.Context, record shapeapi.SubmissionRecord) (*shapeapi.SubmitResponse, error)
}

// Session aggregates all comparison-session state for one client.
// All state is guarded by mu; the exported operations are safe for
// concurrent use from HTTP handlers.
type Session struct {
	mu      sync.Mutex
	backend Backend
	methods []string // canonical concrete method order

	sessionID string

	image            *shapeapi.ProcessImageResponse
	selectedObject   *shapeapi.DetectedObject
	selectedCategory string
	selectedMethod   string

	combos map[Key]*combination

	// OnProgress, if set, is called once per completed method during a
	// compare_all fan-out. Used by the CLI progress bar.
	OnProgress func(method string)
}

// combination holds everything scoped to one (object, category) key.
type combination struct {
	// generation increments each time a compare starts for this combination;
	// a fan-out only installs its result if it still owns the latest one.
	generation int

	results   []ResultGroup
	category  string // category id at comparison time, not current selection
	multi     bool   // true when results came from compare_all
	ranks     map[string]int
	submitted bool
}

// New creates a session bound to a backend and a durable session id.
// Methods must be the concrete method ids in canonical order.
func New(backend Backend, sessionID string, methods []string) *Session {
	return &Session{
		backend:   backend,
		methods:   methods,
		sessionID: sessionID,
		combos:    make(map[Key]*combination),
	}
}

// SessionID returns the durable anonymous session identifier.
func (s *Session) SessionID() string {
	return s.sessionID
}

// combo returns the state for key, creating it if needed. Caller holds mu.
func (s *Session) combo(key Key) *combination {
	c, ok := s.combos[key]
	if !ok {
		c = &combination{ranks: make(map[string]int)}
		s.combos[key] = c
	}
	return c
}

// SetImage installs a fresh detection result and resets every selection and
// all per-combination state: a new image means new object ids, so old keys
// would collide with unrelated objects.
func (s *Session) SetImage(image *shapeapi.ProcessImageResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.image = image
	s.selectedObject = nil
	s.selectedCategory = ""
	s.selectedMethod = ""
	s.combos = make(map[Key]*combination)
}

// SelectObject selects a detected object by id from the current image.
func (s *Session) SelectObject(objectID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.image == nil {
		return ErrNoImage
	}
	for i := range s.image.Objects {
		if s.image.Objects[i].ObjectID == objectID {
			s.selectedObject = &s.image.Objects[i]
			s.clearSubmittedLocked()
			return nil
		}
	}
	return fmt.Errorf("unknown object id %d", objectID)
}

// SelectCategory selects the reference category.
func (s *Session) SelectCategory(categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedCategory = categoryID
	s.clearSubmittedLocked()
}

// SelectMethod selects the compare method (a concrete method or compare_all).
func (s *Session) SelectMethod(methodID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedMethod = methodID
}

// clearSubmittedLocked resets the submitted flag for the combination the
// selection now points at, so a re-visited combination can be re-ranked.
func (s *Session) clearSubmittedLocked() {
	key := s.currentKeyLocked()
	if key == "" {
		return
	}
	if c, ok := s.combos[key]; ok {
		c.submitted = false
	}
}

// currentKeyLocked derives the active combination key. Caller holds mu.
func (s *Session) currentKeyLocked() Key {
	if s.selectedObject == nil || s.selectedCategory == "" {
		return ""
	}
	return Combine(s.selectedObject.ObjectID, s.selectedCategory)
}

// CurrentKey returns the active combination key, or "" if the selection is
// incomplete.
func (s *Session) CurrentKey() Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKeyLocked()
}

// Compare runs the currently selected comparison: a single backend call for
// a concrete method, or a parallel fan-out over all six for compare_all.
// The result set and rank assignment for the combination are replaced
// together; a fan-out that has been superseded by a newer Compare for the
// same combination discards its result and returns ErrSuperseded.
func (s *Session) Compare(ctx context.Context) error {
	s.mu.Lock()
	if s.image == nil || s.selectedObject == nil || s.selectedCategory == "" || s.selectedMethod == "" {
		s.mu.Unlock()
		return ErrIncompleteSelection
	}

	object := s.selectedObject
	category := s.selectedCategory
	method := s.selectedMethod
	fileName := s.image.FileName
	key := s.currentKeyLocked()

	c := s.combo(key)
	c.generation++
	gen := c.generation
	s.mu.Unlock()

	if method == config.CompareAll {
		return s.compareAll(ctx, key, gen, object, category, fileName)
	}
	return s.compareSingle(ctx, key, gen, object, category, fileName, method)
}

// compareSingle issues one backend call and installs a one-group result set.
func (s *Session) compareSingle(ctx context.Context, key Key, gen int, object *shapeapi.DetectedObject, category, fileName, method string) error {
	result, err := s.backend.Compare(ctx, shapeapi.CompareRequest{
		MaskCoords:    object.MaskCoords,
		CategoryID:    category,
		ObjectID:      object.ObjectID,
		ImageFileName: fileName,
		CompareMethod: method,
	})
	if err != nil {
		return err
	}

	groups := []ResultGroup{{
		Outcome:    Outcome{MostSimilar: result.MostSimilar, MaskURL: result.MaskURL},
		Methods:    []string{method},
		ObjectType: object.ObjectType,
	}}
	return s.install(key, gen, groups, category, false)
}

// compareAll fans one call per concrete method out in parallel and merges
// the outcomes into equivalence classes. All six must succeed; any failure
// fails the whole operation and leaves previous state untouched.
func (s *Session) compareAll(ctx context.Context, key Key, gen int, object *shapeapi.DetectedObject, category, fileName string) error {
	results := make([]*shapeapi.CompareResult, len(s.methods))
	errs := make([]error, len(s.methods))

	var wg sync.WaitGroup
	for i, method := range s.methods {
		wg.Add(1)
		go func(i int, method string) {
			defer wg.Done()
			results[i], errs[i] = s.backend.Compare(ctx, shapeapi.CompareRequest{
				MaskCoords:    object.MaskCoords,
				CategoryID:    category,
				ObjectID:      object.ObjectID,
				ImageFileName: fileName,
				CompareMethod: method,
			})
			if s.OnProgress != nil {
				s.OnProgress(method)
			}
		}(i, method)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("compare_all failed: %w", err)
	}

	byMethod := make(map[string]Outcome, len(s.methods))
	for i, method := range s.methods {
		byMethod[method] = Outcome{MostSimilar: results[i].MostSimilar, MaskURL: results[i].MaskURL}
	}

	groups := GroupOutcomes(byMethod, s.methods, object.ObjectType)
	return s.install(key, gen, groups, category, true)
}

// install atomically replaces the result set and resets the rank assignment
// for a combination, unless a newer compare has started in the meantime.
func (s *Session) install(key Key, gen int, groups []ResultGroup, category string, multi bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.combo(key)
	if c.generation != gen {
		return ErrSuperseded
	}

	c.results = groups
	c.category = category
	c.multi = multi
	c.ranks = make(map[string]int)
	c.submitted = false
	return nil
}
