package session

import (
	"context"
	"sync"
	"testing"

	"github.com/lmalina/shape-rank/internal/shapeapi"
)

// fakeBackend is an in-memory Backend with scriptable per-method results.
type fakeBackend struct {
	mu          sync.Mutex
	results     map[string]shapeapi.CompareResult
	compareErr  map[string]error
	submitResp  shapeapi.SubmitResponse
	submitErr   error
	submissions []shapeapi.SubmissionRecord
	compareLog  []shapeapi.CompareRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		results:    make(map[string]shapeapi.CompareResult),
		compareErr: make(map[string]error),
		submitResp: shapeapi.SubmitResponse{Status: "success"},
	}
}

func (f *fakeBackend) Compare(_ context.Context, req shapeapi.CompareRequest) (*shapeapi.CompareResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.compareLog = append(f.compareLog, req)
	if err := f.compareErr[req.CompareMethod]; err != nil {
		return nil, err
	}
	result, ok := f.results[req.CompareMethod]
	if !ok {
		result = shapeapi.CompareResult{MostSimilar: "France", MaskURL: "masks/default.png"}
	}
	return &result, nil
}

func (f *fakeBackend) SubmitRankings(_ context.Context, record shapeapi.SubmissionRecord) (*shapeapi.SubmitResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submissions = append(f.submissions, record)
	resp := f.submitResp
	return &resp, nil
}

// setAll scripts the same identity for every canonical method.
func (f *fakeBackend) setAll(identity string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range canonicalMethods {
		f.results[m] = shapeapi.CompareResult{MostSimilar: identity, MaskURL: "masks/" + m + ".png"}
	}
}

// set scripts one method's result.
func (f *fakeBackend) set(method, identity string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[method] = shapeapi.CompareResult{MostSimilar: identity, MaskURL: "masks/" + method + ".png"}
}

func testImage() *shapeapi.ProcessImageResponse {
	return &shapeapi.ProcessImageResponse{
		FileName:          "holiday.jpg",
		CompositeImageURL: "http://backend/static/holiday_all_colored_mask.jpg",
		Objects: []shapeapi.DetectedObject{
			{ObjectID: 0, ObjectType: "dog1", MaskCoords: [][]uint8{{0, 1}, {1, 1}}},
			{ObjectID: 3, ObjectType: "cat1", MaskCoords: [][]uint8{{1, 0}, {0, 1}}},
		},
	}
}

// newTestSession returns a session with an image loaded and object 0 /
// countries / compare_all selected.
func newTestSession(t *testing.T, backend Backend) *Session {
	t.Helper()

	s := New(backend, "session-test", canonicalMethods)
	s.SetImage(testImage())
	if err := s.SelectObject(0); err != nil {
		t.Fatalf("SelectObject() error = %v", err)
	}
	s.SelectCategory("countries")
	s.SelectMethod("compare_all")
	return s
}

// mustCompare runs Compare and fails the test on error.
func mustCompare(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Compare(context.Background()); err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
}

// mustAssign runs Assign and fails the test on error.
func mustAssign(t *testing.T, s *Session, key Key, identity string, newRank, prevRank int) {
	t.Helper()
	if err := s.Assign(key, identity, newRank, prevRank); err != nil {
		t.Fatalf("Assign(%q, %d, %d) error = %v", identity, newRank, prevRank, err)
	}
}

// assertInjective fails if two identities share a rank.
func assertInjective(t *testing.T, ranks map[string]int) {
	t.Helper()
	seen := make(map[int]string)
	for id, rank := range ranks {
		if other, dup := seen[rank]; dup {
			t.Errorf("rank %d held by both %q and %q", rank, id, other)
		}
		seen[rank] = id
	}
}
