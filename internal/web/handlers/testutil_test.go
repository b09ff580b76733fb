package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lmalina/shape-rank/internal/config"
	"github.com/lmalina/shape-rank/internal/session"
	"github.com/lmalina/shape-rank/internal/shapeapi"
)

var canonicalMethods = []string{"hamming", "ssim", "chamfer", "hausdorff", "dice", "jaccard"}

// testCatalog mirrors the embedded catalog without reading it from disk.
func testCatalog() config.CatalogConfig {
	catalog := config.CatalogConfig{
		Categories: []config.Category{
			{ID: "countries", Name: "Countries"},
			{ID: "us_states", Name: "US States"},
			{ID: "lakes_and_reservoirs", Name: "Lakes & Reservoirs"},
		},
	}
	for _, id := range canonicalMethods {
		catalog.Methods = append(catalog.Methods, config.Method{ID: id, Name: id})
	}
	return catalog
}

func testConfig() *config.Config {
	return &config.Config{
		API:     config.APIConfig{URL: "http://localhost:5000"},
		Catalog: testCatalog(),
	}
}

// backendFixture scripts the mock comparison backend.
type backendFixture struct {
	compareResults map[string]shapeapi.CompareResult // keyed by method
	compareStatus  int
	submitStatus   string
	submissions    []shapeapi.SubmissionRecord
}

// setupMockBackend starts an httptest server speaking the backend API.
func setupMockBackend(t *testing.T, fixture *backendFixture) *httptest.Server {
	t.Helper()

	if fixture.compareResults == nil {
		fixture.compareResults = make(map[string]shapeapi.CompareResult)
	}
	if fixture.submitStatus == "" {
		fixture.submitStatus = "success"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/objects/compare", func(w http.ResponseWriter, r *http.Request) {
		if fixture.compareStatus != 0 {
			http.Error(w, "scripted failure", fixture.compareStatus)
			return
		}
		var req shapeapi.CompareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		result, ok := fixture.compareResults[req.CompareMethod]
		if !ok {
			result = shapeapi.CompareResult{MostSimilar: "France", MaskURL: "masks/default.png"}
		}
		json.NewEncoder(w).Encode(result)
	})
	mux.HandleFunc("/api/rankings/submit", func(w http.ResponseWriter, r *http.Request) {
		var record shapeapi.SubmissionRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		fixture.submissions = append(fixture.submissions, record)
		json.NewEncoder(w).Encode(shapeapi.SubmitResponse{Status: fixture.submitStatus})
	})
	mux.HandleFunc("/api/rankings/get", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(shapeapi.RankingsResponse{
			RankingTotals: map[string]float64{"hamming": 10, "ssim": 7, "dice": 12},
		})
	})
	mux.HandleFunc("/api/images/process", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(shapeapi.ProcessImageResponse{
			Objects: []shapeapi.DetectedObject{
				{ObjectID: 0, ObjectType: "dog1", MaskCoords: [][]uint8{{0, 1}, {1, 1}}},
			},
			CompositeImageURL: "http://backend/static/composite.jpg",
			FileName:          "upload.jpg",
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newTestStack wires a client and session against a mock backend.
func newTestStack(t *testing.T, fixture *backendFixture) (*shapeapi.Client, *session.Session) {
	t.Helper()

	server := setupMockBackend(t, fixture)
	client, err := shapeapi.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	sess := session.New(client, "session-test", canonicalMethods)
	return client, sess
}

// loadTestImage installs a detection result directly on the session.
func loadTestImage(sess *session.Session) {
	sess.SetImage(&shapeapi.ProcessImageResponse{
		FileName: "holiday.jpg",
		Objects: []shapeapi.DetectedObject{
			{ObjectID: 0, ObjectType: "dog1", MaskCoords: [][]uint8{{0, 1}, {1, 1}}},
			{ObjectID: 1, ObjectType: "cat1", MaskCoords: [][]uint8{{1, 1}, {1, 0}}},
		},
	})
}

// parseJSONResponse parses a JSON response body into the target type.
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code.
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// postJSON builds a JSON POST request.
func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}
