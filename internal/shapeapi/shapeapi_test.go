package shapeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handlers map[string]http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_InvalidURL(t *testing.T) {
	if _, err := NewClient("://not-a-url"); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestCompare_SendsRequestAndParsesResult(t *testing.T) {
	var received CompareRequest
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/api/objects/compare": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(CompareResult{MostSimilar: "France", MaskURL: "http://backend/masks/1.png"})
		},
	})

	result, err := client.Compare(context.Background(), CompareRequest{
		MaskCoords:    [][]uint8{{0, 1}, {1, 0}},
		CategoryID:    "countries",
		ObjectID:      2,
		ImageFileName: "photo.jpg",
		CompareMethod: "hamming",
	})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if result.MostSimilar != "France" {
		t.Errorf("most_similar = %q, want France", result.MostSimilar)
	}
	if received.CompareMethod != "hamming" || received.CategoryID != "countries" || received.ObjectID != 2 {
		t.Errorf("backend received %+v", received)
	}
}

func TestCompare_MissingParameters(t *testing.T) {
	client := newTestClient(t, nil)

	_, err := client.Compare(context.Background(), CompareRequest{CompareMethod: "hamming"})
	if err == nil {
		t.Error("expected error for missing mask/category/file name")
	}
}

func TestCompare_BackendFailure(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/api/objects/compare": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})

	_, err := client.Compare(context.Background(), CompareRequest{
		MaskCoords:    [][]uint8{{1}},
		CategoryID:    "countries",
		ImageFileName: "photo.jpg",
		CompareMethod: "ssim",
	})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error %q does not mention the status", err)
	}
}

func TestCompare_EmptyMatchIsAnError(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/api/objects/compare": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(CompareResult{})
		},
	})

	_, err := client.Compare(context.Background(), CompareRequest{
		MaskCoords:    [][]uint8{{1}},
		CategoryID:    "countries",
		ImageFileName: "photo.jpg",
		CompareMethod: "dice",
	})
	if err == nil {
		t.Error("expected error for empty most_similar")
	}
}

func TestCompare_DerivesMaskURLWhenOmitted(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/api/objects/compare": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(CompareResult{MostSimilar: "São Tomé and Príncipe"})
		},
	})

	result, err := client.Compare(context.Background(), CompareRequest{
		MaskCoords:    [][]uint8{{1}},
		CategoryID:    "countries",
		ImageFileName: "photo.jpg",
		CompareMethod: "jaccard",
	})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result.MaskURL != "static/countries/sao_tome_and_principe.png" {
		t.Errorf("mask_url = %q", result.MaskURL)
	}
}

func TestProcessImageReader_UploadsMultipart(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/api/images/process": func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				http.Error(w, "bad form", http.StatusBadRequest)
				return
			}
			file, header, err := r.FormFile("image")
			if err != nil {
				http.Error(w, "missing image field", http.StatusBadRequest)
				return
			}
			defer file.Close()

			json.NewEncoder(w).Encode(ProcessImageResponse{
				Objects: []DetectedObject{
					{ObjectID: 0, ObjectType: "dog1", MaskCoords: [][]uint8{{1}}},
				},
				CompositeImageURL: "http://backend/static/composite.jpg",
				FileName:          header.Filename,
			})
		},
	})

	resp, err := client.ProcessImageReader(context.Background(), "holiday.jpg", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("ProcessImageReader() error = %v", err)
	}

	if len(resp.Objects) != 1 || resp.Objects[0].ObjectType != "dog1" {
		t.Errorf("objects = %+v", resp.Objects)
	}
	if resp.FileName != "holiday.jpg" {
		t.Errorf("file name = %q, want holiday.jpg", resp.FileName)
	}
}

func TestProcessImageReader_FillsMissingFileName(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/api/images/process": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ProcessImageResponse{CompositeImageURL: "x"})
		},
	})

	resp, err := client.ProcessImageReader(context.Background(), "fallback.jpg", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("ProcessImageReader() error = %v", err)
	}
	if resp.FileName != "fallback.jpg" {
		t.Errorf("file name = %q, want fallback.jpg", resp.FileName)
	}
}

func TestSubmitRankings(t *testing.T) {
	var received SubmissionRecord
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/api/rankings/submit": func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(SubmitResponse{Status: "success"})
		},
	})

	resp, err := client.SubmitRankings(context.Background(), SubmissionRecord{
		SessionID:     "abc",
		ImageFileName: "photo.jpg",
		ObjectID:      1,
		CategoryID:    "us_states",
		Rankings:      map[string]int{"hamming": 1, "ssim": 1},
	})
	if err != nil {
		t.Fatalf("SubmitRankings() error = %v", err)
	}

	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
	if received.SessionID != "abc" || received.Rankings["ssim"] != 1 {
		t.Errorf("backend received %+v", received)
	}
}

func TestGetRankings(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/api/rankings/get": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(RankingsResponse{
				RankingTotals: map[string]float64{"hamming": 12, "ssim": 9},
			})
		},
	})

	resp, err := client.GetRankings(context.Background())
	if err != nil {
		t.Fatalf("GetRankings() error = %v", err)
	}
	if resp.RankingTotals["ssim"] != 9 {
		t.Errorf("rankingTotals = %v", resp.RankingTotals)
	}
}
