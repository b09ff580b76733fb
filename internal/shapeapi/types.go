package shapeapi

// DetectedObject is one object the backend segmented out of an uploaded image.
// MaskCoords is a 2D binary bitmap (row-major, 0/1) covering the object.
type DetectedObject struct {
	ObjectID       int       `json:"object_id"`
	ObjectType     string    `json:"object_type"`
	MaskCoords     [][]uint8 `json:"mask_coords"`
	ColoredMask    string    `json:"colored_mask_path,omitempty"`
	SilhouettePath string    `json:"object_silhouette_path,omitempty"`
}

// ProcessImageResponse is the detection result for an uploaded image.
type ProcessImageResponse struct {
	Objects           []DetectedObject `json:"objects"`
	CompositeImageURL string           `json:"composite_image_url"`
	FileName          string           `json:"file_name"`
}

// CompareRequest asks the backend to compare one object mask against a
// reference category using a single concrete method.
type CompareRequest struct {
	MaskCoords    [][]uint8 `json:"mask_coords"`
	CategoryID    string    `json:"category_id"`
	ObjectID      int       `json:"object_id"`
	ImageFileName string    `json:"image_file_name"`
	CompareMethod string    `json:"compare_method"`
}

// CompareResult is the best match the backend found for one method.
type CompareResult struct {
	MostSimilar string `json:"most_similar"`
	MaskURL     string `json:"mask_url"`
}

// SubmissionRecord is a flattened per-method ranking for one
// (object, category) combination.
type SubmissionRecord struct {
	SessionID     string         `json:"session_id"`
	ImageFileName string         `json:"image_file_name"`
	ObjectID      int            `json:"object_id"`
	CategoryID    string         `json:"category_id"`
	Rankings      map[string]int `json:"rankings"`
}

// SubmitResponse acknowledges a ranking submission. Only Status == "success"
// counts as accepted.
type SubmitResponse struct {
	Status string `json:"status"`
}

// RankingsResponse carries the aggregate leaderboard totals per method.
// Lower totals mean better average ranks.
type RankingsResponse struct {
	RankingTotals map[string]float64 `json:"rankingTotals"`
}
