package shapeapi

import (
	"context"
	"fmt"
)

// SubmitRankings sends a flattened per-method ranking to the backend.
func (c *Client) SubmitRankings(ctx context.Context, record SubmissionRecord) (*SubmitResponse, error) {
	result, err := doPostJSON[SubmitResponse](ctx, c, "rankings/submit", record)
	if err != nil {
		return nil, fmt.Errorf("submit rankings: %w", err)
	}
	return result, nil
}

// GetRankings fetches the aggregate leaderboard totals.
func (c *Client) GetRankings(ctx context.Context) (*RankingsResponse, error) {
	result, err := doGetJSON[RankingsResponse](ctx, c, "rankings/get")
	if err != nil {
		return nil, fmt.Errorf("get rankings: %w", err)
	}
	return result, nil
}
