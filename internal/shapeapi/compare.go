package shapeapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/lmalina/shape-rank/internal/catalog"
)

// Compare runs a single-method comparison of an object mask against a category.
func (c *Client) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	if len(req.MaskCoords) == 0 || req.CategoryID == "" || req.ImageFileName == "" || req.CompareMethod == "" {
		return nil, errors.New("missing required comparison parameters")
	}

	result, err := doPostJSON[CompareResult](ctx, c, "objects/compare", req)
	if err != nil {
		return nil, fmt.Errorf("compare %s: %w", req.CompareMethod, err)
	}
	if result.MostSimilar == "" {
		return nil, fmt.Errorf("compare %s: backend returned no match", req.CompareMethod)
	}
	if result.MaskURL == "" {
		// Older backends omit the mask URL; the reference images live at
		// predictable static paths derived from the match name.
		result.MaskURL = "static/" + catalog.ReferenceImagePath(req.CategoryID, result.MostSimilar)
	}
	return result, nil
}
