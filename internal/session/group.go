package session

// Outcome is a single method's comparison result.
type Outcome struct {
	MostSimilar string `json:"most_similar"`
	MaskURL     string `json:"mask_url"`
}

// ResultGroup is an equivalence class of methods that nominated the same
// best-match identity in one comparison response.
type ResultGroup struct {
	Outcome    Outcome  `json:"outcome"`
	Methods    []string `json:"methods"`
	ObjectType string   `json:"object_type"`
}

// GroupOutcomes collapses per-method outcomes into equivalence classes keyed
// by the outcome's most_similar identity. Methods are visited in the given
// canonical order, so group order and per-group method order are
// deterministic for a given input. The first method to produce an identity
// seeds the group and its mask_url wins for the whole group.
func GroupOutcomes(byMethod map[string]Outcome, methodOrder []string, objectType string) []ResultGroup {
	var groups []ResultGroup
	index := make(map[string]int)

	for _, method := range methodOrder {
		outcome, ok := byMethod[method]
		if !ok {
			continue
		}
		if i, seen := index[outcome.MostSimilar]; seen {
			groups[i].Methods = append(groups[i].Methods, method)
			continue
		}
		index[outcome.MostSimilar] = len(groups)
		groups = append(groups, ResultGroup{
			Outcome:    outcome,
			Methods:    []string{method},
			ObjectType: objectType,
		})
	}
	return groups
}
