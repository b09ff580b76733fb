package session

import "strconv"

// Key identifies one (detected object, reference category) combination.
// All comparison and ranking state is partitioned by this key; the empty
// key means no complete selection exists.
type Key string

// Combine derives the combination key for an object id and category id.
// Returns the empty key when the category is unselected.
func Combine(objectID int, categoryID string) Key {
	if categoryID == "" {
		return ""
	}
	return Key(strconv.Itoa(objectID) + "-" + categoryID)
}
