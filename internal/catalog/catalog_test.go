package catalog

import "testing"

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"São Tomé", "Sao Tome"},
		{"Côte d'Ivoire", "Cote d'Ivoire"},
		{"Curaçao", "Curacao"},
		{"France", "France"},
	}

	for _, tt := range tests {
		if got := RemoveDiacritics(tt.in); got != tt.want {
			t.Errorf("RemoveDiacritics(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"France", "france"},
		{"United States", "united_states"},
		{"Côte d'Ivoire", "cote_d_ivoire"},
		{"Bosnia and Herzegovina", "bosnia_and_herzegovina"},
		{"Lake Tahoe ", "lake_tahoe"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReferenceImagePath(t *testing.T) {
	got := ReferenceImagePath("countries", "São Tomé")
	want := "countries/sao_tome.png"
	if got != want {
		t.Errorf("ReferenceImagePath() = %q, want %q", got, want)
	}
}
