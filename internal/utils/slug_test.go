package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Saree Covers", "saree-covers"},
		{"  Boîtes & Cartons  ", "botes-cartons"},
		{"UPPER_case_name", "upper-case-name"},
		{"--déjà-slugué--", "dj-slugu"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.name); got != c.want {
			t.Errorf("Slugify(%q) = %q, attendu %q", c.name, got, c.want)
		}
	}
}

func TestUnslugify(t *testing.T) {
	if got := Unslugify("saree-covers"); got != "Saree Covers" {
		t.Errorf("Unslugify = %q", got)
	}
	if got := Unslugify("a"); got != "A" {
		t.Errorf("Unslugify = %q", got)
	}
}
