package content

import "testing"

func TestSlugify(t *testing.T) {
	testcases := []struct {
		title    string
		expected string
	}{
		{"Jalan Desa & Jembatan!", "jalan-desa-jembatan"},
		{"Pembangunan   Balai   Desa", "pembangunan-balai-desa"},
		{"  Gotong Royong 2024  ", "gotong-royong-2024"},
		{"UPPER case Title", "upper-case-title"},
		{"sudah-ber-slug", "sudah-ber-slug"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range testcases {
		result := Slugify(tc.title)
		if result != tc.expected {
			t.Errorf("Slugify(%q): expected %q, got %q", tc.title, tc.expected, result)
		}
	}
}

func TestTotalPages(t *testing.T) {
	testcases := []struct {
		total    int
		limit    int
		expected int
	}{
		{25, 10, 3},
		{30, 10, 3},
		{1, 10, 1},
		{0, 10, 1},
		{0, 0, 1},
		{5, -1, 1},
	}

	for _, tc := range testcases {
		result := TotalPages(tc.total, tc.limit)
		if result != tc.expected {
			t.Errorf("TotalPages(%d, %d): expected %d, got %d", tc.total, tc.limit, tc.expected, result)
		}
	}
}
