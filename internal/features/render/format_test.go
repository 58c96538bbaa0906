package render

import "testing"

func TestFormatStatValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"small number", 999.0, "999"},
		{"thousands", 1500.0, "1.5K"},
		{"exact thousand", 1000.0, "1.0K"},
		{"millions", 2500000.0, "2.5M"},
		{"exact million", 1000000.0, "1.0M"},
		{"int input", 1234, "1.2K"},
		{"string passes through", "n/a", "n/a"},
		{"nil", nil, "0"},
		{"zero", 0.0, "0"},
		{"negative thousands", -1500.0, "-1.5K"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatStatValue(tt.in); got != tt.want {
				t.Errorf("formatStatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatEventDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15", "Jan 15, 2024"},
		{"2024-03-05T10:30:00Z", "Mar 5, 2024"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatEventDate(tt.in); got != tt.want {
			t.Errorf("formatEventDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
