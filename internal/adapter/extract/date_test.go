package extract

import "testing"

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"numeric slash", "Submit by 15/08/2024", "15/08/2024", true},
		{"numeric hyphen", "Opens 1-12-24", "1-12-24", true},
		{"month name", "Deadline: 5 Jan 2025", "5 Jan 2025", true},
		{"long month name", "Due 12 January 2025", "12 January 2025", true},
		{"no date", "No closing date announced", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.text)
			if ok != tt.ok {
				t.Fatalf("Date(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
