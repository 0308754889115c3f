package services

import "testing"

func TestNormalizeStudentID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cs21b001", "CS21B001"},
		{"  CS21B001  ", "CS21B001"},
		{"cs21b001\n", "CS21B001"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeStudentID(tt.in); got != tt.want {
			t.Errorf("NormalizeStudentID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
