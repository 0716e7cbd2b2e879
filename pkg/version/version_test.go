package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "4.8", false},
		{"three segments", "12.0.1", false},
		{"single segment", "9", false},
		{"leading space", " 5.0", false},
		{"empty", "", true},
		{"non-numeric", "4.x", true},
		{"negative", "-1.0", true},
		{"trailing dot", "4.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"4.8", "4.8", 0},
		{"4.8", "4.8.0", 0},
		{"4.8", "4.9", -1},
		{"5", "4.9.4", 1},
		{"12.0.1", "12.0", 1},
		{"10", "9", 1},
	}

	for _, tt := range tests {
		got := MustParse(tt.a).Compare(MustParse(tt.b))
		if got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRangeContains(t *testing.T) {
	bounded, err := NewRange("6.0", "9.0")
	if err != nil {
		t.Fatalf("NewRange: %v", err)
	}
	open, err := NewRange("9.0", "")
	if err != nil {
		t.Fatalf("NewRange: %v", err)
	}

	tests := []struct {
		name string
		r    Range
		v    string
		want bool
	}{
		{"below min", bounded, "5.9", false},
		{"at min", bounded, "6.0", true},
		{"inside", bounded, "8.5", true},
		{"at max is excluded", bounded, "9.0", false},
		{"above max", bounded, "10.0", false},
		{"open at min", open, "9.0", true},
		{"open far above", open, "99.1", true},
		{"open below", open, "8.9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(MustParse(tt.v)); got != tt.want {
				t.Errorf("%s.Contains(%s) = %v, want %v", tt.r, tt.v, got, tt.want)
			}
		})
	}
}

func TestRangeValidation(t *testing.T) {
	if _, err := NewRange("9.0", "6.0"); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := NewRange("9.0", "9.0"); err == nil {
		t.Error("expected error for empty range")
	}
	if _, err := NewRange("", ""); err == nil {
		t.Error("expected error for missing minimum")
	}
}
