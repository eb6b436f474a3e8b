package naming

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Class
	}{
		{"creditScore", Input},
		{"credit_score", Computed},
		{"MAX_SCORE", Constant},
		{"x", Input},
		{"a1b2", Input},
		{"", None},
		{"_leading", None},
	}
	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsWritable(t *testing.T) {
	if !IsWritable("approval_tier") {
		t.Errorf("expected computed name to be writable")
	}
	if IsWritable("creditScore") {
		t.Errorf("expected input name to be read-only")
	}
	if IsWritable("MAX_SCORE") {
		t.Errorf("expected constant to be read-only")
	}
}

func TestClassString(t *testing.T) {
	for c, want := range map[Class]string{
		Input: "input", Computed: "computed", Constant: "constant", None: "none",
	} {
		if got := c.String(); got != want {
			t.Errorf("Class(%d).String() = %q, want %q", c, got, want)
		}
	}
}
