package builders

import "testing"

func TestParseThroughput(t *testing.T) {
	cases := []struct {
		in          string
		read, write int64
		ok          bool
	}{
		{"10/10", 10, 10, true},
		{"25/5", 25, 5, true},
		{" 25 / 5 ", 25, 5, true},
		{"", 0, 0, false},
		{"10", 0, 0, false},
		{"10/10/10", 0, 0, false},
		{"0/10", 0, 0, false},
		{"-1/10", 0, 0, false},
		{"a/b", 0, 0, false},
	}
	for _, tc := range cases {
		read, write, ok := parseThroughput(tc.in)
		if ok != tc.ok || read != tc.read || write != tc.write {
			t.Errorf("parseThroughput(%q) = %d/%d/%v, want %d/%d/%v",
				tc.in, read, write, ok, tc.read, tc.write, tc.ok)
		}
	}
}

func TestThroughputValidator(t *testing.T) {
	if err := throughputValidator(""); err != nil {
		t.Errorf("blank should be accepted (defaults apply): %v", err)
	}
	if err := throughputValidator("25/5"); err != nil {
		t.Errorf("valid pair rejected: %v", err)
	}
	if err := throughputValidator("banana"); err == nil {
		t.Error("garbage should be rejected")
	}
	if err := throughputValidator(42); err == nil {
		t.Error("non-string answers should be rejected")
	}
}
