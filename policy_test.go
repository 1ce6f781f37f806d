package cfr

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteStrategies(t *testing.T) {
	s := New[mpState, byte](matchingPennies{}, Params{})
	s.RunIteration()

	var buf bytes.Buffer
	if err := s.WriteStrategies(&buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Average strategy by information set:\n") {
		t.Errorf("missing header:\n%s", out)
	}

	// Keys come out in sorted order with one labeled row per action.
	i1 := strings.Index(out, "InfoSet: 1:\n")
	i2 := strings.Index(out, "InfoSet: 2:\n")
	if i1 < 0 || i2 < 0 || i2 < i1 {
		t.Errorf("infosets missing or out of order:\n%s", out)
	}

	if !strings.Contains(out, "  H : 0.5000\n") || !strings.Contains(out, "  T : 0.5000\n") {
		t.Errorf("missing action rows:\n%s", out)
	}
}
