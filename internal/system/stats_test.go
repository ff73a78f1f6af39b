package system

import (
	"strings"
	"testing"
	"time"
)

func TestCollect(t *testing.T) {
	r, err := Collect("tree", 1500*time.Millisecond, 4)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if r.Command != "tree" || r.Curves != 4 {
		t.Errorf("unexpected report header: %+v", r)
	}

	out := r.String()
	for _, want := range []string{"[PERFORMANCE REPORT]", "Command: tree", "Total Time: 1.500s", "Curves: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestMib(t *testing.T) {
	if got := mib(3 << 20); got != 3 {
		t.Errorf("mib(3<<20) = %v, want 3", got)
	}
}

func TestRaiseFileLimit(t *testing.T) {
	got, err := RaiseFileLimit(64)
	if err != nil {
		t.Fatalf("RaiseFileLimit failed: %v", err)
	}
	if got < 1 {
		t.Errorf("RaiseFileLimit returned %d", got)
	}
}
