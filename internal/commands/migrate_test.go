package commands

import "testing"

func TestSchemeIsOrdered(t *testing.T) {
	for i, s := range scheme {
		if s.Index != i+1 {
			t.Fatalf("step %d has index %d", i, s.Index)
		}
		if (s.Query == "") == (s.Seed == nil) {
			t.Fatalf("step %d must run either a query or a seed", s.Index)
		}
		if s.Description == "" {
			t.Fatalf("step %d has no description", s.Index)
		}
	}
}
