package customer

import "testing"

func TestCriteriaMatch(t *testing.T) {
	joao := Customer{ID: "1", Name: "João", NationalID: "12345678912"}

	cases := []struct {
		name string
		q    Criteria
		want bool
	}{
		{"id", Criteria{ID: "1"}, true},
		{"id wins over name", Criteria{ID: "2", Name: "João"}, false},
		{"name ignores case", Criteria{Name: "JOÃO"}, true},
		{"name wins over national id", Criteria{Name: "Maria", NationalID: "12345678912"}, false},
		{"national id", Criteria{NationalID: "12345678912"}, true},
		{"empty", Criteria{}, false},
	}

	for _, tc := range cases {
		if got := tc.q.Match(joao); got != tc.want {
			t.Errorf("%s: Match() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestApplyKeepsOrder(t *testing.T) {
	items := []Customer{
		{ID: "b", Name: "Ana"},
		{ID: "a", Name: "ana"},
		{ID: "c", Name: "Bia"},
	}

	got := Apply(Criteria{Name: "ANA"}, items)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestApplyEmptyCriteria(t *testing.T) {
	got := Apply(Criteria{}, Seed())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
