package search

import (
	"reflect"
	"testing"

	"github.com/desertthunder/userdeck/internal/models"
)

var people = []models.Record{
	{ID: "1", Name: "Al", Email: "a@b.com"},
	{ID: "2", Name: "Bo Diddley", Email: "bo@music.org"},
	{ID: "3", Name: "Cy", Email: "CY@B.COM"},
}

func ids(records []models.Record) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tc := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns everything in order", query: "", want: []string{"1", "2", "3"}},
		{name: "matches email substring", query: "b.com", want: []string{"1", "3"}},
		{name: "matches name ignoring case", query: "DIDD", want: []string{"2"}},
		{name: "matches email ignoring case", query: "cy@b", want: []string{"3"}},
		{name: "no match", query: "zz", want: []string{}},
		{name: "whitespace is significant", query: " al", want: []string{}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(people, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterMatchesCaseOnly(t *testing.T) {
	records := []models.Record{
		{ID: "1", Name: "Straße", Email: "s@x.de"},
		{ID: "2", Name: "ﬁsh", Email: "f@x.de"},
		{ID: "3", Name: "ÅSA", Email: "a@x.de"},
	}

	tc := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "ss does not match sharp s", query: "ss", want: []string{}},
		{name: "fi does not match ligature", query: "fi", want: []string{}},
		{name: "sharp s matches itself", query: "STRAß", want: []string{"1"}},
		{name: "non-ascii upper matches lower", query: "åsa", want: []string{"3"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(records, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	for _, q := range []string{"", "b", "o", "zz", "@"} {
		once := Filter(people, q)
		twice := Filter(once, q)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Filter not idempotent for %q: %v vs %v", q, once, twice)
		}
	}
}

func TestFilterDoesNotAlias(t *testing.T) {
	records := []models.Record{{ID: "1", Name: "Al", Email: "a@b.com"}}
	visible := Filter(records, "")
	visible[0].Name = "changed"
	if records[0].Name != "Al" {
		t.Fatal("Filter result should not alias the input")
	}
}

func TestFilterEmptyCollection(t *testing.T) {
	if got := Filter(nil, "x"); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := Filter(nil, ""); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}
