package ui

import "testing"

func TestParseRoute(t *testing.T) {
	tests := []struct {
		raw  string
		want Route
	}{
		{"", ListRoute(1)},
		{"/", ListRoute(1)},
		{"/?page=3", ListRoute(3)},
		{"/?page=0", ListRoute(1)},
		{"/?page=abc", ListRoute(1)},
		{"/search?q=luke", SearchRoute("luke")},
		{"/search?q=darth+vader&page=2", Route{Kind: RouteSearch, Page: 2, Query: "darth vader"}},
		{"/search", Route{Kind: RouteSearch, Page: 1}},
		{"/character/1", CharacterRoute("1")},
		{"/character/42/", CharacterRoute("42")},
	}

	for _, tt := range tests {
		got, err := ParseRoute(tt.raw)
		if err != nil {
			t.Fatalf("ParseRoute(%q) error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseRoute(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestParseRoute_Unknown(t *testing.T) {
	for _, raw := range []string{"/planets/1", "/character", "/character/1/films"} {
		if _, err := ParseRoute(raw); err == nil {
			t.Fatalf("ParseRoute(%q) expected error", raw)
		}
	}
}

func TestRouteStringRoundTrip(t *testing.T) {
	routes := []Route{
		ListRoute(1),
		ListRoute(9),
		SearchRoute("luke"),
		SearchRoute("r2 & c-3po"),
		{Kind: RouteSearch, Page: 3, Query: "skywalker"},
		CharacterRoute("10"),
	}
	for _, r := range routes {
		got, err := ParseRoute(r.String())
		if err != nil {
			t.Fatalf("ParseRoute(%q) error: %v", r.String(), err)
		}
		if got != r {
			t.Fatalf("round trip %q = %#v, want %#v", r.String(), got, r)
		}
	}

	if got := ListRoute(1).String(); got != "/" {
		t.Fatalf("ListRoute(1).String() = %q, want /", got)
	}
	if got := SearchRoute("luke").String(); got != "/search?q=luke" {
		t.Fatalf("SearchRoute.String() = %q", got)
	}
}

func TestBackStack(t *testing.T) {
	var b backStack
	if _, ok := b.pop(); ok {
		t.Fatalf("pop on empty stack succeeded")
	}
	for i := 1; i <= backStackLimit+5; i++ {
		b.push(ListRoute(i))
	}
	if b.len() != backStackLimit {
		t.Fatalf("len = %d, want %d", b.len(), backStackLimit)
	}
	got, ok := b.pop()
	if !ok || got != ListRoute(backStackLimit+5) {
		t.Fatalf("pop = %#v, %v", got, ok)
	}
}
