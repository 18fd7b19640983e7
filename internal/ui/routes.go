package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// RouteKind identifies which screen a route shows.
type RouteKind int

const (
	RouteList RouteKind = iota
	RouteSearch
	RouteCharacter
)

// Route is a parsed location. Page applies to list and search routes,
// Query to search routes and ID to character routes.
type Route struct {
	Kind  RouteKind
	Page  int
	Query string
	ID    string
}

// ListRoute returns the character list at the given page.
func ListRoute(page int) Route {
	return Route{Kind: RouteList, Page: clampPage(page)}
}

// SearchRoute returns the first page of results for query.
func SearchRoute(query string) Route {
	return Route{Kind: RouteSearch, Page: 1, Query: query}
}

// CharacterRoute returns the detail screen for id.
func CharacterRoute(id string) Route {
	return Route{Kind: RouteCharacter, ID: id}
}

// ParseRoute parses "/", "/?page=N", "/search?q=term" and "/character/{id}".
// A missing or invalid page number means page 1.
func ParseRoute(raw string) (Route, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ListRoute(1), nil
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", raw, err)
	}

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	query := u.Query()
	page := parsePage(query.Get("page"))

	switch {
	case len(segments) == 0:
		return ListRoute(page), nil
	case len(segments) == 1 && segments[0] == "search":
		return Route{Kind: RouteSearch, Page: page, Query: query.Get("q")}, nil
	case len(segments) == 2 && segments[0] == "character":
		return CharacterRoute(segments[1]), nil
	}
	return Route{}, fmt.Errorf("unknown route %q", raw)
}

// String formats the route so that ParseRoute(r.String()) == r.
func (r Route) String() string {
	switch r.Kind {
	case RouteSearch:
		values := url.Values{}
		values.Set("q", r.Query)
		if r.Page > 1 {
			values.Set("page", strconv.Itoa(r.Page))
		}
		return "/search?" + values.Encode()
	case RouteCharacter:
		return "/character/" + url.PathEscape(r.ID)
	default:
		if r.Page > 1 {
			return "/?page=" + strconv.Itoa(r.Page)
		}
		return "/"
	}
}

// Title is the breadcrumb shown in the header.
func (r Route) Title() string {
	switch r.Kind {
	case RouteSearch:
		if strings.TrimSpace(r.Query) == "" {
			return "Search"
		}
		return fmt.Sprintf("Search: %s", r.Query)
	case RouteCharacter:
		return "Character #" + r.ID
	default:
		return "Characters"
	}
}

func parsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return clampPage(n)
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// backStack records visited routes for "Back".
type backStack struct {
	routes []Route
}

const backStackLimit = 50

func (b *backStack) push(r Route) {
	b.routes = append(b.routes, r)
	if len(b.routes) > backStackLimit {
		b.routes = b.routes[len(b.routes)-backStackLimit:]
	}
}

func (b *backStack) pop() (Route, bool) {
	if len(b.routes) == 0 {
		return Route{}, false
	}
	last := b.routes[len(b.routes)-1]
	b.routes = b.routes[:len(b.routes)-1]
	return last, true
}

func (b backStack) len() int { return len(b.routes) }
