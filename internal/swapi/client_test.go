package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("default = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("swapi.dev/api")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}

	if _, err := parseBaseURL("ftp://example.com"); err == nil {
		t.Fatalf("expected error for ftp scheme")
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotQueries []url.Values
	var gotAccept, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/people/":
			gotQueries = append(gotQueries, r.URL.Query())
			_ = json.NewEncoder(w).Encode(Page[Character]{
				Count:   87,
				Next:    "https://swapi.dev/api/people/?page=3",
				Results: []Character{{Name: "Luke Skywalker", URL: "https://swapi.dev/api/people/1/"}},
			})
		case "/api/people/4/":
			_ = json.NewEncoder(w).Encode(Character{Name: "Darth Vader", URL: "https://swapi.dev/api/people/4/"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", WithRateLimit(0, 0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.FetchCharacters(ctx, 2)
	if err != nil {
		t.Fatalf("FetchCharacters returned error: %v", err)
	}
	if page.Count != 87 || len(page.Results) != 1 || !page.HasNext() || page.HasPrevious() {
		t.Fatalf("FetchCharacters payload = %#v", page)
	}
	if got := page.Results[0].ID(); got != "1" {
		t.Fatalf("ID = %q, want 1", got)
	}

	if _, err := c.SearchCharacters(ctx, "  sky "); err != nil {
		t.Fatalf("SearchCharacters returned error: %v", err)
	}
	if _, err := c.SearchCharactersPage(ctx, "a", 3); err != nil {
		t.Fatalf("SearchCharactersPage returned error: %v", err)
	}

	vader, err := c.FetchCharacter(ctx, "4")
	if err != nil {
		t.Fatalf("FetchCharacter returned error: %v", err)
	}
	if vader.Name != "Darth Vader" {
		t.Fatalf("FetchCharacter name = %q", vader.Name)
	}

	if len(gotQueries) != 3 {
		t.Fatalf("people requests = %d, want 3", len(gotQueries))
	}
	if gotQueries[0].Get("page") != "2" {
		t.Fatalf("page query = %v", gotQueries[0])
	}
	if gotQueries[1].Get("search") != "sky" || gotQueries[1].Has("page") {
		t.Fatalf("search query = %v", gotQueries[1])
	}
	if gotQueries[2].Get("search") != "a" || gotQueries[2].Get("page") != "3" {
		t.Fatalf("search page query = %v", gotQueries[2])
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q", gotAccept)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}

	if _, err := c.FetchCharacter(ctx, " "); err == nil {
		t.Fatalf("expected error for blank id")
	}
}

func TestClient_RewritesInsecureLinks(t *testing.T) {
	t.Parallel()

	var hits []string
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		switch r.URL.Path {
		case "/api/planets/1/":
			_ = json.NewEncoder(w).Encode(Planet{Name: "Tatooine", Population: "200000"})
		case "/api/films/1/":
			_ = json.NewEncoder(w).Encode(Film{Title: "A New Hope", EpisodeID: 4})
		case "/api/species/2/":
			_ = json.NewEncoder(w).Encode(Species{Name: "Droid"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", WithHTTPClient(server.Client()), WithRateLimit(0, 0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	insecure := "http://" + server.Listener.Addr().String() + "/api"
	ctx := context.Background()

	planet, err := c.FetchPlanet(ctx, insecure+"/planets/1/")
	if err != nil {
		t.Fatalf("FetchPlanet returned error: %v", err)
	}
	if planet.Name != "Tatooine" {
		t.Fatalf("planet = %#v", planet)
	}
	film, err := c.FetchFilm(ctx, insecure+"/films/1/")
	if err != nil {
		t.Fatalf("FetchFilm returned error: %v", err)
	}
	if film.EpisodeID != 4 {
		t.Fatalf("film = %#v", film)
	}
	if _, err := c.FetchSpecies(ctx, insecure+"/species/2/"); err != nil {
		t.Fatalf("FetchSpecies returned error: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("hits = %v, want 3 requests over https", hits)
	}

	if _, err := c.FetchFilm(ctx, "not a url"); err == nil {
		t.Fatalf("expected error for relative url")
	}
}

func TestClient_ErrorClasses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/people/404/":
			http.NotFound(w, r)
		case "/api/people/500/":
			w.WriteHeader(http.StatusInternalServerError)
		case "/api/people/bad/":
			_, _ = w.Write([]byte("{not json"))
		case "/api/people/slow/":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", WithTimeout(50*time.Millisecond), WithRateLimit(0, 0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.FetchCharacter(ctx, "404")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("404 err = %v, want HTTPError 404", err)
	}
	if Kind(err) != "http" {
		t.Fatalf("Kind(404) = %q, want http", Kind(err))
	}

	_, err = c.FetchCharacter(ctx, "500")
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("500 err = %v, want HTTPError 500", err)
	}

	_, err = c.FetchCharacter(ctx, "bad")
	if err == nil || !strings.HasPrefix(err.Error(), "decode response") {
		t.Fatalf("bad json err = %v, want decode error", err)
	}
	if Kind(err) != "decode" {
		t.Fatalf("Kind(decode) = %q", Kind(err))
	}

	_, err = c.FetchCharacter(ctx, "slow")
	var netErr *NetworkError
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("slow err = %v, want timeout NetworkError", err)
	}
	if Kind(err) != "timeout" {
		t.Fatalf("Kind(timeout) = %q", Kind(err))
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.FetchCharacters(cancelled, 1)
	if !errors.As(err, &netErr) {
		t.Fatalf("cancelled err = %v, want NetworkError", err)
	}
	if Kind(err) != "canceled" {
		t.Fatalf("Kind(cancelled) = %q", Kind(err))
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithRateLimit(0, 0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchCharacters(context.Background(), 1)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
	if Kind(err) != "network" {
		t.Fatalf("Kind = %q, want network", Kind(err))
	}
}
