package swapi

import "strings"

// Character is a person record from /people/.
type Character struct {
	Name      string   `json:"name"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	HairColor string   `json:"hair_color"`
	SkinColor string   `json:"skin_color"`
	EyeColor  string   `json:"eye_color"`
	BirthYear string   `json:"birth_year"`
	Gender    string   `json:"gender"`
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Vehicles  []string `json:"vehicles"`
	Starships []string `json:"starships"`
	Created   string   `json:"created"`
	Edited    string   `json:"edited"`
	URL       string   `json:"url"`
}

// ID returns the character's identifier.
func (c Character) ID() string {
	return ID(c.URL)
}

// Film is a film record.
type Film struct {
	Title        string   `json:"title"`
	EpisodeID    int      `json:"episode_id"`
	OpeningCrawl string   `json:"opening_crawl"`
	Director     string   `json:"director"`
	Producer     string   `json:"producer"`
	ReleaseDate  string   `json:"release_date"`
	Characters   []string `json:"characters"`
	URL          string   `json:"url"`
}

// Planet is a planet record, used as a character's homeworld.
type Planet struct {
	Name           string `json:"name"`
	RotationPeriod string `json:"rotation_period"`
	OrbitalPeriod  string `json:"orbital_period"`
	Diameter       string `json:"diameter"`
	Climate        string `json:"climate"`
	Gravity        string `json:"gravity"`
	Terrain        string `json:"terrain"`
	Population     string `json:"population"`
	URL            string `json:"url"`
}

// Species is a species record.
type Species struct {
	Name            string `json:"name"`
	Classification  string `json:"classification"`
	Designation     string `json:"designation"`
	AverageHeight   string `json:"average_height"`
	AverageLifespan string `json:"average_lifespan"`
	Language        string `json:"language"`
	URL             string `json:"url"`
}

// Page is one page of a paginated collection. Next and Previous are empty
// when the service reports null.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool {
	return strings.TrimSpace(p.Next) != ""
}

// HasPrevious reports whether a preceding page exists.
func (p Page[T]) HasPrevious() bool {
	return strings.TrimSpace(p.Previous) != ""
}

// Known filters the service's sentinel values. Blank, "unknown" and "n/a"
// (in any case, ignoring surrounding space) are reported as absent.
func Known(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "", "unknown", "n/a":
		return "", false
	}
	return trimmed, true
}
