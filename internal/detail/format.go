package detail

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/five82/holonet/internal/swapi"
)

// CrawlPreviewLen is the rune budget for a film's opening crawl preview.
const CrawlPreviewLen = 220

// Attr is one label/value row. Absent values never produce an Attr.
type Attr struct {
	Label string
	Value string
}

var printer = message.NewPrinter(language.English)

type attrs []Attr

func (a *attrs) add(label, raw string, format func(string) string) {
	v, ok := swapi.Known(raw)
	if !ok {
		return
	}
	if format != nil {
		v = format(v)
	}
	*a = append(*a, Attr{Label: label, Value: v})
}

func suffix(unit string) func(string) string {
	return func(v string) string { return v + " " + unit }
}

// numericSuffix appends unit only to numeric values, so "indefinite"
// lifespans stay readable.
func numericSuffix(unit string) func(string) string {
	return func(v string) string {
		if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err != nil {
			return v
		}
		return v + " " + unit
	}
}

// grouped renders an integer with thousands separators, leaving
// non-numeric values untouched.
func grouped(v string) string {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return v
	}
	return printer.Sprintf("%d", n)
}

// CharacterAttrs returns the physical attributes of c.
func CharacterAttrs(c swapi.Character) []Attr {
	var out attrs
	out.add("Height", c.Height, suffix("cm"))
	out.add("Mass", c.Mass, suffix("kg"))
	out.add("Hair color", c.HairColor, nil)
	out.add("Skin color", c.SkinColor, nil)
	out.add("Eye color", c.EyeColor, nil)
	out.add("Birth year", c.BirthYear, nil)
	out.add("Gender", c.Gender, nil)
	return out
}

// PlanetAttrs returns the homeworld attributes of p.
func PlanetAttrs(p swapi.Planet) []Attr {
	var out attrs
	out.add("Name", p.Name, nil)
	out.add("Climate", p.Climate, nil)
	out.add("Terrain", p.Terrain, nil)
	out.add("Gravity", p.Gravity, nil)
	out.add("Population", p.Population, grouped)
	out.add("Diameter", p.Diameter, func(v string) string { return grouped(v) + " km" })
	out.add("Day length", p.RotationPeriod, numericSuffix("hrs"))
	out.add("Year length", p.OrbitalPeriod, numericSuffix("days"))
	return out
}

// SpeciesAttrs returns the attributes of s.
func SpeciesAttrs(s swapi.Species) []Attr {
	var out attrs
	out.add("Name", s.Name, nil)
	out.add("Classification", s.Classification, nil)
	out.add("Designation", s.Designation, nil)
	out.add("Language", s.Language, nil)
	out.add("Avg. lifespan", s.AverageLifespan, numericSuffix("yrs"))
	out.add("Avg. height", s.AverageHeight, numericSuffix("cm"))
	return out
}

// Badges returns the short tags shown next to a character in lists:
// gender, birth year and height when known.
func Badges(c swapi.Character) []string {
	var out []string
	if v, ok := swapi.Known(c.Gender); ok {
		out = append(out, v)
	}
	if v, ok := swapi.Known(c.BirthYear); ok {
		out = append(out, v)
	}
	if v, ok := swapi.Known(c.Height); ok {
		out = append(out, v+" cm")
	}
	return out
}

// CrawlPreview flattens line breaks in an opening crawl and cuts it to
// CrawlPreviewLen runes, ending with an ellipsis when cut.
func CrawlPreview(crawl string) string {
	flat := strings.Join(strings.Fields(strings.ReplaceAll(crawl, "\r\n", " ")), " ")
	if utf8.RuneCountInString(flat) <= CrawlPreviewLen {
		return flat
	}
	runes := []rune(flat)
	return strings.TrimRight(string(runes[:CrawlPreviewLen]), " ") + "…"
}

// FilmByline renders "Directed by X • date", skipping absent parts.
func FilmByline(f swapi.Film) string {
	var parts []string
	if d, ok := swapi.Known(f.Director); ok {
		parts = append(parts, "Directed by "+d)
	}
	if r, ok := swapi.Known(f.ReleaseDate); ok {
		parts = append(parts, r)
	}
	return strings.Join(parts, " • ")
}
