package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() = %v, want 3 themes", names)
	}
	for _, name := range names {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
}

func TestNextThemeCycles(t *testing.T) {
	if got := NextTheme("Holonet"); got != "Dracula" {
		t.Fatalf("NextTheme(Holonet) = %q, want Dracula", got)
	}
	if got := NextTheme("Slate"); got != "Holonet" {
		t.Fatalf("NextTheme(Slate) = %q, want Holonet", got)
	}
	if got := NextTheme("missing"); got != "Holonet" {
		t.Fatalf("NextTheme(missing) = %q, want Holonet", got)
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme("Solarized").Name; got != "Holonet" {
		t.Fatalf("GetTheme(unknown) = %q, want Holonet", got)
	}
}

func TestLevelStyleDistinguishesSeverity(t *testing.T) {
	th := GetTheme("Dracula")
	s := th.Styles()
	if got := s.LevelStyle("ERROR").GetForeground(); got != s.DangerText.GetForeground() {
		t.Fatalf("ERROR foreground = %v", got)
	}
	if got := s.LevelStyle("WARN").GetForeground(); got != s.WarningText.GetForeground() {
		t.Fatalf("WARN foreground = %v", got)
	}
	if got := s.LevelStyle("INFO").GetForeground(); got != s.InfoText.GetForeground() {
		t.Fatalf("INFO foreground = %v", got)
	}
}
