package cmd

import (
	"testing"
	"time"

	"github.com/bvggrabber/bvg-cli/internal/format"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

func mustDeparture(t *testing.T, end, line string) model.Departure {
	t.Helper()
	now := time.Date(2013, 1, 2, 12, 0, 0, 0, time.UTC)
	d, err := model.NewDeparture("Hermannplatz", end, now.Add(5*time.Minute), line, model.WithReference(now))
	if err != nil {
		t.Fatalf("NewDeparture: %v", err)
	}
	return d
}

func TestExtractLines(t *testing.T) {
	deps := []model.Departure{
		mustDeparture(t, "Hertzallee", "Bus  M29"),
		mustDeparture(t, "Roseneck", "Bus  M29"),
		mustDeparture(t, "Hertzallee", "Bus  M29"), // duplicate dest
		mustDeparture(t, "Rathaus Spandau", "U7"),
		mustDeparture(t, "Rudow", "U7"),
		mustDeparture(t, "Westkreuz", "S5"),
	}

	lines := extractLines(deps)

	if len(lines) != 3 {
		t.Fatalf("expected 3 unique lines, got %d", len(lines))
	}

	assertLine(t, lines[0], "M29", "BUS", []string{"Hertzallee", "Roseneck"})
	assertLine(t, lines[1], "U7", "U", []string{"Rathaus Spandau", "Rudow"})
	assertLine(t, lines[2], "S5", "S", []string{"Westkreuz"})
}

func TestExtractLines_Empty(t *testing.T) {
	lines := extractLines(nil)
	if len(lines) != 0 {
		t.Errorf("expected 0 lines from nil input, got %d", len(lines))
	}

	lines = extractLines([]model.Departure{})
	if len(lines) != 0 {
		t.Errorf("expected 0 lines from empty input, got %d", len(lines))
	}
}

func assertLine(t *testing.T, line format.StopInfoLine, designation, mode string, dests []string) {
	t.Helper()
	if line.Designation != designation {
		t.Errorf("expected designation %q, got %q", designation, line.Designation)
	}
	if line.TransportMode != mode {
		t.Errorf("expected mode %q, got %q", mode, line.TransportMode)
	}
	if len(line.Destinations) != len(dests) {
		t.Fatalf("expected destinations %v for line %s, got %v", dests, designation, line.Destinations)
	}
	for i := range dests {
		if line.Destinations[i] != dests[i] {
			t.Errorf("expected destinations %v for line %s, got %v", dests, designation, line.Destinations)
			break
		}
	}
}
