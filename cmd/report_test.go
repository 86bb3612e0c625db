package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/saisearch/internal/search"
)

func TestFormatCandidate(t *testing.T) {
	c := search.Candidate{
		Latitude:              -60,
		Longitude:             -180,
		Altitude:              15,
		InjectionRate:         2.1000000000000005,
		CumulativeCooling:     0.5095383228245391,
		CumulativeOzoneImpact: 0.2547691614122696,
	}

	want := "Latitude = -60.00, Longitude = -180.00, Altitude = 15.00, Injection Rate = 2.10 Tg/year, Cumulative Cooling = 0.51°C, Cumulative Ozone Impact = 0.25%\n"
	if got := formatCandidate(c); got != want {
		t.Errorf("formatCandidate =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteReport_WithBest(t *testing.T) {
	sols := []search.Candidate{
		{Latitude: -60, Longitude: -180, Altitude: 15, InjectionRate: 2.1, CumulativeCooling: 0.51, CumulativeOzoneImpact: 0.25},
		{Latitude: 0, Longitude: 0, Altitude: 20, InjectionRate: 5, CumulativeCooling: 2.89, CumulativeOzoneImpact: 1.44},
	}
	best := sols[0]
	res := &search.Result{Solutions: sols, Best: &best}

	var buf bytes.Buffer
	if err := writeReport(&buf, res, nil, false, 0); err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"All valid solutions:\n",
		"Injection Rate = 5.00 Tg/year",
		"\nBest Solution:\n",
		"\nBase Temperature = 15.2\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "No valid solution") {
		t.Error("report should not claim no solution")
	}
	if strings.Contains(out, "Refine") {
		t.Error("report should not mention refinement when it did not run")
	}
}

func TestWriteReport_NoSolution(t *testing.T) {
	res := &search.Result{Solutions: []search.Candidate{}}

	var buf bytes.Buffer
	if err := writeReport(&buf, res, nil, true, 0); err != nil {
		t.Fatal(err)
	}

	want := "All valid solutions:\nNo valid solution found.\n\nRefinement found no valid solution.\n"
	if got := buf.String(); got != want {
		t.Errorf("report =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteReport_MaxPrint(t *testing.T) {
	sols := make([]search.Candidate, 5)
	best := sols[0]
	res := &search.Result{Solutions: sols, Best: &best}
	refined := search.Candidate{InjectionRate: 2.08}

	var buf bytes.Buffer
	if err := writeReport(&buf, res, &refined, true, 2); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if n := strings.Count(out, "Latitude ="); n != 4 {
		t.Errorf("expected 2 listed + best + refined = 4 lines, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "... 3 more\n") {
		t.Errorf("missing truncation note:\n%s", out)
	}
	if !strings.Contains(out, "Refined Solution:\nLatitude = 0.00, Longitude = 0.00, Altitude = 0.00, Injection Rate = 2.08") {
		t.Errorf("missing refined solution:\n%s", out)
	}
}
