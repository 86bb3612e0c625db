package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cwbudde/saisearch/internal/atmos"
	"github.com/cwbudde/saisearch/internal/search"
)

const solutionFormat = "Latitude = %.2f, Longitude = %.2f, Altitude = %.2f, Injection Rate = %.2f Tg/year, Cumulative Cooling = %.2f°C, Cumulative Ozone Impact = %.2f%%\n"

func formatCandidate(c search.Candidate) string {
	return fmt.Sprintf(solutionFormat,
		float64(c.Latitude), float64(c.Longitude), float64(c.Altitude),
		c.InjectionRate, c.CumulativeCooling, c.CumulativeOzoneImpact)
}

// writeReport prints the valid solutions followed by the best one.
// maxPrint limits the listed solutions; 0 lists all of them.
func writeReport(w io.Writer, res *search.Result, refined *search.Candidate, refineRan bool, maxPrint int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "All valid solutions:")
	for i, c := range res.Solutions {
		if maxPrint > 0 && i >= maxPrint {
			fmt.Fprintf(bw, "... %d more\n", len(res.Solutions)-maxPrint)
			break
		}
		bw.WriteString(formatCandidate(c))
	}

	if res.Best != nil {
		fmt.Fprintln(bw, "\nBest Solution:")
		fmt.Fprintf(bw, "\nBase Temperature = %.1f\n", atmos.BaseTemperature)
		bw.WriteString(formatCandidate(*res.Best))
	} else {
		fmt.Fprintln(bw, "No valid solution found.")
	}

	if refineRan {
		if refined != nil {
			fmt.Fprintln(bw, "\nRefined Solution:")
			bw.WriteString(formatCandidate(*refined))
		} else {
			fmt.Fprintln(bw, "\nRefinement found no valid solution.")
		}
	}

	return bw.Flush()
}
