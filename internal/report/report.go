package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/hamed0406/urlpinger/internal/domain"
)

// Status renders the status column. Failures keep the sentinel code and
// name their cause.
func Status(r domain.PingResult) string {
	if r.Reachable() {
		return fmt.Sprintf("%d", r.StatusCode)
	}
	return fmt.Sprintf("%d (%s)", r.StatusCode, r.Cause)
}

// Write prints one aligned line per result followed by a summary line.
func Write(w io.Writer, mode domain.Strategy, results []domain.PingResult, took time.Duration) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "URL\tSTATUS\tDURATION")
	failed := 0
	for _, r := range results {
		if !r.Reachable() {
			failed++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", displayURL(r.URL), Status(r), r.Duration.Round(time.Microsecond))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d pinged, %d unreachable, mode=%s, total=%s\n",
		len(results), failed, mode, took.Round(time.Millisecond))
	return err
}

func displayURL(u string) string {
	if u == "" {
		return `""`
	}
	return u
}
