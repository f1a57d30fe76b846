package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"listing-dedup/config"
	"listing-dedup/models"
)

const consoleTopN = 5

// ConsoleRenderer prints a colored run summary to a terminal.
type ConsoleRenderer struct {
	out     io.Writer
	profile *config.Profile
}

// NewConsoleRenderer creates a ConsoleRenderer writing to out.
func NewConsoleRenderer(out io.Writer, profile *config.Profile) *ConsoleRenderer {
	return &ConsoleRenderer{out: out, profile: profile}
}

// Print writes the summary of r.
func (c *ConsoleRenderer) Print(r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)
	w := c.out

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 LISTING DEDUP SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Files processed     : \033[1m%d\033[0m\n", len(r.Files))
	fmt.Fprintf(w, "  Rows ingested       : \033[1m%s\033[0m\n", FormatCount(r.Dedup.OriginalCount))
	fmt.Fprintf(w, "  After deduplication : \033[1m%s\033[0m\n", FormatCount(r.Dedup.FinalCount))
	fmt.Fprintf(w, "  Duplicates removed  : \033[1;31m%s\033[0m\n", FormatCount(r.Dedup.DuplicateCount))
	fmt.Fprintf(w, "  Unique locations    : \033[1m%d\033[0m\n", r.UniqueLocations)
	fmt.Fprintln(w)

	q := r.Quality
	fmt.Fprintf(w, "\033[1;33m  Data Quality\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if q.Total == 0 {
		fmt.Fprintf(w, "  No records\n")
	} else {
		fmt.Fprintf(w, "  With complex code    : %s (%.1f%%)\n", FormatCount(q.WithComplexCode), q.Percent(q.WithComplexCode))
		fmt.Fprintf(w, "  Without complex code : %s (%.1f%%)\n", FormatCount(q.WithoutComplexCode), q.Percent(q.WithoutComplexCode))
		fmt.Fprintf(w, "  With complex name    : %s (%.1f%%)\n", FormatCount(q.WithComplexName), q.Percent(q.WithComplexName))
		fmt.Fprintf(w, "  Without complex name : %s (%.1f%%)\n", FormatCount(q.WithoutComplexName), q.Percent(q.WithoutComplexName))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top %d by %s (%s matched, %d shown in report)\033[0m\n",
		consoleTopN, c.profile.SortField, FormatCount(r.Ranking.MatchCount), len(r.Ranking.Records))
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.Ranking.Records) == 0 {
		fmt.Fprintf(w, "  No listings above the threshold\n")
	} else {
		for i, rec := range r.Ranking.Records {
			if i == consoleTopN {
				break
			}
			name := truncate(models.Text(rec.Get(c.profile.ComplexNameField)), 38)
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%s\033[0m\n",
				i+1, name, FormatCount(models.Numeric(rec.Get(c.profile.SortField))))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Matches by Province\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	byProvince := countBy(r.Ranking.Records, c.profile.ProvinceField)
	if len(byProvince) == 0 {
		fmt.Fprintf(w, "  No location data\n")
	} else {
		for _, lc := range byProvince {
			bar := strings.Repeat("█", min(lc.count, 40))
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(lc.loc, 28), bar, lc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

type locCount struct {
	loc   string
	count int
}

// countBy groups records by the display value of field, largest group first.
func countBy(records []models.Record, field string) []locCount {
	counts := make(map[string]int)
	for _, rec := range records {
		v := rec.Get(field)
		if models.IsBlank(v) {
			continue
		}
		counts[models.Text(v)]++
	}

	locs := make([]locCount, 0, len(counts))
	for loc, cnt := range counts {
		locs = append(locs, locCount{loc, cnt})
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].count != locs[j].count {
			return locs[i].count > locs[j].count
		}
		return locs[i].loc < locs[j].loc
	})
	return locs
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
