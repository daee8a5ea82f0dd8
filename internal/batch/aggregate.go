package batch

import (
	"sort"

	"github.com/varoOP/kinodays/internal/domain"
)

// SortByAnniversary orders records ascending by next anniversary date.
// The sort is stable, so records sharing a date keep their input order.
// Dates are ISO strings, so lexical comparison is chronological.
func SortByAnniversary(records []domain.Anniversary) []domain.Anniversary {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].NextAnniversary < records[j].NextAnniversary
	})
	return records
}
