// Package query implements the ten analytical operations over the catalog
// and their result rendering. Every operation is a pure read: filter, join,
// aggregate, sort, format, in that order. Malformed or miscounted arguments
// yield an empty result, never an error, and inactive accounts are treated as
// absent wherever account data is read.
package query

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"travelcat/internal/catalog"
)

// Engine executes queries against a built catalog. Safe for concurrent use
// once constructed: the catalog is read-only and each call collates through
// its own buffer.
type Engine struct {
	cat *catalog.Catalog
}

// New returns an engine over cat.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// collator returns the name-ordering collator. Collators carry internal
// buffers and are not safe to share across goroutines, so each execution
// builds its own.
func collator() *collate.Collator {
	return collate.New(language.AmericanEnglish)
}

// Execute runs query id with the given arguments and renders the result.
// Unknown ids and argument-count mismatches produce an empty string.
func (e *Engine) Execute(id int, labeled bool, args []string) string {
	var rows []Row
	switch id {
	case 1:
		rows = e.entitySummary(args)
	case 2:
		rows = e.accountItems(args)
	case 3:
		rows = e.hotelRating(args)
	case 4:
		rows = e.hotelReservations(args)
	case 5:
		rows = e.originFlights(args)
	case 6:
		rows = e.topAirportsByPassengers(args)
	case 7:
		rows = e.topAirportsByDelay(args)
	case 8:
		rows = e.hotelRevenue(args)
	case 9:
		rows = e.accountsByPrefix(args)
	case 10:
		rows = e.yearlyTotals(args)
	}
	return Render(rows, labeled)
}
