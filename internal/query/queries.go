package query

import (
	"sort"
	"strconv"
	"strings"

	"travelcat/internal/catalog"
	"travelcat/internal/dates"
)

// referenceYear anchors ages and the yearly breakdown's closing year.
const referenceYear = 2023

// entitySummary is query 1: resolve an id against accounts, then flights,
// then reservations, first match wins. Inactive accounts resolve to nothing.
func (e *Engine) entitySummary(args []string) []Row {
	if len(args) != 1 {
		return nil
	}
	id := args[0]

	if a, ok := e.cat.Account(id); ok {
		if !a.Active {
			return nil
		}
		spent := 0.0
		for _, rid := range e.cat.ReservationsOf(id) {
			if r, ok := e.cat.Reservation(rid); ok {
				spent += r.TotalPrice()
			}
		}
		return []Row{{
			{"name", a.Name},
			{"sex", a.Sex},
			{"age", strconv.Itoa(referenceYear - a.BirthDate.Year)},
			{"country_code", a.CountryCode},
			{"passport", a.Passport},
			{"number_of_flights", strconv.Itoa(len(e.cat.FlightsOf(id)))},
			{"number_of_reservations", strconv.Itoa(len(e.cat.ReservationsOf(id)))},
			{"total_spent", money(spent)},
		}}
	}

	if f, ok := e.cat.Flight(id); ok {
		delay := dates.DelaySeconds(f.ScheduledDeparture, f.ActualDeparture)
		return []Row{{
			{"airline", f.Airline},
			{"plane_model", f.PlaneModel},
			{"origin", f.Origin},
			{"destination", f.Destination},
			{"schedule_departure_date", f.ScheduledDeparture.String()},
			{"schedule_arrival_date", f.ScheduledArrival.String()},
			{"passengers", strconv.Itoa(e.cat.PassengerCount(id))},
			{"delay", strconv.FormatInt(delay, 10)},
		}}
	}

	if r, ok := e.cat.Reservation(id); ok {
		breakfast := "False"
		if r.Breakfast {
			breakfast = "True"
		}
		return []Row{{
			{"hotel_id", r.HotelID},
			{"hotel_name", r.HotelName},
			{"hotel_stars", strconv.Itoa(r.Stars)},
			{"begin_date", r.Begin.String()},
			{"end_date", r.End.String()},
			{"includes_breakfast", breakfast},
			{"nights", strconv.Itoa(r.Nights())},
			{"total_price", money(r.TotalPrice())},
		}}
	}
	return nil
}

// accountItem is one flight or reservation of an account, carrying its sort
// key date.
type accountItem struct {
	id   string
	date dates.Date
	kind string
}

// accountItems is query 2: an active account's flights and/or reservations,
// newest date first, ids ascending on ties. The kind column appears only in
// the unfiltered form.
func (e *Engine) accountItems(args []string) []Row {
	if len(args) < 1 || len(args) > 2 {
		return nil
	}
	a, ok := e.cat.Account(args[0])
	if !ok || !a.Active {
		return nil
	}
	withFlights, withReservations := true, true
	if len(args) == 2 {
		switch args[1] {
		case "flights":
			withReservations = false
		case "reservations":
			withFlights = false
		default:
			return nil
		}
	}

	var items []accountItem
	if withFlights {
		for _, fid := range e.cat.FlightsOf(args[0]) {
			if f, ok := e.cat.Flight(fid); ok {
				dep := f.ScheduledDeparture
				day := dates.Date{Year: dep.Year, Month: dep.Month, Day: dep.Day}
				items = append(items, accountItem{fid, day, "flight"})
			}
		}
	}
	if withReservations {
		for _, rid := range e.cat.ReservationsOf(args[0]) {
			if r, ok := e.cat.Reservation(rid); ok {
				items = append(items, accountItem{rid, r.Begin, "reservation"})
			}
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if c := dates.CompareDay(items[i].date, items[j].date); c != 0 {
			return c > 0
		}
		return items[i].id < items[j].id
	})

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := Row{{"id", it.id}, {"date", it.date.DayString()}}
		if len(args) == 1 {
			row = append(row, Field{"type", it.kind})
		}
		rows = append(rows, row)
	}
	return rows
}

// hotelRating is query 3: a hotel's mean reservation rating with three
// decimals. Reservations without a rating still divide the sum.
func (e *Engine) hotelRating(args []string) []Row {
	if len(args) != 1 {
		return nil
	}
	ids := e.cat.HotelReservations(args[0])
	if len(ids) == 0 {
		return nil
	}
	sum := 0
	for _, rid := range ids {
		if r, ok := e.cat.Reservation(rid); ok {
			sum += r.Rating
		}
	}
	mean := float64(sum) / float64(len(ids))
	return []Row{{{"rating", money(mean)}}}
}

// hotelReservations is query 4: a hotel's reservations, begin date
// descending, ids ascending on ties. An absent rating renders empty.
func (e *Engine) hotelReservations(args []string) []Row {
	if len(args) != 1 {
		return nil
	}
	var rs []*catalog.Reservation
	for _, rid := range e.cat.HotelReservations(args[0]) {
		if r, ok := e.cat.Reservation(rid); ok {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool {
		if c := dates.CompareDay(rs[i].Begin, rs[j].Begin); c != 0 {
			return c > 0
		}
		return rs[i].ID < rs[j].ID
	})

	rows := make([]Row, 0, len(rs))
	for _, r := range rs {
		rating := ""
		if r.HasRating {
			rating = strconv.Itoa(r.Rating)
		}
		rows = append(rows, Row{
			{"id", r.ID},
			{"begin_date", r.Begin.String()},
			{"end_date", r.End.String()},
			{"user_id", r.AccountID},
			{"rating", rating},
			{"total_price", money(r.TotalPrice())},
		})
	}
	return rows
}

// originFlights is query 5: flights leaving an airport with a scheduled
// departure inside the window, departure descending, ids ascending on ties.
func (e *Engine) originFlights(args []string) []Row {
	if len(args) != 3 {
		return nil
	}
	begin, ok1 := dates.Parse(args[1])
	end, ok2 := dates.Parse(args[2])
	if !ok1 || !ok2 {
		return nil
	}

	var fs []*catalog.Flight
	e.cat.EachFlight(func(f *catalog.Flight) {
		if !strings.EqualFold(f.Origin, args[0]) {
			return
		}
		dep := f.ScheduledDeparture
		if dates.Compare(dep, begin) >= 0 && dates.Compare(dep, end) <= 0 {
			fs = append(fs, f)
		}
	})
	sort.Slice(fs, func(i, j int) bool {
		if c := dates.Compare(fs[i].ScheduledDeparture, fs[j].ScheduledDeparture); c != 0 {
			return c > 0
		}
		return fs[i].ID < fs[j].ID
	})

	rows := make([]Row, 0, len(fs))
	for _, f := range fs {
		rows = append(rows, Row{
			{"id", f.ID},
			{"schedule_departure_date", f.ScheduledDeparture.String()},
			{"destination", strings.ToUpper(f.Destination)},
			{"airline", f.Airline},
			{"plane_model", f.PlaneModel},
		})
	}
	return rows
}

// airportCount pairs an airport with an accumulated count.
type airportCount struct {
	name  string
	count int
}

// topAirportsByPassengers is query 6: the N busiest airports of a year by
// boarded passengers, crediting both endpoints of each flight.
func (e *Engine) topAirportsByPassengers(args []string) []Row {
	if len(args) != 2 {
		return nil
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	e.cat.EachFlight(func(f *catalog.Flight) {
		if f.ScheduledDeparture.Year != year {
			return
		}
		passengers := e.cat.PassengerCount(f.ID)
		counts[strings.ToUpper(f.Origin)] += passengers
		counts[strings.ToUpper(f.Destination)] += passengers
	})

	ranked := make([]airportCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, airportCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	rows := make([]Row, 0, len(ranked))
	for _, ac := range ranked {
		rows = append(rows, Row{
			{"name", ac.name},
			{"passengers", strconv.Itoa(ac.count)},
		})
	}
	return rows
}

// airportMedian pairs an airport with its median departure delay in seconds.
type airportMedian struct {
	name   string
	median int64
}

// topAirportsByDelay is query 7: the N origin airports with the highest
// median departure delay, median descending, names ascending on ties.
func (e *Engine) topAirportsByDelay(args []string) []Row {
	if len(args) != 1 {
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return nil
	}

	delays := make(map[string][]int64)
	e.cat.EachFlight(func(f *catalog.Flight) {
		name := strings.ToUpper(f.Origin)
		delays[name] = append(delays[name], dates.DelaySeconds(f.ScheduledDeparture, f.ActualDeparture))
	})

	ranked := make([]airportMedian, 0, len(delays))
	for name, ds := range delays {
		ranked = append(ranked, airportMedian{name, median(ds)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].median != ranked[j].median {
			return ranked[i].median > ranked[j].median
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	rows := make([]Row, 0, len(ranked))
	for _, am := range ranked {
		rows = append(rows, Row{
			{"name", am.name},
			{"median", strconv.FormatInt(am.median, 10)},
		})
	}
	return rows
}

// median returns the middle value of ds, or the truncated mean of the two
// middle values when the count is even. ds is sorted in place.
func median(ds []int64) int64 {
	sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })
	mid := len(ds) / 2
	if len(ds)%2 == 1 {
		return ds[mid]
	}
	return (ds[mid-1] + ds[mid]) / 2
}

// hotelRevenue is query 8: a hotel's revenue over a date window, price per
// night times the nights of each reservation falling inside the window, tax
// excluded. A reversed window is normalized. The scalar is emitted even when
// it is zero.
func (e *Engine) hotelRevenue(args []string) []Row {
	if len(args) != 3 {
		return nil
	}
	begin, ok1 := dates.Parse(args[1])
	end, ok2 := dates.Parse(args[2])
	if !ok1 || !ok2 {
		return nil
	}
	if dates.CompareDay(begin, end) > 0 {
		begin, end = end, begin
	}

	revenue := 0
	for _, rid := range e.cat.HotelReservations(args[0]) {
		r, ok := e.cat.Reservation(rid)
		if !ok {
			continue
		}
		// The stay's nights are the days begin..end-1.
		first, last := r.Begin, r.End.AddDays(-1)
		if dates.CompareDay(begin, first) > 0 {
			first = begin
		}
		if dates.CompareDay(end, last) < 0 {
			last = end
		}
		if nights := dates.DaysBetween(first, last) + 1; nights > 0 {
			revenue += nights * r.PricePerNight
		}
	}
	return []Row{{{"revenue", strconv.Itoa(revenue)}}}
}

// accountsByPrefix is query 9: active accounts whose name starts with the
// prefix, names in en-US collation order, ids ascending on ties.
func (e *Engine) accountsByPrefix(args []string) []Row {
	if len(args) != 1 {
		return nil
	}
	prefix := args[0]

	var matched []*catalog.Account
	e.cat.EachAccount(func(a *catalog.Account) {
		if a.Active && strings.HasPrefix(a.Name, prefix) {
			matched = append(matched, a)
		}
	})
	coll := collator()
	sort.Slice(matched, func(i, j int) bool {
		if c := coll.CompareString(matched[i].Name, matched[j].Name); c != 0 {
			return c < 0
		}
		return matched[i].ID < matched[j].ID
	})

	rows := make([]Row, 0, len(matched))
	for _, a := range matched {
		rows = append(rows, Row{{"id", a.ID}, {"name", a.Name}})
	}
	return rows
}

// yearCounts accumulates one year's totals for query 10.
type yearCounts struct {
	users        int
	flights      int
	passengers   int
	reservations int
}

// yearlyTotals is query 10, no-argument form: per-year new accounts, flights
// departed, passengers boarded and reservations begun, as a continuous year
// range from the earliest observed year through the reference year. The
// per-year and per-month argument forms are declared but not implemented and
// resolve to an empty result.
func (e *Engine) yearlyTotals(args []string) []Row {
	if len(args) != 0 {
		return nil
	}

	years := make(map[int]*yearCounts)
	at := func(y int) *yearCounts {
		yc, ok := years[y]
		if !ok {
			yc = &yearCounts{}
			years[y] = yc
		}
		return yc
	}

	e.cat.EachAccount(func(a *catalog.Account) {
		at(a.CreatedAt.Year).users++
	})
	e.cat.EachFlight(func(f *catalog.Flight) {
		y := f.ScheduledDeparture.Year
		at(y).flights++
		at(y).passengers += e.cat.PassengerCount(f.ID)
	})
	e.cat.EachReservation(func(r *catalog.Reservation) {
		at(r.Begin.Year).reservations++
	})
	if len(years) == 0 {
		return nil
	}

	first, last := 0, referenceYear
	for y := range years {
		if first == 0 || y < first {
			first = y
		}
		if y > last {
			last = y
		}
	}

	rows := make([]Row, 0, last-first+1)
	for y := first; y <= last; y++ {
		yc := years[y]
		if yc == nil {
			yc = &yearCounts{}
		}
		rows = append(rows, Row{
			{"year", strconv.Itoa(y)},
			{"users", strconv.Itoa(yc.users)},
			{"flights", strconv.Itoa(yc.flights)},
			{"passengers", strconv.Itoa(yc.passengers)},
			{"reservations", strconv.Itoa(yc.reservations)},
		})
	}
	return rows
}
