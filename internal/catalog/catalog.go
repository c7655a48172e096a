// Package catalog is the in-memory relational store the queries read. It is
// populated exactly once by the ingestion pipeline, in dependency order, and
// never mutated afterwards; every query method is a plain read.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"travelcat/internal/dates"
)

// Account is a committed account row. Fields echo the validated source
// columns; BirthDate and CreatedAt are parsed because queries derive ages and
// per-year counts from them.
type Account struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	BirthDate   dates.Date
	Sex         string
	Passport    string
	CountryCode string
	Address     string
	CreatedAt   dates.Date
	PayMethod   string
	Active      bool
}

// Flight is a committed flight row. The four timestamps are stored parsed;
// Date.String reproduces the source form byte for byte, so outputs that echo
// them stay verbatim.
type Flight struct {
	ID                 string
	Airline            string
	PlaneModel         string
	TotalSeats         int
	Origin             string
	Destination        string
	ScheduledDeparture dates.Date
	ScheduledArrival   dates.Date
	ActualDeparture    dates.Date
	ActualArrival      dates.Date
	Pilot              string
	Copilot            string
}

// Reservation is a committed hotel reservation row. Rating is meaningful only
// when HasRating is set; an absent rating is a valid state, not a zero score.
type Reservation struct {
	ID            string
	AccountID     string
	HotelID       string
	HotelName     string
	Stars         int
	CityTax       int
	Address       string
	Begin         dates.Date
	End           dates.Date
	PricePerNight int
	Breakfast     bool
	Rating        int
	HasRating     bool
}

// Nights returns the number of nights the stay covers.
func (r *Reservation) Nights() int {
	return dates.Nights(r.Begin, r.End)
}

// TotalPrice returns the stay's cost with city tax applied.
func (r *Reservation) TotalPrice() float64 {
	base := float64(r.Nights() * r.PricePerNight)
	return base * (1 + float64(r.CityTax)/100)
}

// Catalog holds the four tables plus the derived per-account and per-hotel
// lookups several queries need. Zero value is not usable; call New.
type Catalog struct {
	accounts     map[string]*Account
	flights      map[string]*Flight
	reservations map[string]*Reservation
	boardings    map[string][]string

	accountFlights      map[string][]string
	accountReservations map[string][]string
	hotelReservations   map[string][]string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		accounts:            make(map[string]*Account),
		flights:             make(map[string]*Flight),
		reservations:        make(map[string]*Reservation),
		boardings:           make(map[string][]string),
		accountFlights:      make(map[string][]string),
		accountReservations: make(map[string][]string),
		hotelReservations:   make(map[string][]string),
	}
}

// AddAccount commits an account row.
func (c *Catalog) AddAccount(a *Account) {
	c.accounts[a.ID] = a
}

// AddFlight commits a flight row.
func (c *Catalog) AddFlight(f *Flight) {
	c.flights[f.ID] = f
}

// AddReservation commits a reservation row and indexes it under its account
// and hotel.
func (c *Catalog) AddReservation(r *Reservation) {
	c.reservations[r.ID] = r
	c.accountReservations[r.AccountID] = append(c.accountReservations[r.AccountID], r.ID)
	c.hotelReservations[r.HotelID] = append(c.hotelReservations[r.HotelID], r.ID)
}

// AddBoarding appends an account to a flight's boarding list and indexes the
// flight under the account.
func (c *Catalog) AddBoarding(flightID, accountID string) {
	c.boardings[flightID] = append(c.boardings[flightID], accountID)
	c.accountFlights[accountID] = append(c.accountFlights[accountID], flightID)
}

// Account returns the account with the given id.
func (c *Catalog) Account(id string) (*Account, bool) {
	a, ok := c.accounts[id]
	return a, ok
}

// Flight returns the flight with the given id.
func (c *Catalog) Flight(id string) (*Flight, bool) {
	f, ok := c.flights[id]
	return f, ok
}

// Reservation returns the reservation with the given id.
func (c *Catalog) Reservation(id string) (*Reservation, bool) {
	r, ok := c.reservations[id]
	return r, ok
}

// HasAccount reports whether an account with the id exists.
func (c *Catalog) HasAccount(id string) bool {
	_, ok := c.accounts[id]
	return ok
}

// HasFlight reports whether a flight with the id exists.
func (c *Catalog) HasFlight(id string) bool {
	_, ok := c.flights[id]
	return ok
}

// HasReservation reports whether a reservation with the id exists.
func (c *Catalog) HasReservation(id string) bool {
	_, ok := c.reservations[id]
	return ok
}

// EachAccount calls fn for every account, in no particular order.
func (c *Catalog) EachAccount(fn func(*Account)) {
	for _, a := range c.accounts {
		fn(a)
	}
}

// EachFlight calls fn for every flight, in no particular order.
func (c *Catalog) EachFlight(fn func(*Flight)) {
	for _, f := range c.flights {
		fn(f)
	}
}

// EachReservation calls fn for every reservation, in no particular order.
func (c *Catalog) EachReservation(fn func(*Reservation)) {
	for _, r := range c.reservations {
		fn(r)
	}
}

// Boardings returns the ordered account ids boarded on a flight.
func (c *Catalog) Boardings(flightID string) []string {
	return c.boardings[flightID]
}

// PassengerCount returns the number of boarded passengers on a flight.
func (c *Catalog) PassengerCount(flightID string) int {
	return len(c.boardings[flightID])
}

// FlightsOf returns the ids of flights an account has boarded, in boarding
// commit order.
func (c *Catalog) FlightsOf(accountID string) []string {
	return c.accountFlights[accountID]
}

// ReservationsOf returns the ids of an account's reservations in commit order.
func (c *Catalog) ReservationsOf(accountID string) []string {
	return c.accountReservations[accountID]
}

// HotelReservations returns the ids of a hotel's reservations in commit order.
func (c *Catalog) HotelReservations(hotelID string) []string {
	return c.hotelReservations[hotelID]
}

// Counts returns the table sizes: accounts, flights, reservations, boardings.
func (c *Catalog) Counts() (accounts, flights, reservations, boardings int) {
	for _, b := range c.boardings {
		boardings += len(b)
	}
	return len(c.accounts), len(c.flights), len(c.reservations), boardings
}

// Checksum hashes a canonically ordered dump of every table with xxh3.
// Identical inputs ingest to identical checksums regardless of map iteration
// order, which is what regression tests assert.
func (c *Catalog) Checksum() uint64 {
	var sb strings.Builder

	for _, id := range sortedKeys(c.accounts) {
		a := c.accounts[id]
		fmt.Fprintf(&sb, "A|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%t\n",
			a.ID, a.Name, a.Email, a.Phone, a.BirthDate, a.Sex,
			a.Passport, a.CountryCode, a.Address, a.CreatedAt, a.PayMethod, a.Active)
	}
	for _, id := range sortedKeys(c.flights) {
		f := c.flights[id]
		fmt.Fprintf(&sb, "F|%s|%s|%s|%d|%s|%s|%s|%s|%s|%s|%s|%s\n",
			f.ID, f.Airline, f.PlaneModel, f.TotalSeats, f.Origin, f.Destination,
			f.ScheduledDeparture, f.ScheduledArrival, f.ActualDeparture, f.ActualArrival,
			f.Pilot, f.Copilot)
	}
	for _, id := range sortedKeys(c.reservations) {
		r := c.reservations[id]
		fmt.Fprintf(&sb, "R|%s|%s|%s|%s|%d|%d|%s|%s|%s|%d|%t|%d|%t\n",
			r.ID, r.AccountID, r.HotelID, r.HotelName, r.Stars, r.CityTax,
			r.Address, r.Begin, r.End, r.PricePerNight, r.Breakfast, r.Rating, r.HasRating)
	}
	for _, id := range sortedKeys(c.boardings) {
		fmt.Fprintf(&sb, "B|%s|%s\n", id, strings.Join(c.boardings[id], ","))
	}

	return xxh3.HashString(sb.String())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
