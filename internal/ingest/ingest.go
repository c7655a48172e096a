// Package ingest reads the four dataset files, validates every row, and
// populates the catalog. Rows failing any field, cross-field or referential
// check are appended verbatim to a per-dataset error file; validation never
// aborts a run. Missing inputs and unwritable outputs do.
package ingest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"travelcat/internal/catalog"
	"travelcat/internal/dates"
	"travelcat/internal/metrics"
	"travelcat/internal/validate"
)

// Options locates the inputs and the error-file directory.
type Options struct {
	DatasetDir string
	OutputDir  string
}

// DatasetSummary counts one dataset's outcomes.
type DatasetSummary struct {
	Committed int
	Rejected  int
}

// Summary aggregates per-dataset outcomes for logging and tests.
type Summary struct {
	Accounts     DatasetSummary
	Reservations DatasetSummary
	Flights      DatasetSummary
	Seats        DatasetSummary
}

// Field separator used by every dataset file.
const sep = ";"

// Run ingests all four datasets in dependency order: accounts first, then
// reservations (which reference accounts), flights, and finally seat
// assignments (which reference both). Returns the populated catalog.
func Run(opts Options) (*catalog.Catalog, Summary, error) {
	cat := catalog.New()
	var sum Summary
	var err error

	if sum.Accounts, err = loadDataset(opts, "accounts", func(fields []string) bool {
		return commitAccount(cat, fields)
	}); err != nil {
		return nil, sum, err
	}
	if sum.Reservations, err = loadDataset(opts, "reservations", func(fields []string) bool {
		return commitReservation(cat, fields)
	}); err != nil {
		return nil, sum, err
	}
	if sum.Flights, err = loadDataset(opts, "flights", func(fields []string) bool {
		return commitFlight(cat, fields)
	}); err != nil {
		return nil, sum, err
	}
	if sum.Seats, err = loadDataset(opts, "seats", func(fields []string) bool {
		return commitSeat(cat, fields)
	}); err != nil {
		return nil, sum, err
	}
	return cat, sum, nil
}

// loadDataset streams <dir>/<name>.csv through commit, quarantining rejected
// raw lines into <out>/<name>_errors.csv. The error file is always created
// and seeded with the dataset's header line, so a clean run leaves a
// header-only file.
func loadDataset(opts Options, name string, commit func([]string) bool) (DatasetSummary, error) {
	var sum DatasetSummary

	in, err := os.Open(filepath.Join(opts.DatasetDir, name+".csv"))
	if err != nil {
		return sum, fmt.Errorf("open %s dataset: %w", name, err)
	}
	defer in.Close()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return sum, fmt.Errorf("read %s header: %w", name, err)
		}
		return sum, fmt.Errorf("read %s header: empty file", name)
	}
	header := stripBOM(scanner.Text())

	sink, err := newErrorSink(filepath.Join(opts.OutputDir, name+"_errors.csv"), header)
	if err != nil {
		return sum, fmt.Errorf("%s error sink: %w", name, err)
	}

	for scanner.Scan() {
		raw := scanner.Text()
		if commit(strings.Split(raw, sep)) {
			sum.Committed++
			continue
		}
		sum.Rejected++
		if err := sink.reject(raw); err != nil {
			sink.close()
			return sum, fmt.Errorf("%s error sink: %w", name, err)
		}
	}
	if err := scanner.Err(); err != nil {
		sink.close()
		return sum, fmt.Errorf("read %s dataset: %w", name, err)
	}
	if err := sink.close(); err != nil {
		return sum, fmt.Errorf("%s error sink: %w", name, err)
	}

	metrics.RecordRows(name, "committed", int64(sum.Committed))
	metrics.RecordRows(name, "rejected", int64(sum.Rejected))
	return sum, nil
}

// stripBOM drops a leading UTF-8 byte order mark some exports prepend.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

// errorSink is the quarantine file for one dataset: header first, then every
// rejected source line verbatim.
type errorSink struct {
	f *os.File
	w *bufio.Writer
}

func newErrorSink(path, header string) (*errorSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(header + "\n"); err != nil {
		f.Close()
		return nil, err
	}
	return &errorSink{f: f, w: w}, nil
}

func (s *errorSink) reject(raw string) error {
	_, err := s.w.WriteString(raw + "\n")
	return err
}

func (s *errorSink) close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// Account columns.
const (
	accID = iota
	accName
	accEmail
	accPhone
	accBirth
	accSex
	accPassport
	accCountry
	accAddress
	accCreated
	accPay
	accStatus
	accFields
)

func commitAccount(cat *catalog.Catalog, f []string) bool {
	if len(f) < accFields {
		return false
	}
	for _, i := range []int{accID, accName, accPhone, accSex, accPassport, accAddress, accPay} {
		if !validate.NonEmpty(f[i]) {
			return false
		}
	}
	if cat.HasAccount(f[accID]) {
		return false
	}
	if !validate.Email(f[accEmail]) ||
		!validate.CountryCode(f[accCountry]) ||
		!validate.Status(f[accStatus]) ||
		!validate.Date(f[accBirth]) ||
		!validate.Date(f[accCreated]) ||
		!validate.StrictlyBefore(f[accBirth], f[accCreated]) {
		return false
	}
	birth, _ := dates.Parse(f[accBirth])
	created, _ := dates.Parse(f[accCreated])
	cat.AddAccount(&catalog.Account{
		ID:          f[accID],
		Name:        f[accName],
		Email:       f[accEmail],
		Phone:       f[accPhone],
		BirthDate:   birth,
		Sex:         f[accSex],
		Passport:    f[accPassport],
		CountryCode: f[accCountry],
		Address:     f[accAddress],
		CreatedAt:   created,
		PayMethod:   f[accPay],
		Active:      validate.Active(f[accStatus]),
	})
	return true
}

// Reservation columns. resRoom is free text and carries no check.
const (
	resID = iota
	resAccount
	resHotelID
	resHotelName
	resStars
	resTax
	resAddress
	resBegin
	resEnd
	resPrice
	resBreakfast
	resRoom
	resRating
	resFields
)

func commitReservation(cat *catalog.Catalog, f []string) bool {
	if len(f) < resFields {
		return false
	}
	for _, i := range []int{resID, resAccount, resHotelID, resHotelName, resAddress} {
		if !validate.NonEmpty(f[i]) {
			return false
		}
	}
	if cat.HasReservation(f[resID]) || !cat.HasAccount(f[resAccount]) {
		return false
	}
	if !validate.Stars(f[resStars]) ||
		!validate.Tax(f[resTax]) ||
		!validate.Price(f[resPrice]) ||
		!validate.Breakfast(f[resBreakfast]) ||
		!validate.Rating(f[resRating]) ||
		!validate.Date(f[resBegin]) ||
		!validate.Date(f[resEnd]) ||
		!validate.StrictlyBefore(f[resBegin], f[resEnd]) {
		return false
	}
	begin, _ := dates.Parse(f[resBegin])
	end, _ := dates.Parse(f[resEnd])
	r := &catalog.Reservation{
		ID:            f[resID],
		AccountID:     f[resAccount],
		HotelID:       f[resHotelID],
		HotelName:     f[resHotelName],
		Stars:         wholeInt(f[resStars]),
		CityTax:       wholeInt(f[resTax]),
		Address:       f[resAddress],
		Begin:         begin,
		End:           end,
		PricePerNight: wholeInt(f[resPrice]),
		Breakfast:     validate.BreakfastValue(f[resBreakfast]),
	}
	if f[resRating] != "" {
		r.Rating = wholeInt(f[resRating])
		r.HasRating = true
	}
	cat.AddReservation(r)
	return true
}

// Flight columns.
const (
	fltID = iota
	fltAirline
	fltModel
	fltSeats
	fltOrigin
	fltDest
	fltSchedDep
	fltSchedArr
	fltActualDep
	fltActualArr
	fltPilot
	fltCopilot
	fltFields
)

func commitFlight(cat *catalog.Catalog, f []string) bool {
	if len(f) < fltFields {
		return false
	}
	for _, i := range []int{fltID, fltAirline, fltModel, fltPilot, fltCopilot} {
		if !validate.NonEmpty(f[i]) {
			return false
		}
	}
	if cat.HasFlight(f[fltID]) {
		return false
	}
	if !validate.PositiveInt(f[fltSeats]) ||
		!validate.Trip(f[fltOrigin], f[fltDest]) ||
		!validate.Date(f[fltSchedDep]) ||
		!validate.Date(f[fltSchedArr]) ||
		!validate.Date(f[fltActualDep]) ||
		!validate.Date(f[fltActualArr]) ||
		!validate.StrictlyBefore(f[fltSchedDep], f[fltSchedArr]) ||
		!validate.StrictlyBefore(f[fltActualDep], f[fltActualArr]) {
		return false
	}
	schedDep, _ := dates.Parse(f[fltSchedDep])
	schedArr, _ := dates.Parse(f[fltSchedArr])
	actualDep, _ := dates.Parse(f[fltActualDep])
	actualArr, _ := dates.Parse(f[fltActualArr])
	cat.AddFlight(&catalog.Flight{
		ID:                 f[fltID],
		Airline:            f[fltAirline],
		PlaneModel:         f[fltModel],
		TotalSeats:         wholeInt(f[fltSeats]),
		Origin:             f[fltOrigin],
		Destination:        f[fltDest],
		ScheduledDeparture: schedDep,
		ScheduledArrival:   schedArr,
		ActualDeparture:    actualDep,
		ActualArrival:      actualArr,
		Pilot:              f[fltPilot],
		Copilot:            f[fltCopilot],
	})
	return true
}

// Seat assignment columns: flight id, account id.
const (
	seatFlight = iota
	seatAccount
	seatFields
)

func commitSeat(cat *catalog.Catalog, f []string) bool {
	if len(f) < seatFields {
		return false
	}
	if !validate.NonEmpty(f[seatFlight]) || !validate.NonEmpty(f[seatAccount]) {
		return false
	}
	if !cat.HasFlight(f[seatFlight]) || !cat.HasAccount(f[seatAccount]) {
		return false
	}
	cat.AddBoarding(f[seatFlight], f[seatAccount])
	return true
}

// wholeInt converts a string the whole-number validators already accepted,
// including forms with a trailing ".0".
func wholeInt(s string) int {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v)
}
