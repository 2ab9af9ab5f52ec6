package calendar

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/username/calendar-gen/internal/holidayapi"
	"github.com/username/calendar-gen/pkg/dateutil"
)

const (
	// DefaultLayout is the default date layout for the range boundaries
	DefaultLayout = dateutil.DateLayout

	// DefaultCountry is the default ISO 3166-2 country code
	DefaultCountry = "US"
)

// Options configures a Builder
type Options struct {
	Start           string // Start date string, inclusive
	End             string // End date string, exclusive
	Layout          string // Date layout for Start/End, defaults to DefaultLayout
	IncludeHolidays bool
	Country         string // ISO 3166-2 code, defaults to DefaultCountry
	Client          *holidayapi.Client
	Logger          *zap.Logger
}

// Builder generates a per-day calendar table for a date range.
// Generate appends to an internal row buffer, so a Builder is not safe
// for concurrent use.
type Builder struct {
	start           time.Time
	end             time.Time
	numDays         int
	includeHolidays bool
	country         string
	client          *holidayapi.Client
	logger          *zap.Logger
	holidays        map[string]string // observed date (YYYY-MM-DD) -> holiday name
	rows            []Row
}

// New creates a Builder for the range [start, end)
func New(opts Options) (*Builder, error) {
	layout := opts.Layout
	if layout == "" {
		layout = DefaultLayout
	}

	start, err := time.Parse(layout, opts.Start)
	if err != nil {
		return nil, &ParseError{Field: "start", Value: opts.Start, Layout: layout, Err: err}
	}

	end, err := time.Parse(layout, opts.End)
	if err != nil {
		return nil, &ParseError{Field: "end", Value: opts.End, Layout: layout, Err: err}
	}

	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	if opts.IncludeHolidays && opts.Client == nil {
		return nil, ErrNoClient
	}

	country := opts.Country
	if country == "" {
		country = DefaultCountry
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	start = dateutil.StartOfDay(start)
	end = dateutil.StartOfDay(end)

	return &Builder{
		start:           start,
		end:             end,
		numDays:         dateutil.DaysBetween(start, end),
		includeHolidays: opts.IncludeHolidays,
		country:         country,
		client:          opts.Client,
		logger:          logger,
	}, nil
}

// NumDays returns the number of days in the range
func (b *Builder) NumDays() int {
	return b.numDays
}

// Reset clears the accumulated row buffer
func (b *Builder) Reset() {
	b.rows = nil
}

// IsWeekend reports whether an ISO weekday number (1=Monday..7=Sunday)
// falls on a weekend
func (b *Builder) IsWeekend(weekday int) bool {
	return weekday == 6 || weekday == 7
}

// IsHoliday reports whether the date is an indexed public holiday,
// together with the holiday name
func (b *Builder) IsHoliday(date time.Time) (bool, string) {
	name, ok := b.holidays[dateutil.DateKey(date)]
	return ok, name
}

// IsBusinessDay reports whether the day is a business day: Monday-Friday
// and, when holidays are enabled, not a public holiday
func (b *Builder) IsBusinessDay(weekday int, date time.Time) bool {
	if b.IsWeekend(weekday) {
		return false
	}
	if b.includeHolidays {
		isHoliday, _ := b.IsHoliday(date)
		return !isHoliday
	}
	return true
}

// resolveHolidays fetches holidays for every year spanned by the range and
// rebuilds the observed-date index. The index is rebuilt on every Generate
// call; nothing is cached.
func (b *Builder) resolveHolidays() error {
	b.holidays = make(map[string]string)
	currentYear := time.Now().Year()

	for year := b.start.Year(); year <= b.end.Year(); year++ {
		if year >= currentYear {
			b.logger.Warn("Free holidayapi.com keys cannot fetch current or future years; "+
				"expect an error or missing data",
				zap.Int("year", year))
		}

		holidays, err := b.client.GetHolidays(year, b.country)
		if err != nil {
			return fmt.Errorf("failed to resolve holidays for %d: %w", year, err)
		}

		b.mergeHolidays(holidays)
	}

	b.logger.Info("Holiday index built",
		zap.String("country", b.country),
		zap.Int("entries", len(b.holidays)))

	return nil
}

// mergeHolidays indexes holiday entries by their observed date. Dates with
// multiple entries keep only the first public one in service order; single
// non-public entries are not indexed at all.
func (b *Builder) mergeHolidays(holidays map[string][]holidayapi.Holiday) {
	for _, entries := range holidays {
		if len(entries) > 1 {
			for _, entry := range entries {
				if entry.Public {
					b.holidays[entry.Observed] = entry.Name
					break
				}
			}
			continue
		}

		if len(entries) == 1 && entries[0].Public {
			b.holidays[entries[0].Observed] = entries[0].Name
		}
	}
}

// Generate builds the calendar table. If reset is true the accumulated row
// buffer is cleared first; otherwise rows from previous Generate calls are
// kept and the new rows are appended after them. Any parse or service
// failure aborts the whole generation; no partial table is returned.
func (b *Builder) Generate(reset bool) (*Table, error) {
	if reset {
		b.Reset()
	}

	if b.includeHolidays {
		if err := b.resolveHolidays(); err != nil {
			return nil, err
		}
	}

	for dayNum := 0; dayNum < b.numDays; dayNum++ {
		date := b.start.AddDate(0, 0, dayNum)
		isoYear, weekNumber := dateutil.ISOWeek(date)
		weekday := dateutil.ISOWeekday(date)

		row := Row{
			Date:          dateutil.DateKey(date),
			Year:          isoYear,
			Month:         int(date.Month()),
			Day:           date.Day(),
			Weekday:       weekday,
			WeekdayName:   WeekdayName(weekday),
			WeekNumber:    weekNumber,
			IsWeekend:     b.IsWeekend(weekday),
			IsBusinessDay: b.IsBusinessDay(weekday, date),
		}

		if b.includeHolidays {
			isHoliday, holidayName := b.IsHoliday(date)
			row.IsHoliday = &isHoliday
			if isHoliday {
				row.HolidayName = &holidayName
			}
		}

		b.rows = append(b.rows, row)
	}

	b.logger.Info("Calendar generated",
		zap.String("start", dateutil.DateKey(b.start)),
		zap.String("end", dateutil.DateKey(b.end)),
		zap.Int("rows", len(b.rows)),
		zap.Bool("holidays", b.includeHolidays))

	table := &Table{Rows: make([]Row, len(b.rows))}
	copy(table.Rows, b.rows)

	return table, nil
}

// GenerateCSV generates the calendar and writes it as delimited text
func (b *Builder) GenerateCSV(w io.Writer, sep rune, reset bool) error {
	table, err := b.Generate(reset)
	if err != nil {
		return err
	}
	return table.WriteCSV(w, sep)
}

// GenerateFile generates the calendar and saves it to a file
func (b *Builder) GenerateFile(path string, sep rune, reset bool) error {
	table, err := b.Generate(reset)
	if err != nil {
		return err
	}
	return table.SaveCSV(path, sep)
}
