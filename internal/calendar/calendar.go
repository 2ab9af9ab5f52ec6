package calendar

// Row represents a single day in the generated calendar.
// The field order defines the column order of the exported table.
type Row struct {
	Date          string  `csv:"date"` // YYYY-MM-DD
	Year          int     `csv:"year"` // ISO 8601 year
	Month         int     `csv:"month"`
	Day           int     `csv:"day"`
	Weekday       int     `csv:"weekday"` // ISO 8601: 1=Monday..7=Sunday
	WeekdayName   string  `csv:"weekday_name"`
	WeekNumber    int     `csv:"weeknumber"` // ISO 8601 week number
	IsWeekend     bool    `csv:"is_weekend"`
	IsBusinessDay bool    `csv:"is_business_day"`
	IsHoliday     *bool   `csv:"is_holiday"`   // nil when holidays are disabled
	HolidayName   *string `csv:"holiday_name"` // nil when no public holiday
}

// Table is the generation artifact: one Row per day, in date order
type Table struct {
	Rows []Row
}

var weekdayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// WeekdayName returns the English name for an ISO weekday number (1=Monday..7=Sunday)
func WeekdayName(weekday int) string {
	return weekdayNames[weekday]
}
