package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/samber/oops"

	"triphelix-cli/internal/itinerary"
	"triphelix-cli/internal/markdown"
)

type slot struct {
	name       string
	start, end int // hours, local time
	text       func(itinerary.Row) string
}

var slots = []slot{
	{"Morning", 9, 12, func(r itinerary.Row) string { return r.Morning }},
	{"Afternoon", 13, 17, func(r itinerary.Row) string { return r.Afternoon }},
	{"Evening", 18, 22, func(r itinerary.Row) string { return r.Evening }},
}

// Calendar builds an iCalendar document with one event per non-empty
// segment. Day N of the table falls on start + N-1 days.
func Calendar(table *itinerary.Table, start, now time.Time) (string, error) {
	if table.Len() == 0 {
		return "", oops.In("export").Errorf("no itinerary table to export")
	}
	if start.IsZero() {
		return "", oops.In("export").Errorf("no start date: pick one with /date YYYY-MM-DD")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TripHelix//Itinerary//EN")

	y, m, d := start.Date()
	for i, row := range table.Rows {
		for _, s := range slots {
			desc := markdown.ToText(s.text(row))
			if desc == "" {
				continue
			}
			day := time.Date(y, m, d+row.Day-1, 0, 0, 0, 0, start.Location())

			ev := cal.AddEvent(fmt.Sprintf("triphelix-%d-%d-%s@%s", i, row.Day, s.name, start.Format("20060102")))
			ev.SetDtStampTime(now)
			ev.SetStartAt(day.Add(time.Duration(s.start) * time.Hour))
			ev.SetEndAt(day.Add(time.Duration(s.end) * time.Hour))
			ev.SetSummary(fmt.Sprintf("%s: %s", row.DayHeading(), s.name))
			ev.SetDescription(desc)
		}
	}
	return cal.Serialize(), nil
}

// ICS writes the table as an iCalendar file.
func ICS(table *itinerary.Table, start time.Time, path string) error {
	data, err := Calendar(table, start, time.Now())
	if err != nil {
		return err
	}
	return writeFile(path, []byte(data))
}
