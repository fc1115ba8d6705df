package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Collection string

const (
	Clients     Collection = "clients"
	Projects    Collection = "projects"
	TimeEntries Collection = "time_entries"
	Tasks       Collection = "tasks"
	Meetings    Collection = "meetings"
	Quotes      Collection = "quotes"
	Invoices    Collection = "invoices"
	Contracts   Collection = "contracts"
)

// Collections lists every cached table in load order.
var Collections = []Collection{
	Clients, Projects, TimeEntries, Tasks, Meetings, Quotes, Invoices, Contracts,
}

var rowCaps = map[Collection]int{
	Clients:     1000,
	Projects:    1000,
	TimeEntries: 5000,
	Tasks:       2000,
	Meetings:    1000,
	Quotes:      1000,
	Invoices:    1000,
	Contracts:   500,
}

// Cap returns the maximum number of rows loaded for the collection.
func (c Collection) Cap() int {
	return rowCaps[c]
}

func (c Collection) Valid() bool {
	_, ok := rowCaps[c]
	return ok
}

// Record is a loosely typed CRM row keyed by column name.
type Record map[string]any

func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Float reads a numeric column. Missing or non-numeric values count as 0.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f
	default:
		return 0
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time parses a date column. The second result is false for missing or
// malformed values, which callers treat as "not in range".
func (r Record) Time(key string) (time.Time, bool) {
	switch v := r[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		return parseTime(v)
	case []byte:
		return parseTime(string(v))
	default:
		return time.Time{}, false
	}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Dataset is the in-memory snapshot of all CRM collections. It is never
// mutated after the cache publishes it.
type Dataset struct {
	Clients     []Record
	Projects    []Record
	TimeEntries []Record
	Tasks       []Record
	Meetings    []Record
	Quotes      []Record
	Invoices    []Record
	Contracts   []Record
}

func (d *Dataset) Get(c Collection) []Record {
	if d == nil {
		return nil
	}
	switch c {
	case Clients:
		return d.Clients
	case Projects:
		return d.Projects
	case TimeEntries:
		return d.TimeEntries
	case Tasks:
		return d.Tasks
	case Meetings:
		return d.Meetings
	case Quotes:
		return d.Quotes
	case Invoices:
		return d.Invoices
	case Contracts:
		return d.Contracts
	}
	return nil
}

func (d *Dataset) Set(c Collection, rows []Record) {
	switch c {
	case Clients:
		d.Clients = rows
	case Projects:
		d.Projects = rows
	case TimeEntries:
		d.TimeEntries = rows
	case Tasks:
		d.Tasks = rows
	case Meetings:
		d.Meetings = rows
	case Quotes:
		d.Quotes = rows
	case Invoices:
		d.Invoices = rows
	case Contracts:
		d.Contracts = rows
	}
}

// Counts returns the number of rows per collection.
func (d *Dataset) Counts() map[Collection]int {
	res := make(map[Collection]int, len(Collections))
	for _, c := range Collections {
		res[c] = len(d.Get(c))
	}
	return res
}
