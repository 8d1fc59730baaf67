package iof

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// CEST is the fixed UTC+2 offset used for the start date and time columns,
// regardless of calendar date.
var cest = time.FixedZone("CEST", 2*60*60)

// Dialect selects the delimiter convention for CSV output. Every field is
// quoted, which is what Excel's non-numeric quoting does to this schema
// since all columns are text.
type Dialect struct {
	Comma rune
}

// DefaultDialect is the semicolon convention Excel uses in most
// non-English latin locales (German, French, Swedish, ...).
func DefaultDialect() Dialect {
	return Dialect{Comma: ';'}
}

// EnglishDialect is the comma convention Excel uses for English locales.
func EnglishDialect() Dialect {
	return Dialect{Comma: ','}
}

var csvHeader = []string{
	"Position",
	"Name",
	"Team",
	"Time",
	"Status",
	"Controls",
	"Split Times",
	"Start Date",
	"Start Time",
}

// WriteCSV serializes a class result to w, one header row and one row per
// competitor in placement order.
func WriteCSV(w io.Writer, cls *ClassResult, d Dialect) error {
	bw := bufio.NewWriter(w)
	if err := d.writeRecord(bw, csvHeader); err != nil {
		return err
	}
	for _, comp := range cls.Competitors {
		var startDate, startClock string
		if !comp.StartTime.IsZero() {
			t := comp.StartTime.In(cest)
			startDate = t.Format("2006-01-02")
			startClock = t.Format("15:04:05")
		}
		rec := []string{
			itoa(comp.Position),
			comp.Name,
			comp.Team,
			itoa(comp.TimeSeconds),
			comp.Status,
			ControlsString(comp.Splits),
			SplitsString(comp.Splits),
			startDate,
			startClock,
		}
		if err := d.writeRecord(bw, rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (d Dialect) writeRecord(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteRune(d.Comma)
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// ControlsString renders the visited control codes as a comma separated
// list, in split time order.
func ControlsString(splits []SplitTime) string {
	parts := make([]string, len(splits))
	for i, st := range splits {
		parts[i] = itoa(st.ControlCode)
	}
	return strings.Join(parts, ", ")
}

// SplitsString renders "control code: seconds" pairs as a comma separated
// list, in split time order.
func SplitsString(splits []SplitTime) string {
	parts := make([]string, len(splits))
	for i, st := range splits {
		parts[i] = itoa(st.ControlCode) + ": " + itoa(st.Seconds)
	}
	return strings.Join(parts, ", ")
}

// itoa renders an optional integer, empty when there is no value.
func itoa(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
