package iof

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/ianaindex"
)

// Raw shape of an IOF 3.0 ResultList, limited to the fields we consume.
// Tags are unqualified so namespaced files decode the same as plain ones.

type xmlResultList struct {
	ClassResults []xmlClassResult `xml:"ClassResult"`
}

type xmlClassResult struct {
	Class struct {
		ID   string `xml:"Id"`
		Name string `xml:"Name"`
	} `xml:"Class"`
	Course struct {
		Name string `xml:"Name"`
	} `xml:"Course"`
	PersonResults []xmlPersonResult `xml:"PersonResult"`
}

type xmlPersonResult struct {
	Person struct {
		Name struct {
			Given  string `xml:"Given"`
			Family string `xml:"Family"`
		} `xml:"Name"`
	} `xml:"Person"`
	Organisation *struct {
		Name string `xml:"Name"`
	} `xml:"Organisation"`
	Result struct {
		Time       string `xml:"Time"`
		StartTime  string `xml:"StartTime"`
		FinishTime string `xml:"FinishTime"`
		Position   string `xml:"Position"`
		Status     string `xml:"Status"`
		SplitTimes []struct {
			Time        string `xml:"Time"`
			ControlCode string `xml:"ControlCode"`
		} `xml:"SplitTime"`
	} `xml:"Result"`
}

// Parse reads an IOF 3.0 XML ResultList and returns the first class result
// in it, with competitors sorted by placement and split times sorted by
// elapsed time. Diagnostics about the class and the mapped competitors go
// to log; a nil log discards them.
func Parse(r io.Reader, log *slog.Logger) (*ClassResult, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var list xmlResultList
	if err := dec.Decode(&list); err != nil {
		return nil, err
	}
	if len(list.ClassResults) == 0 {
		return nil, errors.New("no class result in document")
	}

	raw := list.ClassResults[0]
	cls := &ClassResult{
		ClassID:    raw.Class.ID,
		ClassName:  raw.Class.Name,
		CourseName: raw.Course.Name,
	}
	log.Info("Class result", "id", cls.ClassID, "name", cls.ClassName, "course", cls.CourseName)

	for _, pr := range raw.PersonResults {
		comp, err := mapPerson(pr, log)
		if err != nil {
			return nil, err
		}
		cls.Competitors = append(cls.Competitors, comp)
	}
	sortByPosition(cls.Competitors)

	return cls, nil
}

func mapPerson(pr xmlPersonResult, log *slog.Logger) (CompetitorResult, error) {
	comp := CompetitorResult{
		Name:   joinName(pr.Person.Name.Given, pr.Person.Name.Family),
		Status: pr.Result.Status,
	}
	if pr.Organisation != nil {
		comp.Team = strings.TrimSpace(pr.Organisation.Name)
		log.Info("Competitor has organisation", "competitor", comp.Name, "team", comp.Team)
	}

	var err error
	if comp.TimeSeconds, err = toInt(pr.Result.Time); err != nil {
		return comp, fmt.Errorf("competitor %q: time: %w", comp.Name, err)
	}
	if comp.Position, err = toInt(pr.Result.Position); err != nil {
		return comp, fmt.Errorf("competitor %q: position: %w", comp.Name, err)
	}
	if comp.StartTime, err = parseTimestamp(pr.Result.StartTime, log); err != nil {
		return comp, fmt.Errorf("competitor %q: start time: %w", comp.Name, err)
	}
	if comp.FinishTime, err = parseTimestamp(pr.Result.FinishTime, log); err != nil {
		return comp, fmt.Errorf("competitor %q: finish time: %w", comp.Name, err)
	}

	for _, st := range pr.Result.SplitTimes {
		var split SplitTime
		if split.Seconds, err = toInt(st.Time); err != nil {
			return comp, fmt.Errorf("competitor %q: split time: %w", comp.Name, err)
		}
		if split.ControlCode, err = toInt(st.ControlCode); err != nil {
			return comp, fmt.Errorf("competitor %q: control code: %w", comp.Name, err)
		}
		comp.Splits = append(comp.Splits, split)
	}
	sortSplits(comp.Splits)

	return comp, nil
}

// joinName concatenates the given and family name parts, either of which
// may be missing, with a single space.
func joinName(given, family string) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(given); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(family); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// toInt converts element text to an optional integer: empty text means no
// value, anything else must be a decimal number.
func toInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseTimestamp(s string, log *slog.Logger) (time.Time, error) {
	log.Info("Timestamp", "iso", s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// IOF 3.0 allows xs:dateTime without a UTC offset. Take the
		// zone-less form as civil time in the output zone, so it
		// renders with the wall clock the file declares.
		if t2, err2 := time.ParseInLocation("2006-01-02T15:04:05", s, cest); err2 == nil {
			return t2, nil
		}
	}
	return t, err
}

// charsetReader lets the decoder handle the legacy encodings some timing
// software still declares (ISO-8859-1, windows-1252, ...).
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}
