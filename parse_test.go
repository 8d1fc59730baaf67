package iof

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	expected := &ClassResult{
		ClassID:    "H21",
		ClassName:  "Men 21",
		CourseName: "Long A",
		Competitors: []CompetitorResult{
			{
				Name:        "Maja Nilsson",
				TimeSeconds: intp(1180),
				StartTime:   time.Date(2021, 7, 10, 9, 5, 0, 0, time.UTC),
				FinishTime:  time.Date(2021, 7, 10, 9, 24, 40, 0, time.UTC),
				Position:    intp(1),
				Status:      "OK",
				Splits: []SplitTime{
					{Seconds: intp(118), ControlCode: intp(31)},
					{Seconds: intp(199), ControlCode: intp(32)},
				},
			},
			{
				Name:        "Erik Aalto",
				Team:        "OK Ravinen",
				TimeSeconds: intp(1242),
				StartTime:   time.Date(2021, 7, 10, 9, 15, 30, 0, time.UTC),
				FinishTime:  time.Date(2021, 7, 10, 9, 36, 12, 0, time.UTC),
				Position:    intp(2),
				Status:      "OK",
				Splits: []SplitTime{
					{Seconds: intp(120), ControlCode: intp(31)},
					{Seconds: intp(210), ControlCode: intp(32)},
					{Seconds: intp(305), ControlCode: intp(34)},
				},
			},
			{
				Name:      "Berg",
				StartTime: time.Date(2021, 7, 10, 9, 25, 0, 0, time.UTC),
				Status:    "DidNotFinish",
				Splits: []SplitTime{
					{ControlCode: intp(33)},
					{Seconds: intp(131), ControlCode: intp(31)},
				},
			},
		},
	}

	fd, err := os.Open("testdata/resultlist.xml")
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()

	cls, err := Parse(fd, nil)
	if err != nil {
		t.Fatal(err)
	}

	clsStr := jsons(cls)
	expStr := jsons(expected)

	if clsStr != expStr {
		t.Errorf("mismatch\n%s\n%s", clsStr, expStr)
	}
}

func TestParseNoClassResult(t *testing.T) {
	doc := `<?xml version="1.0"?><ResultList><Event><Name>Empty</Name></Event></ResultList>`
	_, err := Parse(strings.NewReader(doc), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no class result")
}

func TestParseMalformedXML(t *testing.T) {
	_, err := Parse(strings.NewReader("<ResultList><ClassResult>"), nil)
	require.Error(t, err)
}

func TestParseBadInteger(t *testing.T) {
	doc := `<ResultList><ClassResult>
		<PersonResult>
			<Person><Name><Given>A</Given></Name></Person>
			<Result><Position>first</Position></Result>
		</PersonResult>
	</ClassResult></ResultList>`
	_, err := Parse(strings.NewReader(doc), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position")
}

func TestParseBadTimestamp(t *testing.T) {
	doc := `<ResultList><ClassResult>
		<PersonResult>
			<Person><Name><Given>A</Given></Name></Person>
			<Result><StartTime>yesterday</StartTime></Result>
		</PersonResult>
	</ClassResult></ResultList>`
	_, err := Parse(strings.NewReader(doc), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start time")
}

func TestParseTimestampWithoutOffset(t *testing.T) {
	doc := `<ResultList><ClassResult>
		<PersonResult>
			<Person><Name><Given>A</Given></Name></Person>
			<Result><StartTime>2021-07-10T09:15:30</StartTime></Result>
		</PersonResult>
	</ClassResult></ResultList>`
	cls, err := Parse(strings.NewReader(doc), nil)
	require.NoError(t, err)
	require.Len(t, cls.Competitors, 1)

	// A zone-less timestamp is civil time in the output zone, so the
	// CSV shows the wall clock the file declares.
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cls, DefaultDialect()))
	assert.Contains(t, buf.String(), `"2021-07-10";"09:15:30"`)
}

func TestParseEmptyClass(t *testing.T) {
	doc := `<ResultList><ClassResult>
		<Class><Id>D16</Id><Name>Women 16</Name></Class>
		<Course><Name>Short</Name></Course>
	</ClassResult></ResultList>`
	cls, err := Parse(strings.NewReader(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, "D16", cls.ClassID)
	assert.Empty(t, cls.Competitors)
}

func TestParseLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><ResultList><ClassResult>" +
		"<PersonResult><Person><Name><Given>Ren\xe9</Given><Family>\xc5berg</Family></Name></Person>" +
		"<Result><Status>OK</Status></Result></PersonResult>" +
		"</ClassResult></ResultList>"
	cls, err := Parse(strings.NewReader(doc), nil)
	require.NoError(t, err)
	require.Len(t, cls.Competitors, 1)
	assert.Equal(t, "René Åberg", cls.Competitors[0].Name)
}

func TestJoinName(t *testing.T) {
	cases := []struct {
		given, family, out string
	}{
		{"Erik", "Aalto", "Erik Aalto"},
		{"", "Aalto", "Aalto"},
		{"Erik", "", "Erik"},
		{"", "", ""},
		{" Erik ", " Aalto ", "Erik Aalto"},
	}

	for _, c := range cases {
		if res := joinName(c.given, c.family); res != c.out {
			t.Errorf("joinName(%q, %q) -> %q, expected %q", c.given, c.family, res, c.out)
		}
	}
}

func TestToInt(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		out *int
	}{
		{"", true, nil},
		{"0", true, intp(0)},
		{"42", true, intp(42)},
		{"-1", true, intp(-1)},
		{" 7 ", true, intp(7)},
		{"banana", false, nil},
		{"1.5", false, nil},
	}

	for _, c := range cases {
		v, err := toInt(c.in)
		if c.ok && err != nil {
			t.Error("unexpected failure:", c.in)
		} else if !c.ok && err == nil {
			t.Error("unexpected success:", c.in)
		} else if c.ok && jsons(v) != jsons(c.out) {
			t.Errorf("unexpected value %v != %v for %q", v, c.out, c.in)
		}
	}
}

func jsons(v interface{}) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(bs)
}

func intp(v int) *int {
	return &v
}
