package excel

import (
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"
	"kastelo.dev/iof"
)

var cest = time.FixedZone("CEST", 2*60*60)

var columns = []string{
	"Position",
	"Name",
	"Team",
	"Time",
	"Status",
	"Controls",
	"Split Times",
	"Start",
}

// ResultXLSX renders one class's results as a workbook with a single
// sheet named after the class.
func ResultXLSX(cls *iof.ClassResult) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/iof",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	writeSheet(xlsx, sheet, cls)
	if name := sheetName(cls); name != "" {
		_ = xlsx.SetSheetName(sheet, name)
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(xlsx *excelize.File, sheet string, cls *iof.ClassResult) {
	_ = xlsx.SetColWidth(sheet, "B", "C", 28)
	_ = xlsx.SetColWidth(sheet, "F", "G", 42)
	_ = xlsx.SetColWidth(sheet, "H", "H", 20)

	for i, hdr := range columns {
		_ = xlsx.SetCellValue(sheet, cell('A'+rune(i), 1), hdr)
	}
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom")))
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell('A'+rune(len(columns)-1), 1), style)

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		ActivePane:  "bottomLeft",
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})

	for i, comp := range cls.Competitors {
		row := i + 2
		if comp.Position != nil {
			_ = xlsx.SetCellInt(sheet, cell('A', row), *comp.Position)
		}
		_ = xlsx.SetCellValue(sheet, cell('B', row), comp.Name)
		_ = xlsx.SetCellValue(sheet, cell('C', row), comp.Team)
		if comp.TimeSeconds != nil {
			_ = xlsx.SetCellValue(sheet, cell('D', row), iof.HumanTime(*comp.TimeSeconds))
		}
		_ = xlsx.SetCellValue(sheet, cell('E', row), comp.Status)
		_ = xlsx.SetCellValue(sheet, cell('F', row), iof.ControlsString(comp.Splits))
		_ = xlsx.SetCellValue(sheet, cell('G', row), iof.SplitsString(comp.Splits))
		if !comp.StartTime.IsZero() {
			_ = xlsx.SetCellValue(sheet, cell('H', row), comp.StartTime.In(cest).Format("2006-01-02 15:04:05"))
		}
	}
}

// sheetName fits the class (or course) name into Excel's 31 character
// sheet name limit.
func sheetName(cls *iof.ClassResult) string {
	name := cls.ClassName
	if name == "" {
		name = cls.CourseName
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}

func defaultStyle() *excelize.Style {
	return &excelize.Style{
		// solid white
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FFFFFF"},
			Pattern: 1,
		},
	}
}

func fontBold() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
}

func thinBorder(where ...string) *excelize.Style {
	s := &excelize.Style{}
	for _, w := range where {
		s.Border = append(s.Border, excelize.Border{
			Type:  w,
			Color: "#000000",
			Style: 1,
		})
	}
	return s
}

func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}
