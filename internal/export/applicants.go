// Package export renders applicant lists as spreadsheets for recruiters.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"hirelink/internal/domain/job"
)

const (
	summarySheet    = "Summary"
	applicantsSheet = "Applicants"
)

var applicantHeaders = []string{"Rank", "Name", "Email", "Applied At", "Match %"}

// ApplicantsWorkbook writes a two-sheet workbook: a job summary and the
// applicants in the order given, which callers sort by match score.
func ApplicantsWorkbook(j job.Job, applicants []job.Applicant, generatedAt time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(applicantsSheet); err != nil {
		return nil, err
	}

	if err := writeSummary(f, j, applicants, generatedAt); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeApplicants(f, applicants); err != nil {
		return nil, fmt.Errorf("applicants sheet: %w", err)
	}

	return f.WriteToBuffer()
}

// FileName is the attachment name used for a job's export.
func FileName(j job.Job) string {
	return fmt.Sprintf("applicants-%s.xlsx", j.ID.String())
}

func writeSummary(f *excelize.File, j job.Job, applicants []job.Applicant, generatedAt time.Time) error {
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 50); err != nil {
		return err
	}

	rows := [][2]any{
		{"Job Title", j.Title},
		{"Company", j.CompanyName},
		{"Location", j.Location},
		{"Generated", generatedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Applicants", len(applicants)},
	}
	if len(applicants) > 0 {
		var total float64
		for _, a := range applicants {
			total += a.MatchScore
		}
		rows = append(rows, [2]any{"Average Match %", percent(total / float64(len(applicants)))})
	}

	for i, r := range rows {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summarySheet, label, r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, label, label, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, value, r[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeApplicants(f *excelize.File, applicants []job.Applicant) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	bands, err := scoreBands(f)
	if err != nil {
		return err
	}

	for col, width := range []float64{8, 28, 32, 22, 12} {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(applicantsSheet, name, name, width); err != nil {
			return err
		}
	}
	for col, h := range applicantHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(applicantsSheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(applicantsSheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, a := range applicants {
		row := i + 2
		values := []any{i + 1, a.Name, a.Email, a.AppliedAt.UTC().Format(time.RFC3339), percent(a.MatchScore)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(applicantsSheet, cell, v); err != nil {
				return err
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(values), row)
		if err := f.SetCellStyle(applicantsSheet, first, last, bands.styleFor(a.MatchScore)); err != nil {
			return err
		}
	}

	if len(applicants) > 0 {
		ref := fmt.Sprintf("A1:E%d", len(applicants)+1)
		if err := f.AutoFilter(applicantsSheet, ref, []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}
	return f.SetPanes(applicantsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

type bandStyles struct {
	strong, fair, weak int
}

func scoreBands(f *excelize.File) (bandStyles, error) {
	mk := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
	}
	var b bandStyles
	var err error
	if b.strong, err = mk("C6EFCE"); err != nil {
		return b, err
	}
	if b.fair, err = mk("FFEB9C"); err != nil {
		return b, err
	}
	if b.weak, err = mk("FFC7CE"); err != nil {
		return b, err
	}
	return b, nil
}

func (b bandStyles) styleFor(score float64) int {
	switch {
	case score >= 0.5:
		return b.strong
	case score >= 0.2:
		return b.fair
	default:
		return b.weak
	}
}

func percent(score float64) float64 {
	return job.Application{MatchScore: score}.MatchPercent()
}
