package export

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

const (
	summarySheet = "Summary"
	peopleSheet  = "People"
	collabSheet  = "Collaborations"
)

// fill colours for the People sheet, lighter than the canvas colours so the
// text stays readable
var tierFills = map[domain.Tier]string{
	domain.TierHigh:   "C6EFCE",
	domain.TierMedium: "FFEB9C",
	domain.TierLow:    "FFC7CE",
}

// WriteExcel renders an HR-facing workbook for one analysis.
func WriteExcel(w io.Writer, r *domain.AnalysisResult, title string) error {
	f, err := buildWorkbook(r, title)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveExcel writes the workbook to path, adding the .xlsx extension when
// missing.
func SaveExcel(path string, r *domain.AnalysisResult, title string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := buildWorkbook(r, title)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func buildWorkbook(r *domain.AnalysisResult, title string) (*excelize.File, error) {
	if r == nil {
		return nil, fmt.Errorf("export: analysis result is nil")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{peopleSheet, collabSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := summarySheetRows(f, r, title); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := peopleSheetRows(f, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create people sheet: %w", err)
	}
	if err := collabSheetRows(f, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create collaborations sheet: %w", err)
	}
	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func summarySheetRows(f *excelize.File, r *domain.AnalysisResult, title string) error {
	if title == "" {
		title = "Organisational Network Report"
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 28)
	_ = f.SetColWidth(summarySheet, "B", "B", 40)

	hs, err := headerStyle(f)
	if err != nil {
		return err
	}

	rows := [][]any{
		{title},
		{},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Total People:", r.Metrics.TotalPeople},
		{"Total Collaborations:", r.Metrics.TotalCollaborations},
		{"Average Effectiveness:", round2(r.Metrics.AvgEffectiveness)},
		{"Organisational Silos:", r.Metrics.NumSilos},
		{},
		{"Tier", "People"},
	}
	counts := map[domain.Tier]int{}
	for _, n := range r.Nodes {
		counts[n.Tier]++
	}
	for _, t := range []domain.Tier{domain.TierHigh, domain.TierMedium, domain.TierLow} {
		rows = append(rows, []any{string(t), counts[t]})
	}

	for i, vals := range rows {
		if err := writeRow(f, summarySheet, i+1, vals...); err != nil {
			return err
		}
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", hs); err != nil {
		return err
	}
	return f.SetCellStyle(summarySheet, "A9", "B9", hs)
}

// peopleSheetRows lists people ranked by weighted effectiveness, highest first.
func peopleSheetRows(f *excelize.File, r *domain.AnalysisResult) error {
	hs, err := headerStyle(f)
	if err != nil {
		return err
	}
	fills := map[domain.Tier]int{}
	for t, c := range tierFills {
		id, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{c}, Pattern: 1}})
		if err != nil {
			return err
		}
		fills[t] = id
	}

	headers := []any{"Rank", "ID", "Name", "Unit", "Role", "Score", "Tier", "Collaborators", "Centrality", "Effectiveness"}
	if err := writeRow(f, peopleSheet, 1, headers...); err != nil {
		return err
	}
	if err := f.SetCellStyle(peopleSheet, "A1", "J1", hs); err != nil {
		return err
	}
	_ = f.SetColWidth(peopleSheet, "C", "E", 22)

	ranked := make([]domain.NodeMetrics, len(r.Nodes))
	copy(ranked, r.Nodes)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Effectiveness > ranked[j].Effectiveness })

	for i, n := range ranked {
		row := i + 2
		if err := writeRow(f, peopleSheet, row,
			i+1, n.ID, n.Name, n.Unit, n.Role, round2(n.Score), string(n.Tier),
			n.Degree, round2(n.Centrality), round2(n.Effectiveness)); err != nil {
			return err
		}
		if err := f.SetCellStyle(peopleSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("J%d", row), fills[n.Tier]); err != nil {
			return err
		}
	}

	return f.SetPanes(peopleSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func collabSheetRows(f *excelize.File, r *domain.AnalysisResult) error {
	hs, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := writeRow(f, collabSheet, 1, "Source", "Source Unit", "Target", "Target Unit", "Project"); err != nil {
		return err
	}
	if err := f.SetCellStyle(collabSheet, "A1", "E1", hs); err != nil {
		return err
	}

	for i, e := range r.Edges {
		var su, tu string
		if n := r.Node(e.Source); n != nil {
			su = n.Unit
		}
		if n := r.Node(e.Target); n != nil {
			tu = n.Unit
		}
		if err := writeRow(f, collabSheet, i+2, e.Source, su, e.Target, tu, e.Label); err != nil {
			return err
		}
	}
	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
