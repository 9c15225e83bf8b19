// Package export renders statistics into downloadable workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/stats"
)

const personSheet = "Per person"

var personHeaders = []string{
	"Namn", "E-post",
	"Bokade (bokare)", "Genomförda (bokare)", "No-shows (bokare)", "Show rate (bokare)",
	"Bokade (säljare)", "Genomförda (säljare)", "No-shows (säljare)", "Show rate (säljare)",
	"Kvalitet (snitt)", "Kvalitet (antal)",
}

// PersonStatsWorkbook renders the per-person breakdown as an xlsx workbook.
// The final row is the team summary: summed counts, recomputed rates and the
// count-weighted quality average, so sparse scorers do not skew it.
func PersonStatsWorkbook(persons []domain.PersonStats) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(personSheet)
	if err != nil {
		return nil, fmt.Errorf("export.PersonStatsWorkbook: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range personHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(personSheet, cell, header); err != nil {
			return nil, fmt.Errorf("export.PersonStatsWorkbook header: %w", err)
		}
	}

	var teamBooker, teamSeller domain.RoleBreakdown
	var qualitySamples []stats.QualitySample

	for i, p := range persons {
		row := i + 2
		values := []interface{}{
			p.User.Name, p.User.Email,
			p.AsBooker.Total, p.AsBooker.Completed, p.AsBooker.NoShow, p.AsBooker.ShowRate,
			p.AsSeller.Total, p.AsSeller.Completed, p.AsSeller.NoShow, p.AsSeller.ShowRate,
			qualityCell(p.AsSeller.AvgQualityScore), p.AsSeller.QualityScoreCount,
		}
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}

		teamBooker.Total += p.AsBooker.Total
		teamBooker.Completed += p.AsBooker.Completed
		teamBooker.NoShow += p.AsBooker.NoShow
		teamSeller.Total += p.AsSeller.Total
		teamSeller.Completed += p.AsSeller.Completed
		teamSeller.NoShow += p.AsSeller.NoShow
		if p.AsSeller.AvgQualityScore != nil {
			qualitySamples = append(qualitySamples, stats.QualitySample{
				Avg:   *p.AsSeller.AvgQualityScore,
				Count: p.AsSeller.QualityScoreCount,
			})
		}
	}

	teamBooker.ShowRate, _ = stats.Rates(teamBooker.Completed, teamBooker.NoShow)
	teamSeller.ShowRate, _ = stats.Rates(teamSeller.Completed, teamSeller.NoShow)
	teamQuality := stats.WeightedQuality(qualitySamples)
	teamQualityCount := 0
	for _, s := range qualitySamples {
		teamQualityCount += s.Count
	}

	summaryRow := len(persons) + 2
	summary := []interface{}{
		"Totalt", "",
		teamBooker.Total, teamBooker.Completed, teamBooker.NoShow, teamBooker.ShowRate,
		teamSeller.Total, teamSeller.Completed, teamSeller.NoShow, teamSeller.ShowRate,
		qualityCell(teamQuality), teamQualityCount,
	}
	if err := setRow(f, summaryRow, summary); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export.PersonStatsWorkbook write: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(personSheet, cell, value); err != nil {
			return fmt.Errorf("export.PersonStatsWorkbook row %d: %w", row, err)
		}
	}
	return nil
}

// qualityCell renders a nil quality as an empty cell, not a zero.
func qualityCell(avg *float64) interface{} {
	if avg == nil {
		return ""
	}
	return *avg
}
