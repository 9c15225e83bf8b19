package export_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/export"
)

func person(name string, sellerCompleted, sellerNoShow int, avg *float64, avgCount int) domain.PersonStats {
	showRate := 0.0
	if sellerCompleted+sellerNoShow > 0 {
		showRate = float64(sellerCompleted) / float64(sellerCompleted+sellerNoShow)
	}
	return domain.PersonStats{
		User: domain.UserSummary{ID: uuid.New(), Name: name, Email: name + "@example.com"},
		AsSeller: domain.SellerBreakdown{
			RoleBreakdown: domain.RoleBreakdown{
				Total:     sellerCompleted + sellerNoShow,
				Completed: sellerCompleted,
				NoShow:    sellerNoShow,
				ShowRate:  showRate,
			},
			AvgQualityScore:   avg,
			QualityScoreCount: avgCount,
		},
	}
}

func TestPersonStatsWorkbook_RowsAndSummary(t *testing.T) {
	highAvg := 5.0
	lowAvg := 1.0
	persons := []domain.PersonStats{
		person("Alice", 1, 0, &highAvg, 1),
		person("Bob", 15, 5, &lowAvg, 20),
	}

	data, err := export.PersonStatsWorkbook(persons)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Per person")
	require.NoError(t, err)
	// header + 2 persons + team summary
	require.Len(t, rows, 4)

	assert.Equal(t, "Namn", rows[0][0])
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "Bob", rows[2][0])
	assert.Equal(t, "Totalt", rows[3][0])

	// Team quality is count-weighted: (5.0*1 + 1.0*20) / 21, far below the
	// unweighted mean of the two per-person averages.
	teamQuality, err := f.GetCellValue("Per person", "K4")
	require.NoError(t, err)
	assert.Contains(t, teamQuality, "1.19")
}

func TestPersonStatsWorkbook_EmptyQualityCellStaysEmpty(t *testing.T) {
	persons := []domain.PersonStats{
		person("Alice", 2, 1, nil, 0),
	}

	data, err := export.PersonStatsWorkbook(persons)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("Per person", "K2")
	require.NoError(t, err)
	assert.Empty(t, cell)

	summary, err := f.GetCellValue("Per person", "K3")
	require.NoError(t, err)
	assert.Empty(t, summary)
}
