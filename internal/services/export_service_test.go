package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestExportService() *ExportService {
	svc := NewExportService()
	svc.now = func() time.Time { return time.Date(2025, 11, 4, 10, 30, 0, 0, time.UTC) }
	return svc
}

func TestExportXLSX(t *testing.T) {
	svc := newTestExportService()
	res, err := svc.ExportXLSX("P001", sampleRecords())
	require.NoError(t, err)
	require.Equal(t, "survey_P001_20251104_103000.xlsx", res.Filename)
	require.Equal(t, xlsxContentType, res.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(res.Data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(detailSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, recordHeader, rows[0][:len(recordHeader)])
	require.Equal(t, "P001", rows[1][0])
	require.Equal(t, "1", rows[1][1])
	require.Equal(t, "5", rows[1][5])
	require.Equal(t, "2.5", rows[1][7])
	require.Equal(t, "10", rows[1][9])

	sum, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, sum, 2)
	require.Equal(t, []string{"total_questions", "total_chars", "total_time_sec", "overall_chars_per_sec"}, sum[0])
	require.Equal(t, "2", sum[1][0])
	require.Equal(t, "13", sum[1][1])
	require.Equal(t, "6", sum[1][2])
}

func TestExportXLSXEmptyRecords(t *testing.T) {
	svc := newTestExportService()
	res, err := svc.ExportXLSX("", nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.Filename, "survey_anonymous_"))

	f, err := excelize.OpenReader(bytes.NewReader(res.Data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(detailSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "detail sheet must contain only the header")

	sum, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, sum, 2)
	require.Equal(t, []string{"0", "0", "0", "0"}, sum[1])
}

func TestExportCSVService(t *testing.T) {
	svc := newTestExportService()
	res, err := svc.ExportCSV("P001", sampleRecords())
	require.NoError(t, err)
	require.Equal(t, "survey_P001_20251104_103000.csv", res.Filename)
	require.Equal(t, csvContentType, res.ContentType)
	require.Contains(t, string(res.Data), "participant_id")
}
