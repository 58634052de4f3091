package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	detailSheet  = "responses"
	summarySheet = "summary"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

// ExportResult is a ready-to-download artifact.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService serializes a session's record log. Exports are a pure read
// of the records: session state is never touched, so a failed export can
// simply be retried.
type ExportService struct {
	now func() time.Time
}

func NewExportService() *ExportService {
	return &ExportService{now: func() time.Time { return time.Now().UTC() }}
}

func (s *ExportService) filename(participantID, ext string) string {
	if participantID == "" {
		participantID = AnonymousParticipant
	}
	return fmt.Sprintf("survey_%s_%s.%s", participantID, s.now().Format("20060102_150405"), ext)
}

// ExportXLSX builds a workbook with a detail sheet (one row per record, in
// append order) and a single-row summary sheet. An empty record log still
// yields a structurally valid workbook with an all-zero summary.
func (s *ExportService) ExportXLSX(participantID string, records []Record) (*ExportResult, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return nil, NewExportError(err.Error())
	}
	header := make([]any, len(recordHeader))
	for i, h := range recordHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(detailSheet, "A1", &header); err != nil {
		return nil, NewExportError(err.Error())
	}
	for i, r := range records {
		var limit any = ""
		if r.CharLimit != nil {
			limit = *r.CharLimit
		}
		row := []any{
			r.ParticipantID, r.QuestionNumber, r.QuestionTitle, r.QuestionNote,
			r.Answer, r.CharCount, r.TimeSec, r.CharsPerSec, r.RecordedAt, limit,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, NewExportError(err.Error())
		}
		if err := f.SetSheetRow(detailSheet, cell, &row); err != nil {
			return nil, NewExportError(err.Error())
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, NewExportError(err.Error())
	}
	sum := Summarize(records)
	if err := f.SetSheetRow(summarySheet, "A1", &[]any{
		"total_questions", "total_chars", "total_time_sec", "overall_chars_per_sec",
	}); err != nil {
		return nil, NewExportError(err.Error())
	}
	if err := f.SetSheetRow(summarySheet, "A2", &[]any{
		sum.TotalQuestions, sum.TotalChars, sum.TotalTimeSec, sum.OverallCharsPerSec,
	}); err != nil {
		return nil, NewExportError(err.Error())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewExportError(err.Error())
	}
	return &ExportResult{
		Filename:    s.filename(participantID, "xlsx"),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

// ExportCSV renders the detail rows only, for consumers that want a plain
// text table instead of a workbook.
func (s *ExportService) ExportCSV(participantID string, records []Record) (*ExportResult, error) {
	b, err := ExportDetailCSV(records)
	if err != nil {
		return nil, NewExportError(err.Error())
	}
	return &ExportResult{
		Filename:    s.filename(participantID, "csv"),
		ContentType: csvContentType,
		Data:        b,
	}, nil
}
