package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// recordHeader fixes the detail column order for both export formats.
var recordHeader = []string{
	"participant_id", "question_number", "question_title", "question_note",
	"answer", "char_count", "time_sec", "chars_per_sec", "recorded_at", "char_limit",
}

func recordRow(r Record) []string {
	limit := ""
	if r.CharLimit != nil {
		limit = strconv.Itoa(*r.CharLimit)
	}
	return []string{
		r.ParticipantID,
		strconv.Itoa(r.QuestionNumber),
		r.QuestionTitle,
		r.QuestionNote,
		r.Answer,
		strconv.Itoa(r.CharCount),
		strconv.FormatFloat(r.TimeSec, 'f', -1, 64),
		strconv.FormatFloat(r.CharsPerSec, 'f', -1, 64),
		r.RecordedAt,
		limit,
	}
}

// ExportDetailCSV renders one row per record, in append order.
func ExportDetailCSV(records []Record) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write(recordHeader)
	for _, r := range records {
		if err := w.Write(recordRow(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Summarize aggregates the record log. An empty log yields all zeros.
func Summarize(records []Record) Summary {
	sum := Summary{TotalQuestions: len(records)}
	totalTime := 0.0
	for _, r := range records {
		sum.TotalChars += r.CharCount
		totalTime += r.TimeSec
	}
	sum.TotalTimeSec = roundTo(totalTime, 3)
	if totalTime > 0 {
		sum.OverallCharsPerSec = roundTo(float64(sum.TotalChars)/totalTime, 6)
	}
	return sum
}
