package export

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobfit/internal/render"
	"github.com/honeycarbs/jobfit/pkg/logging"
)

const defaultTab = "Opportunities"

var sheetHeader = []any{
	"ID", "Title", "Company", "Level", "Salary", "Status",
	"Fit score", "Band", "Freshness", "Posting link", "Assessed at",
}

// SheetsWriter is the part of the Sheets client used for export
type SheetsWriter interface {
	ClearValues(ctx context.Context, spreadsheetID, rng string) error
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int64, error)
}

// SheetTarget names the tab to overwrite
type SheetTarget struct {
	SpreadsheetID string
	Tab           string
}

// SheetsResult reports a finished export
type SheetsResult struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
}

// SheetsExporter replaces a tab with the current opportunity list
type SheetsExporter struct {
	writer SheetsWriter
	logger *logging.Logger
}

// NewSheetsExporter creates an exporter; writer may be nil when sheets are not configured
func NewSheetsExporter(writer SheetsWriter, logger *logging.Logger) *SheetsExporter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SheetsExporter{writer: writer, logger: logger}
}

// Export clears the tab and writes a header plus one row per record
func (e *SheetsExporter) Export(ctx context.Context, target SheetTarget, records []Record) (SheetsResult, error) {
	if e.writer == nil {
		return SheetsResult{}, fmt.Errorf("sheets: client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)")
	}
	if target.SpreadsheetID == "" {
		return SheetsResult{}, fmt.Errorf("sheets: spreadsheet id is required")
	}
	if target.Tab == "" {
		target.Tab = defaultTab
	}

	result := SheetsResult{SpreadsheetID: target.SpreadsheetID, Tab: target.Tab}

	if err := e.writer.ClearValues(ctx, target.SpreadsheetID, target.Tab+"!A:Z"); err != nil {
		return result, err
	}

	if _, err := e.writer.UpdateValues(ctx, target.SpreadsheetID, target.Tab+"!A1", SheetValues(records)); err != nil {
		return result, err
	}

	result.WrittenRows = len(records)
	result.CompletedAt = time.Now().UTC()
	e.logger.Info("sheets export complete", "spreadsheet_id", target.SpreadsheetID, "tab", target.Tab, "rows", result.WrittenRows)

	return result, nil
}

// SheetValues lays records out under the header row
func SheetValues(records []Record) [][]any {
	values := make([][]any, 0, len(records)+1)
	values = append(values, sheetHeader)
	for _, r := range records {
		score, band, freshness, at := "", "", r.Freshness.String(), ""
		if r.Assessed {
			score = fmt.Sprintf("%d/7", r.FitScore)
			band = r.Band
			if !r.UpdatedAt.IsZero() {
				at = r.UpdatedAt.UTC().Format("2006-01-02 15:04")
			}
		}
		values = append(values, []any{
			r.OpportunityID,
			r.Title,
			r.Company,
			r.Level,
			render.SalaryRange(r.MinSalary, r.MaxSalary),
			string(r.Status),
			score,
			band,
			freshness,
			r.PostingLink,
			at,
		})
	}
	return values
}
