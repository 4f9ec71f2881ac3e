package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/internal/opportunity"
)

type fakeWriter struct {
	cleared  []string
	updated  []string
	values   [][]any
	clearErr error
}

func (f *fakeWriter) ClearValues(_ context.Context, id, rng string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, id+"/"+rng)
	return nil
}

func (f *fakeWriter) UpdateValues(_ context.Context, id, rng string, values [][]any) (int64, error) {
	f.updated = append(f.updated, id+"/"+rng)
	f.values = values
	return int64(len(values)), nil
}

func sampleRows() []opportunity.Row {
	level, link := "Senior", "https://jobs.example/1"
	minS, maxS := 100000, 130000
	a := &domain.JobAssessment{
		ID:             11,
		FitScore:       6,
		ProfileVersion: 2,
		UpdatedAt:      domain.Timestamp{Time: time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC)},
	}
	return []opportunity.Row{
		{
			Opportunity: domain.Opportunity{ID: 1, Title: "SRE", Company: "Acme", Level: &level, MinSalary: &minS, MaxSalary: &maxS, PostingLink: &link, Status: domain.StatusApplied},
			Entry:       assessment.EntryFor(a),
			Freshness:   assessment.FreshnessOutdated,
		},
		{
			Opportunity: domain.Opportunity{ID: 2, Title: "Dev", Company: "Globex", Status: domain.StatusToApply},
			Freshness:   assessment.FreshnessNone,
		},
		{
			Opportunity: domain.Opportunity{ID: 3, Title: "Ops", Company: "Initech"},
			Entry:       assessment.EntryFor(a),
			Err:         errors.New("timeout"),
		},
	}
}

func TestRecords(t *testing.T) {
	recs := Records(sampleRows())
	if len(recs) != 3 {
		t.Fatalf("records = %d", len(recs))
	}

	r := recs[0]
	if !r.Assessed || r.FitScore != 6 || r.Band != "Excellent" || r.ProfileVersion != 2 || r.AssessmentID != 11 {
		t.Errorf("assessed record = %+v", r)
	}
	if r.Level != "Senior" || r.PostingLink != "https://jobs.example/1" {
		t.Errorf("optional fields = %+v", r)
	}
	if recs[1].Assessed {
		t.Errorf("absent assessment marked assessed")
	}
	if recs[2].Assessed {
		t.Errorf("failed load exported with assessment columns")
	}
}

func TestSheetValues(t *testing.T) {
	values := SheetValues(Records(sampleRows()))
	if len(values) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(values))
	}
	if values[0][0] != "ID" || len(values[0]) != len(values[1]) {
		t.Errorf("header = %v", values[0])
	}

	row := values[1]
	want := map[int]any{
		4:  "$100,000 – $130,000",
		5:  "Applied",
		6:  "6/7",
		7:  "Excellent",
		8:  "outdated",
		10: "2026-02-03 09:30",
	}
	for i, w := range want {
		if row[i] != w {
			t.Errorf("column %d = %v, want %v", i, row[i], w)
		}
	}

	if values[2][6] != "" || values[2][8] != "none" {
		t.Errorf("unassessed row = %v", values[2])
	}
}

func TestExport(t *testing.T) {
	w := &fakeWriter{}
	e := NewSheetsExporter(w, nil)

	res, err := e.Export(context.Background(), SheetTarget{SpreadsheetID: "sheet-1"}, Records(sampleRows()))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Tab != "Opportunities" || res.WrittenRows != 3 {
		t.Errorf("result = %+v", res)
	}
	if len(w.cleared) != 1 || w.cleared[0] != "sheet-1/Opportunities!A:Z" {
		t.Errorf("cleared = %v", w.cleared)
	}
	if len(w.updated) != 1 || w.updated[0] != "sheet-1/Opportunities!A1" {
		t.Errorf("updated = %v", w.updated)
	}
}

func TestExportErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewSheetsExporter(nil, nil).Export(ctx, SheetTarget{SpreadsheetID: "x"}, nil); err == nil {
		t.Errorf("expected error without writer")
	}
	if _, err := NewSheetsExporter(&fakeWriter{}, nil).Export(ctx, SheetTarget{}, nil); err == nil {
		t.Errorf("expected error without spreadsheet id")
	}

	w := &fakeWriter{clearErr: errors.New("403")}
	if _, err := NewSheetsExporter(w, nil).Export(ctx, SheetTarget{SpreadsheetID: "x", Tab: "T"}, nil); err == nil {
		t.Errorf("expected clear failure")
	}
	if len(w.updated) != 0 {
		t.Errorf("update ran after clear failed")
	}
}
