package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	tableReports = "reports"

	opInsertReport = "insert_report"
)

// InsertReport persists a generated report. ReportData must be valid JSON.
func (s Store) InsertReport(ctx context.Context, report core.Report) error {
	sqlQuery, err := s.toSQL(ctx, opInsertReport, s.builder().Insert(tableReports).Rows(goqu.Record{
		"report_id":      report.ReportID.String(),
		"generated_by":   report.GeneratedBy.String(),
		"report_type":    report.ReportType,
		"date_generated": report.DateGenerated.UTC(),
		"report_data":    goqu.L("?::jsonb", string(report.ReportData)),
	}))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opInsertReport, sqlQuery)
}
