package tabulate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("wahis.lib.tabulate")

// marker substring of the platform's error page, present when the
// source failed to render the real report
const placeholderMarker = "Application Error"

// Document is one materialized report page, addressed by its id.
type Document struct {
	ReportID string
	Body     []byte
}

// DocumentResult is the relational triple extracted from one document.
type DocumentResult struct {
	Report    Report
	Outbreaks *Frame
	Tests     *Frame
}

// ProcessDocument converts one report document into its triple. A
// placeholder page returns an ErrPlaceholder-wrapped error and an empty
// triple; structural mismatches return a StructuralError. Both are
// scoped to this report only.
func ProcessDocument(ctx context.Context, doc Document) (DocumentResult, error) {
	ctx, span := tracer.Start(ctx, "ProcessDocument")
	defer span.End()
	span.SetAttributes(attribute.String("report_id", doc.ReportID))

	empty := DocumentResult{
		Outbreaks: NewFrame("Report ID", "Outbreak #"),
		Tests:     NewFrame("Report ID", "Test #"),
	}

	tables, err := ParseTables(bytes.NewReader(doc.Body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse document html")
		return empty, fmt.Errorf("report %s: %w", doc.ReportID, err)
	}
	if len(tables) == 0 {
		if bytes.Contains(doc.Body, []byte(placeholderMarker)) {
			return empty, fmt.Errorf("report %s: %w", doc.ReportID, ErrPlaceholder)
		}
		err := structuralf("document has no parseable tables")
		span.RecordError(err)
		span.SetStatus(codes.Error, "no tables")
		return empty, fmt.Errorf("report %s: %w", doc.ReportID, err)
	}

	layout, err := Classify(tables)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification failed")
		return empty, fmt.Errorf("report %s: %w", doc.ReportID, err)
	}

	report, err := ExtractReport(layout, doc.ReportID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "report extraction failed")
		return empty, fmt.Errorf("report %s: %w", doc.ReportID, err)
	}

	outbreaks := ExtractOutbreaks(layout, doc.ReportID, report.Get("Country"))
	tests := ExtractTests(layout, doc.ReportID)

	// denormalized copies of the report's fields, leading every
	// outbreak and test row
	for _, frame := range []*Frame{outbreaks, tests} {
		frame.InsertConst(0, "Disease", report.Get("Disease"))
		frame.InsertConst(1, "Country", report.Get("Country"))
		frame.InsertConst(2, "Report date", report.Get("Report date"))
	}

	return DocumentResult{
		Report:    report,
		Outbreaks: outbreaks,
		Tests:     tests,
	}, nil
}

// BatchResult holds the three stacked datasets of one run plus the
// per-kind outcome counts surfaced to the operator.
type BatchResult struct {
	Reports   *Frame
	Outbreaks *Frame
	Tests     *Frame

	Parsed       int
	Placeholders int
	Failed       int
}

// ProcessBatch runs every document through ProcessDocument, isolating
// failures at this boundary: a bad report is logged and counted, never
// allowed to abort the batch. Processing is single-pass and follows the
// given document order, so identical input yields identical output.
func ProcessBatch(ctx context.Context, docs []Document) BatchResult {
	ctx, span := tracer.Start(ctx, "ProcessBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("documents", len(docs)))

	result := BatchResult{
		Reports:   NewFrame("Report ID"),
		Outbreaks: NewFrame("Report ID", "Outbreak #"),
		Tests:     NewFrame("Report ID", "Test #"),
	}

	for _, doc := range docs {
		res, err := ProcessDocument(ctx, doc)
		if errors.Is(err, ErrPlaceholder) {
			// the empty triple carries no usable fields; it is
			// dropped from the reports dataset here
			slog.WarnContext(ctx, "report affected by an application error",
				"report_id", doc.ReportID)
			result.Placeholders++
			continue
		}
		if err != nil {
			kind := "error"
			var structural *StructuralError
			if errors.As(err, &structural) {
				kind = "structural_mismatch"
			}
			slog.ErrorContext(ctx, "failed to process report",
				"report_id", doc.ReportID, "kind", kind, "err", err)
			result.Failed++
			continue
		}

		if !res.Report.Empty() {
			cols := make([]string, len(res.Report.Fields))
			vals := make([]any, len(res.Report.Fields))
			for i, f := range res.Report.Fields {
				cols[i] = f.Name
				vals[i] = f.Value
			}
			result.Reports.Append([]any{res.Report.ID}, cols, vals)
		}
		result.Outbreaks.Concat(res.Outbreaks)
		result.Tests.Concat(res.Tests)
		result.Parsed++
	}

	return result
}
