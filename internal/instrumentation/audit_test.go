package instrumentation

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

// Test constants to reduce string repetition and satisfy goconst
const (
	testToolGet    = "sheets_get_values"
	testToolUpdate = "sheets_update_values"
	testOperation  = "values_get"
	testSheetID    = "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"
)

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation(testToolGet)

	// Verify initial state
	if ti.Tool != testToolGet {
		t.Errorf("Tool = %q, want %q", ti.Tool, testToolGet)
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}
	if ti.Duration != 0 {
		t.Error("Duration should be zero before Complete")
	}

	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("Success should be true after CompleteSuccess")
	}
	if ti.Duration <= 0 {
		t.Error("Duration should be positive after Complete")
	}
	if ti.Error != "" {
		t.Errorf("Error = %q, want empty", ti.Error)
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation(testToolUpdate)
	ti.CompleteWithError(errors.New("quota exceeded"))

	if ti.Success {
		t.Error("Success should be false after CompleteWithError")
	}
	if ti.Error != "quota exceeded" {
		t.Errorf("Error = %q, want %q", ti.Error, "quota exceeded")
	}
}

func TestToolInvocation_WithOperation(t *testing.T) {
	ti := NewToolInvocation(testToolGet)
	ti.WithOperation(testOperation)

	if ti.Operation != testOperation {
		t.Errorf("Operation = %q, want %q", ti.Operation, testOperation)
	}
}

func TestToolInvocation_WithSpreadsheet(t *testing.T) {
	ti := NewToolInvocation(testToolGet)
	ti.WithSpreadsheet(testSheetID)

	if ti.SpreadsheetID != testSheetID {
		t.Errorf("SpreadsheetID = %q, want %q", ti.SpreadsheetID, testSheetID)
	}
}

func TestToolInvocation_Status(t *testing.T) {
	ti := NewToolInvocation(testToolGet)
	ti.CompleteSuccess()
	if ti.Status() != StatusSuccess {
		t.Errorf("Status = %q, want %q", ti.Status(), StatusSuccess)
	}

	ti = NewToolInvocation(testToolGet)
	ti.CompleteWithError(errors.New("boom"))
	if ti.Status() != StatusError {
		t.Errorf("Status = %q, want %q", ti.Status(), StatusError)
	}
}

func attrMapOf(attrs []slog.Attr) map[string]slog.Attr {
	m := make(map[string]slog.Attr, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a
	}
	return m
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation(testToolGet).
		WithOperation(testOperation).
		WithSpreadsheet(testSheetID)
	ti.CompleteSuccess()

	attrMap := attrMapOf(ti.LogAttrs())

	if tool := attrMap["tool"].Value.String(); tool != testToolGet {
		t.Errorf("tool = %q, want %q", tool, testToolGet)
	}
	if op := attrMap["operation"].Value.String(); op != testOperation {
		t.Errorf("operation = %q, want %q", op, testOperation)
	}
	if id := attrMap["spreadsheet_id"].Value.String(); id != testSheetID {
		t.Errorf("spreadsheet_id = %q, want %q", id, testSheetID)
	}
	if _, ok := attrMap["error"]; ok {
		t.Error("error attribute should be absent on success")
	}
	if _, ok := attrMap["kind"]; ok {
		t.Error("kind attribute should be absent on success")
	}
}

func TestToolInvocation_LogAttrs_WithError(t *testing.T) {
	ti := NewToolInvocation(testToolUpdate).
		WithOperation("values_update")
	ti.ErrorKind = "rate_limit"
	ti.CompleteWithError(errors.New("Quota exceeded: too many requests"))

	attrMap := attrMapOf(ti.LogAttrs())

	if errMsg := attrMap["error"].Value.String(); errMsg != "Quota exceeded: too many requests" {
		t.Errorf("error = %q", errMsg)
	}
	if kind := attrMap["kind"].Value.String(); kind != "rate_limit" {
		t.Errorf("kind = %q, want %q", kind, "rate_limit")
	}
	if attrMap["success"].Value.Bool() {
		t.Error("success should be false")
	}
}

func TestToolInvocation_LogAttrs_MinimalFields(t *testing.T) {
	ti := NewToolInvocation("sheets_server_info")
	ti.CompleteSuccess()

	attrMap := attrMapOf(ti.LogAttrs())

	for _, absent := range []string{"operation", "spreadsheet_id", "trace_id", "span_id", "error", "kind"} {
		if _, ok := attrMap[absent]; ok {
			t.Errorf("attribute %q should be absent", absent)
		}
	}
}

func TestToolInvocation_MethodChaining(t *testing.T) {
	ti := NewToolInvocation(testToolGet).
		WithOperation(testOperation).
		WithSpreadsheet(testSheetID).
		CompleteSuccess()

	if ti.Operation != testOperation {
		t.Errorf("Operation = %q, want %q", ti.Operation, testOperation)
	}
	if ti.SpreadsheetID != testSheetID {
		t.Errorf("SpreadsheetID = %q, want %q", ti.SpreadsheetID, testSheetID)
	}
	if !ti.Success {
		t.Error("Success should be true")
	}
}

func TestAuditLogger_New(t *testing.T) {
	al := NewAuditLogger(nil)
	if al == nil {
		t.Fatal("NewAuditLogger returned nil")
	}

	al = NewAuditLogger(slog.Default())
	if al == nil {
		t.Fatal("NewAuditLogger returned nil")
	}
}

func TestAuditLogger_LogToolInvocation_Success(t *testing.T) {
	al := NewAuditLogger(slog.Default())

	ti := NewToolInvocation(testToolGet).
		WithOperation(testOperation).
		CompleteSuccess()

	// Should not panic
	al.LogToolInvocation(ti)
}

func TestAuditLogger_LogToolInvocation_Failure(t *testing.T) {
	al := NewAuditLogger(slog.Default())

	ti := NewToolInvocation(testToolUpdate).
		WithOperation("values_update").
		CompleteWithError(errors.New("boom"))

	al.LogToolInvocation(ti)
}

func TestAuditLogger_Disabled(t *testing.T) {
	al := NewAuditLoggerWithConfig(slog.Default(), AuditLoggingConfig{Enabled: false})

	ti := NewToolInvocation(testToolGet).CompleteSuccess()
	al.LogToolInvocation(ti)

	al.SetEnabled(true)
	al.LogToolInvocation(ti)
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ti := NewToolInvocation(testToolGet)
	ti.WithSpanContext(context.Background())

	if ti.TraceID != "" {
		t.Errorf("TraceID = %q, want empty without a span", ti.TraceID)
	}
	if ti.SpanID != "" {
		t.Errorf("SpanID = %q, want empty without a span", ti.SpanID)
	}
}

func TestToolInvocation_Complete_NilError(t *testing.T) {
	ti := NewToolInvocation(testToolGet)
	ti.Complete(true, nil)

	if ti.Error != "" {
		t.Errorf("Error = %q, want empty", ti.Error)
	}
}
