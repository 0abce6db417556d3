package common

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gsheets-mcp/internal/instrumentation"
	"github.com/teemow/gsheets-mcp/internal/server"
	"github.com/teemow/gsheets-mcp/internal/sheets"
)

// ToolHandler is the handler shape the MCP server expects for tools.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// SheetsHandler runs a Google Sheets operation and returns the rendered
// response text. A returned *sheets.Error becomes a tool error result
// carrying the classified error as JSON.
type SheetsHandler func(ctx context.Context, request mcp.CallToolRequest) (string, error)

// InstrumentedToolHandler wraps a tool handler with metrics and audit logging.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				invocation.CompleteWithError(err)
				instrumentation.SetSpanError(span, err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, duration)
		if auditLogger := sc.AuditLogger(); auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}

// InstrumentedSheetsHandler wraps a Sheets tool handler. On top of the
// tool-level instrumentation it records the API operation metric with the
// classified error kind, and turns a failed operation into a tool error
// result instead of a protocol error.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedSheetsHandler("sheets_get_values", "values_get", sc, handler))
func InstrumentedSheetsHandler(toolName, operation string, sc *server.ServerContext, handler SheetsHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		spanAttrs := instrumentation.NewSpanAttributeBuilder().
			WithTool(toolName).
			WithOperation(operation)

		invocation := instrumentation.NewToolInvocation(toolName).
			WithOperation(operation)

		if id, ok := request.GetArguments()["spreadsheet_id"].(string); ok && id != "" {
			invocation.WithSpreadsheet(id)
			spanAttrs.WithSpreadsheetID(id)
		}

		ctx, span := instrumentation.StartSheetsAPISpan(ctx, operation, spanAttrs.Build()...)
		defer span.End()
		invocation.WithSpanContext(ctx)

		text, err := handler(ctx, request)
		duration := time.Since(start)

		var result *mcp.CallToolResult
		if err != nil {
			kind := errorKind(err)
			invocation.CompleteWithError(err)
			invocation.ErrorKind = kind
			instrumentation.SetSpanError(span, err)

			sc.Metrics().RecordSheetsOperation(ctx, operation, instrumentation.StatusError, kind, duration)
			sc.Metrics().RecordToolInvocation(ctx, toolName, instrumentation.StatusError, duration)

			result = mcp.NewToolResultError(ErrorPayload(err))
		} else {
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)

			sc.Metrics().RecordSheetsOperation(ctx, operation, instrumentation.StatusSuccess, "", duration)
			sc.Metrics().RecordToolInvocation(ctx, toolName, instrumentation.StatusSuccess, duration)

			result = mcp.NewToolResultText(text)
		}

		if auditLogger := sc.AuditLogger(); auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, nil
	}
}

// ErrorPayload renders a classified Sheets error as indented JSON so MCP
// clients can inspect the error kind programmatically. Other errors fall
// back to their message.
func ErrorPayload(err error) string {
	var apiErr *sheets.Error
	if errors.As(err, &apiErr) {
		if data, jsonErr := json.MarshalIndent(apiErr, "", "  "); jsonErr == nil {
			return string(data)
		}
	}
	return err.Error()
}

func errorKind(err error) string {
	var apiErr *sheets.Error
	if errors.As(err, &apiErr) {
		return string(apiErr.Kind)
	}
	return string(sheets.KindUnknown)
}
