package sheets_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gsheets-mcp/internal/nango"
	"github.com/teemow/gsheets-mcp/internal/server"
	"github.com/teemow/gsheets-mcp/internal/sheets"
)

// newTestContext wires a server context against stub Nango and Sheets
// endpoints so handlers can run end to end.
func newTestContext(t *testing.T, sheetsHandler http.HandlerFunc) *server.ServerContext {
	t.Helper()

	nangoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"credentials": {"access_token": "test-token", "expires_at": "2099-01-01T00:00:00Z"}}`))
	}))
	t.Cleanup(nangoSrv.Close)

	sheetsSrv := httptest.NewServer(sheetsHandler)
	t.Cleanup(sheetsSrv.Close)

	cfg := nango.Config{
		ConnectionID:  "conn-1",
		IntegrationID: "google-sheet",
		BaseURL:       nangoSrv.URL,
		SecretKey:     "secret",
	}
	provider := nango.NewProvider(nango.NewClient(cfg), nil)
	client := sheets.NewClient(provider, sheets.WithBaseURL(sheetsSrv.URL))

	sc := server.NewServerContext(context.Background(), cfg, provider, client)
	sc.SetVersion("test")
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestAvailableTools(t *testing.T) {
	all := availableTools(false)
	if len(all) != len(sheets.OperationNames())+len(utilityToolNames) {
		t.Errorf("availableTools(false) returned %d tools, want %d",
			len(all), len(sheets.OperationNames())+len(utilityToolNames))
	}

	readOnly := availableTools(true)
	for _, name := range readOnly {
		if writeOperations[name] {
			t.Errorf("read-only tool list contains write operation %q", name)
		}
		if name == "sheets_test_connection" {
			t.Error("read-only tool list contains sheets_test_connection")
		}
	}
	if len(readOnly) >= len(all) {
		t.Errorf("read-only list (%d) should be shorter than full list (%d)", len(readOnly), len(all))
	}
}

func TestWriteOperationsExist(t *testing.T) {
	for name := range writeOperations {
		if _, ok := sheets.Operations[name]; !ok {
			t.Errorf("writeOperations lists unknown operation %q", name)
		}
	}
}

func TestRenderResult(t *testing.T) {
	type payload struct {
		Range string `json:"range,omitempty"`
	}

	out := renderResult(json.RawMessage(`{"range": "Sheet1!A1", "extra": true}`), &payload{})
	var decoded payload
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("renderResult output is not JSON: %v", err)
	}
	if decoded.Range != "Sheet1!A1" {
		t.Errorf("range = %q, want %q", decoded.Range, "Sheet1!A1")
	}

	// Undecodable payloads pass through untouched
	raw := json.RawMessage(`[1, 2, 3]`)
	if got := renderResult(raw, &payload{}); got != string(raw) {
		t.Errorf("renderResult fallback = %q, want %q", got, string(raw))
	}
}

func TestRegisterSheetsTools(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	s := mcpserver.NewMCPServer("test", "0.0.0")
	if err := RegisterSheetsTools(s, sc, false); err != nil {
		t.Fatalf("RegisterSheetsTools() error = %v", err)
	}

	s = mcpserver.NewMCPServer("test", "0.0.0")
	if err := RegisterSheetsTools(s, sc, true); err != nil {
		t.Fatalf("RegisterSheetsTools(readOnly) error = %v", err)
	}
}

func TestServerInfoHandler(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	result, err := serverInfoHandler(sc, true)(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var info struct {
		ServerName     string          `json:"server_name"`
		AuthMethod     string          `json:"auth_method"`
		AuthConfigured bool            `json:"auth_configured"`
		ReadOnly       bool            `json:"read_only"`
		EnvVars        map[string]bool `json:"environment_variables"`
		AvailableTools []string        `json:"available_tools"`
	}
	if err := json.Unmarshal([]byte(textOf(t, result)), &info); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}

	if info.AuthMethod != "nango_oauth" {
		t.Errorf("auth_method = %q, want %q", info.AuthMethod, "nango_oauth")
	}
	if !info.AuthConfigured {
		t.Error("auth_configured = false, want true")
	}
	if !info.ReadOnly {
		t.Error("read_only = false, want true")
	}
	for name, set := range info.EnvVars {
		if !set {
			t.Errorf("environment_variables[%q] = false, want true", name)
		}
	}
	if len(info.AvailableTools) == 0 {
		t.Error("available_tools is empty")
	}
}

func TestTestConnectionHandler(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"spreadsheetId": "probe-1", "spreadsheetUrl": "https://docs.google.com/spreadsheets/d/probe-1"}`))
	})

	result, err := testConnectionHandler(sc)(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	if gotPath != "/v4/spreadsheets" {
		t.Errorf("path = %q, want %q", gotPath, "/v4/spreadsheets")
	}
	props, _ := gotBody["properties"].(map[string]any)
	if props["title"] != testSpreadsheetTitle {
		t.Errorf("title = %v, want %q", props["title"], testSpreadsheetTitle)
	}

	var report struct {
		Success bool   `json:"success"`
		ID      string `json:"test_spreadsheet_id"`
		URL     string `json:"test_spreadsheet_url"`
	}
	if err := json.Unmarshal([]byte(textOf(t, result)), &report); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if !report.Success {
		t.Error("success = false, want true")
	}
	if report.ID != "probe-1" {
		t.Errorf("test_spreadsheet_id = %q, want %q", report.ID, "probe-1")
	}
}

func TestTestConnectionHandler_Failure(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "denied"}}`))
	})

	result, err := testConnectionHandler(sc)(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var report struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(textOf(t, result)), &report); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if report.Success {
		t.Error("success = true, want false")
	}
	if report.Error == "" {
		t.Error("error message is empty")
	}
}

func TestRefreshTokenHandler(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	result, err := refreshTokenHandler(sc)(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var report struct {
		Success     bool   `json:"success"`
		TokenLength int    `json:"token_length"`
		RefreshTime string `json:"refresh_time"`
	}
	if err := json.Unmarshal([]byte(textOf(t, result)), &report); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if !report.Success {
		t.Error("success = false, want true")
	}
	if report.TokenLength != len("test-token") {
		t.Errorf("token_length = %d, want %d", report.TokenLength, len("test-token"))
	}
	if _, err := time.Parse(time.RFC3339, report.RefreshTime); err != nil {
		t.Errorf("refresh_time is not RFC3339: %v", err)
	}
}
