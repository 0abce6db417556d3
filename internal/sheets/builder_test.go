package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, operation string, args map[string]any) *Request {
	t.Helper()
	req, cerr := buildRequest(Operations[operation], args)
	require.Nil(t, cerr)
	return req
}

func buildError(t *testing.T, operation string, args map[string]any) *Error {
	t.Helper()
	_, cerr := buildRequest(Operations[operation], args)
	require.NotNil(t, cerr)
	assert.Equal(t, KindValidation, cerr.Kind)
	return cerr
}

func TestBuildRequest_ValuesGet(t *testing.T) {
	req := mustBuild(t, "values_get", map[string]any{
		"spreadsheet_id": "sheet-123",
		"range":          "'My Sheet'!a1:c3",
	})

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/'My%20Sheet'!A1:C3", req.Path)
	assert.Nil(t, req.Body)
	assert.Empty(t, req.Query)
}

func TestBuildRequest_RequiredArgs(t *testing.T) {
	tests := []struct {
		operation string
		args      map[string]any
		wantMsg   string
	}{
		{"spreadsheets_create", map[string]any{}, "title is required"},
		{"spreadsheets_create", map[string]any{"title": ""}, "title is required"},
		{"values_get", map[string]any{"range": "A1"}, "spreadsheet_id is required"},
		{"values_get", map[string]any{"spreadsheet_id": "s"}, "range is required"},
		{"values_update", map[string]any{"spreadsheet_id": "s", "range": "A1"}, "values is required"},
		{"values_batch_get", map[string]any{"spreadsheet_id": "s", "ranges": []any{}}, "ranges is required"},
		{"spreadsheets_batch_update", map[string]any{"spreadsheet_id": "s"}, "requests is required"},
		{"developer_metadata_search", map[string]any{"spreadsheet_id": "s"}, "data_filters is required"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			cerr := buildError(t, tt.operation, tt.args)
			assert.Equal(t, tt.wantMsg, cerr.Message)
		})
	}
}

func TestBuildRequest_DefaultsOnlyWhenAbsent(t *testing.T) {
	values := []any{[]any{"a", "b"}}

	req := mustBuild(t, "values_update", map[string]any{
		"spreadsheet_id": "s",
		"range":          "A1:B1",
		"values":         values,
	})
	assert.Equal(t, "USER_ENTERED", req.Query.Get("valueInputOption"))
	assert.Equal(t, "ROWS", req.Body["majorDimension"])

	req = mustBuild(t, "values_update", map[string]any{
		"spreadsheet_id":     "s",
		"range":              "A1:B1",
		"values":             values,
		"value_input_option": "RAW",
		"major_dimension":    "COLUMNS",
	})
	assert.Equal(t, "RAW", req.Query.Get("valueInputOption"))
	assert.Equal(t, "COLUMNS", req.Body["majorDimension"])
}

func TestBuildRequest_InputOptionEnum(t *testing.T) {
	cerr := buildError(t, "values_update", map[string]any{
		"spreadsheet_id":     "s",
		"range":              "A1",
		"values":             []any{[]any{"x"}},
		"value_input_option": "INVALID",
	})
	assert.Equal(t, "value_input_option must be 'RAW' or 'USER_ENTERED'", cerr.Message)
}

func TestBuildRequest_InvalidRange(t *testing.T) {
	cerr := buildError(t, "values_get", map[string]any{
		"spreadsheet_id": "s",
		"range":          "InvalidRange",
	})
	assert.Contains(t, cerr.Message, `invalid range "InvalidRange"`)
}

func TestBuildRequest_RangeListIndexedErrors(t *testing.T) {
	cerr := buildError(t, "values_batch_get", map[string]any{
		"spreadsheet_id": "s",
		"ranges":         []any{"A1:B2", "Sheet1!C1", "bogus range"},
	})
	assert.Contains(t, cerr.Message, "ranges[2]:")
	assert.Contains(t, cerr.Message, `invalid range "bogus range"`)
}

func TestBuildRequest_ValueRangeListIndexedErrors(t *testing.T) {
	cerr := buildError(t, "values_batch_update", map[string]any{
		"spreadsheet_id": "s",
		"data": []any{
			map[string]any{"range": "A1:B2", "values": []any{[]any{"x"}}},
			map[string]any{"values": []any{[]any{"y"}}},
		},
	})
	assert.Equal(t, "data[1]: range is required", cerr.Message)

	cerr = buildError(t, "values_batch_update", map[string]any{
		"spreadsheet_id": "s",
		"data": []any{
			map[string]any{"range": "nope!", "values": []any{[]any{"x"}}},
		},
	})
	assert.Contains(t, cerr.Message, "data[0]:")
	assert.Contains(t, cerr.Message, "invalid range")
}

func TestBuildRequest_BatchUpdateCanonicalizesRanges(t *testing.T) {
	req := mustBuild(t, "values_batch_update", map[string]any{
		"spreadsheet_id": "s",
		"data": []any{
			map[string]any{"range": "a1:b2", "values": []any{[]any{"x"}}},
		},
	})
	data := req.Body["data"].([]any)
	item := data[0].(map[string]any)
	assert.Equal(t, "A1:B2", item["range"])
	assert.Equal(t, "USER_ENTERED", req.Body["valueInputOption"])
}

func TestBuildRequest_NestedBodyPaths(t *testing.T) {
	req := mustBuild(t, "spreadsheets_create", map[string]any{
		"title":     "Budget",
		"locale":    "en_US",
		"time_zone": "Europe/Berlin",
	})

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/v4/spreadsheets", req.Path)
	props := req.Body["properties"].(map[string]any)
	assert.Equal(t, "Budget", props["title"])
	assert.Equal(t, "en_US", props["locale"])
	assert.Equal(t, "Europe/Berlin", props["timeZone"])
}

func TestBuildRequest_ClearSendsEmptyBody(t *testing.T) {
	req := mustBuild(t, "values_clear", map[string]any{
		"spreadsheet_id": "s",
		"range":          "A1:B2",
	})
	assert.Equal(t, "POST", req.Method)
	require.NotNil(t, req.Body)
	assert.Empty(t, req.Body)
}

func TestBuildRequest_QueryRepeatsRanges(t *testing.T) {
	req := mustBuild(t, "values_batch_get", map[string]any{
		"spreadsheet_id": "s",
		"ranges":         []any{"A1:B2", "Sheet1!C1:C9"},
	})
	assert.Equal(t, []string{"A1:B2", "Sheet1!C1:C9"}, req.Query["ranges"])
}

func TestBuildRequest_BoolQuery(t *testing.T) {
	req := mustBuild(t, "spreadsheets_get", map[string]any{
		"spreadsheet_id":    "s",
		"include_grid_data": true,
	})
	assert.Equal(t, "true", req.Query.Get("includeGridData"))

	// Absent booleans are omitted entirely rather than sent as false.
	req = mustBuild(t, "spreadsheets_get", map[string]any{
		"spreadsheet_id": "s",
	})
	assert.Empty(t, req.Query.Get("includeGridData"))
}

func TestBuildRequest_MetadataIDInPath(t *testing.T) {
	req := mustBuild(t, "developer_metadata_get", map[string]any{
		"spreadsheet_id": "s",
		"metadata_id":    float64(42),
	})
	assert.Equal(t, "/v4/spreadsheets/s/developerMetadata/42", req.Path)

	cerr := buildError(t, "developer_metadata_get", map[string]any{
		"spreadsheet_id": "s",
		"metadata_id":    "not-a-number",
	})
	assert.Equal(t, "metadata_id must be an integer", cerr.Message)
}

func TestBuildRequest_RowsValidation(t *testing.T) {
	cerr := buildError(t, "values_update", map[string]any{
		"spreadsheet_id": "s",
		"range":          "A1",
		"values":         []any{"not-a-row"},
	})
	assert.Equal(t, "values[0] must be a list of cell values", cerr.Message)
}

func TestBuildRequest_TypeErrors(t *testing.T) {
	cerr := buildError(t, "spreadsheets_get", map[string]any{
		"spreadsheet_id":    "s",
		"include_grid_data": "yes",
	})
	assert.Equal(t, "include_grid_data must be a boolean", cerr.Message)

	cerr = buildError(t, "spreadsheets_batch_update", map[string]any{
		"spreadsheet_id": "s",
		"requests":       []any{"not-an-object"},
	})
	assert.Equal(t, "requests[0] must be an object", cerr.Message)
}
