package sheets

import (
	"net/http"
	"sort"
)

// paramLocation says where a tool argument lands in the outbound request.
type paramLocation int

const (
	inPath paramLocation = iota
	inQuery
	inBody
)

// paramKind drives type coercion and validation for a tool argument.
type paramKind int

const (
	kindString paramKind = iota
	kindBool
	kindInt
	kindRange          // string validated against the A1 grammar
	kindRangeList      // list of A1 strings, validated per item
	kindRows           // matrix of cell values ([][]any, ragged rows allowed)
	kindObjectList     // list of JSON objects, passed through unvalidated
	kindValueRangeList // list of {range, values} objects; ranges validated per item
)

// param describes one argument of an operation: the tool-facing name, its
// wire key (dotted keys nest into the JSON body), where it goes, and how it
// is validated. Defaults apply only when the argument is absent.
type param struct {
	name     string
	key      string
	loc      paramLocation
	kind     paramKind
	required bool
	def      any
	enum     []string
}

// Operation statically maps a tool name onto a Sheets API endpoint. The set
// of operations is fixed at init; there is no runtime registration.
type Operation struct {
	Name   string
	Method string
	Path   string // template with {param} placeholders
	Params []param
}

var inputOptions = []string{"RAW", "USER_ENTERED"}

// Operations is the closed descriptor table, one entry per tool, covering
// the spreadsheets, values and developerMetadata resources of the
// Sheets API v4.
var Operations = map[string]*Operation{
	"spreadsheets_create": {
		Name:   "spreadsheets_create",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets",
		Params: []param{
			{name: "title", key: "properties.title", loc: inBody, kind: kindString, required: true},
			{name: "locale", key: "properties.locale", loc: inBody, kind: kindString},
			{name: "auto_recalc", key: "properties.autoRecalc", loc: inBody, kind: kindString},
			{name: "time_zone", key: "properties.timeZone", loc: inBody, kind: kindString},
			{name: "sheets", key: "sheets", loc: inBody, kind: kindObjectList},
		},
	},
	"spreadsheets_get": {
		Name:   "spreadsheets_get",
		Method: http.MethodGet,
		Path:   "/v4/spreadsheets/{spreadsheet_id}",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "ranges", key: "ranges", loc: inQuery, kind: kindRangeList},
			{name: "include_grid_data", key: "includeGridData", loc: inQuery, kind: kindBool},
			{name: "fields", key: "fields", loc: inQuery, kind: kindString},
		},
	},
	"spreadsheets_batch_update": {
		Name:   "spreadsheets_batch_update",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}:batchUpdate",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "requests", key: "requests", loc: inBody, kind: kindObjectList, required: true},
			{name: "include_spreadsheet_in_response", key: "includeSpreadsheetInResponse", loc: inBody, kind: kindBool},
			{name: "response_ranges", key: "responseRanges", loc: inBody, kind: kindRangeList},
			{name: "response_include_grid_data", key: "responseIncludeGridData", loc: inBody, kind: kindBool},
		},
	},
	"spreadsheets_get_by_data_filter": {
		Name:   "spreadsheets_get_by_data_filter",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}:getByDataFilter",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "data_filters", key: "dataFilters", loc: inBody, kind: kindObjectList, required: true},
			{name: "include_grid_data", key: "includeGridData", loc: inBody, kind: kindBool},
		},
	},
	"values_get": {
		Name:   "values_get",
		Method: http.MethodGet,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values/{range}",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "range", loc: inPath, kind: kindRange, required: true},
			{name: "major_dimension", key: "majorDimension", loc: inQuery, kind: kindString},
			{name: "value_render_option", key: "valueRenderOption", loc: inQuery, kind: kindString},
			{name: "date_time_render_option", key: "dateTimeRenderOption", loc: inQuery, kind: kindString},
		},
	},
	"values_update": {
		Name:   "values_update",
		Method: http.MethodPut,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values/{range}",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "range", loc: inPath, kind: kindRange, required: true},
			{name: "values", key: "values", loc: inBody, kind: kindRows, required: true},
			{name: "value_input_option", key: "valueInputOption", loc: inQuery, kind: kindString, def: "USER_ENTERED", enum: inputOptions},
			{name: "major_dimension", key: "majorDimension", loc: inBody, kind: kindString, def: "ROWS"},
			{name: "include_values_in_response", key: "includeValuesInResponse", loc: inQuery, kind: kindBool},
			{name: "response_value_render_option", key: "responseValueRenderOption", loc: inQuery, kind: kindString},
			{name: "response_date_time_render_option", key: "responseDateTimeRenderOption", loc: inQuery, kind: kindString},
		},
	},
	"values_append": {
		Name:   "values_append",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values/{range}:append",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "range", loc: inPath, kind: kindRange, required: true},
			{name: "values", key: "values", loc: inBody, kind: kindRows, required: true},
			{name: "value_input_option", key: "valueInputOption", loc: inQuery, kind: kindString, def: "USER_ENTERED", enum: inputOptions},
			{name: "major_dimension", key: "majorDimension", loc: inBody, kind: kindString, def: "ROWS"},
			{name: "insert_data_option", key: "insertDataOption", loc: inQuery, kind: kindString},
			{name: "include_values_in_response", key: "includeValuesInResponse", loc: inQuery, kind: kindBool},
			{name: "response_value_render_option", key: "responseValueRenderOption", loc: inQuery, kind: kindString},
			{name: "response_date_time_render_option", key: "responseDateTimeRenderOption", loc: inQuery, kind: kindString},
		},
	},
	"values_clear": {
		Name:   "values_clear",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values/{range}:clear",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "range", loc: inPath, kind: kindRange, required: true},
		},
	},
	"values_batch_get": {
		Name:   "values_batch_get",
		Method: http.MethodGet,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values:batchGet",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "ranges", key: "ranges", loc: inQuery, kind: kindRangeList, required: true},
			{name: "major_dimension", key: "majorDimension", loc: inQuery, kind: kindString},
			{name: "value_render_option", key: "valueRenderOption", loc: inQuery, kind: kindString},
			{name: "date_time_render_option", key: "dateTimeRenderOption", loc: inQuery, kind: kindString},
		},
	},
	"values_batch_update": {
		Name:   "values_batch_update",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values:batchUpdate",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "data", key: "data", loc: inBody, kind: kindValueRangeList, required: true},
			{name: "value_input_option", key: "valueInputOption", loc: inBody, kind: kindString, def: "USER_ENTERED", enum: inputOptions},
			{name: "include_values_in_response", key: "includeValuesInResponse", loc: inBody, kind: kindBool},
			{name: "response_value_render_option", key: "responseValueRenderOption", loc: inBody, kind: kindString},
			{name: "response_date_time_render_option", key: "responseDateTimeRenderOption", loc: inBody, kind: kindString},
		},
	},
	"values_batch_clear": {
		Name:   "values_batch_clear",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values:batchClear",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "ranges", key: "ranges", loc: inBody, kind: kindRangeList, required: true},
		},
	},
	"values_batch_get_by_data_filter": {
		Name:   "values_batch_get_by_data_filter",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values:batchGetByDataFilter",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "data_filters", key: "dataFilters", loc: inBody, kind: kindObjectList, required: true},
			{name: "major_dimension", key: "majorDimension", loc: inBody, kind: kindString},
			{name: "value_render_option", key: "valueRenderOption", loc: inBody, kind: kindString},
			{name: "date_time_render_option", key: "dateTimeRenderOption", loc: inBody, kind: kindString},
		},
	},
	"values_batch_update_by_data_filter": {
		Name:   "values_batch_update_by_data_filter",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values:batchUpdateByDataFilter",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			// Items address cells via data filters, not A1 ranges, so no
			// per-item range validation applies here.
			{name: "data", key: "data", loc: inBody, kind: kindObjectList, required: true},
			{name: "value_input_option", key: "valueInputOption", loc: inBody, kind: kindString, def: "USER_ENTERED", enum: inputOptions},
			{name: "include_values_in_response", key: "includeValuesInResponse", loc: inBody, kind: kindBool},
			{name: "response_value_render_option", key: "responseValueRenderOption", loc: inBody, kind: kindString},
			{name: "response_date_time_render_option", key: "responseDateTimeRenderOption", loc: inBody, kind: kindString},
		},
	},
	"values_batch_clear_by_data_filter": {
		Name:   "values_batch_clear_by_data_filter",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/values:batchClearByDataFilter",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "data_filters", key: "dataFilters", loc: inBody, kind: kindObjectList, required: true},
		},
	},
	"developer_metadata_get": {
		Name:   "developer_metadata_get",
		Method: http.MethodGet,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/developerMetadata/{metadata_id}",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "metadata_id", loc: inPath, kind: kindInt, required: true},
		},
	},
	"developer_metadata_search": {
		Name:   "developer_metadata_search",
		Method: http.MethodPost,
		Path:   "/v4/spreadsheets/{spreadsheet_id}/developerMetadata:search",
		Params: []param{
			{name: "spreadsheet_id", loc: inPath, kind: kindString, required: true},
			{name: "data_filters", key: "dataFilters", loc: inBody, kind: kindObjectList, required: true},
		},
	},
}

// OperationNames returns the sorted names of all registered operations.
func OperationNames() []string {
	names := make([]string, 0, len(Operations))
	for name := range Operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
