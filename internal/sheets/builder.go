package sheets

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Request is a fully shaped Sheets API call, ready for dispatch. No
// credential is attached here; token handling belongs to the dispatcher.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// buildRequest validates the arguments of op and shapes them into a Request.
// Validation is exhaustive before any network activity: missing required
// arguments, malformed A1 ranges and enum violations all fail here.
func buildRequest(op *Operation, args map[string]any) (*Request, *Error) {
	req := &Request{Method: op.Method, Path: op.Path, Query: url.Values{}}
	var body map[string]any

	for _, p := range op.Params {
		raw, present := args[p.name]
		if !present || isEmptyValue(raw) {
			if p.def != nil {
				raw = p.def
			} else if p.required {
				return nil, validationErrorf("%s is required", p.name)
			} else {
				continue
			}
		}

		val, cerr := coerceParam(p, raw)
		if cerr != nil {
			return nil, cerr
		}

		switch p.loc {
		case inPath:
			req.Path = strings.Replace(req.Path, "{"+p.name+"}", url.PathEscape(pathValue(val)), 1)
		case inQuery:
			for _, s := range queryValues(p, val) {
				req.Query.Add(p.key, s)
			}
		case inBody:
			if body == nil {
				body = make(map[string]any)
			}
			setBodyPath(body, p.key, val)
		}
	}

	// POST and PUT calls always carry a JSON body, if only an empty object
	// (values_clear is the canonical case).
	if req.Method != "GET" && body == nil {
		body = map[string]any{}
	}
	req.Body = body
	return req, nil
}

// isEmptyValue treats nil, empty strings and empty lists as absent, so that
// defaults apply and required checks fire for them.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

// coerceParam checks the argument against its declared kind and returns the
// value in wire shape. Ranges are re-serialized through the parser so the
// dispatched form is always canonical A1.
func coerceParam(p param, raw any) (any, *Error) {
	switch p.kind {
	case kindString:
		s, ok := raw.(string)
		if !ok {
			return nil, validationErrorf("%s must be a string", p.name)
		}
		if len(p.enum) > 0 && !containsString(p.enum, s) {
			return nil, validationErrorf("%s must be %s", p.name, enumDescription(p.enum))
		}
		return s, nil

	case kindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, validationErrorf("%s must be a boolean", p.name)
		}
		return b, nil

	case kindInt:
		n, ok := intValue(raw)
		if !ok {
			return nil, validationErrorf("%s must be an integer", p.name)
		}
		return n, nil

	case kindRange:
		s, ok := raw.(string)
		if !ok {
			return nil, validationErrorf("%s must be a string in A1 notation", p.name)
		}
		r, err := ParseRange(s)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Message: err.Error()}
		}
		return r.String(), nil

	case kindRangeList:
		items, ok := stringSlice(raw)
		if !ok {
			return nil, validationErrorf("%s must be a list of A1 range strings", p.name)
		}
		out := make([]string, len(items))
		for i, s := range items {
			r, err := ParseRange(s)
			if err != nil {
				return nil, validationErrorf("%s[%d]: %v", p.name, i, err)
			}
			out[i] = r.String()
		}
		return out, nil

	case kindRows:
		rows, ok := raw.([]any)
		if !ok {
			return nil, validationErrorf("%s must be a list of rows", p.name)
		}
		for i, row := range rows {
			if _, ok := row.([]any); !ok {
				return nil, validationErrorf("%s[%d] must be a list of cell values", p.name, i)
			}
		}
		return rows, nil

	case kindObjectList:
		items, ok := raw.([]any)
		if !ok {
			return nil, validationErrorf("%s must be a list of objects", p.name)
		}
		for i, item := range items {
			if _, ok := item.(map[string]any); !ok {
				return nil, validationErrorf("%s[%d] must be an object", p.name, i)
			}
		}
		return items, nil

	case kindValueRangeList:
		items, ok := raw.([]any)
		if !ok {
			return nil, validationErrorf("%s must be a list of value range objects", p.name)
		}
		for i, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, validationErrorf("%s[%d] must be an object with range and values", p.name, i)
			}
			rangeStr, ok := obj["range"].(string)
			if !ok || rangeStr == "" {
				return nil, validationErrorf("%s[%d]: range is required", p.name, i)
			}
			r, err := ParseRange(rangeStr)
			if err != nil {
				return nil, validationErrorf("%s[%d]: %v", p.name, i, err)
			}
			obj["range"] = r.String()
		}
		return items, nil
	}
	return nil, validationErrorf("%s has an unsupported parameter kind", p.name)
}

func pathValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return fmt.Sprint(v)
}

func queryValues(p param, v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case bool:
		return []string{strconv.FormatBool(t)}
	case int64:
		return []string{strconv.FormatInt(t, 10)}
	case []string:
		return t
	}
	return []string{fmt.Sprint(v)}
}

// setBodyPath stores v under a dotted key path, creating intermediate
// objects as needed ("properties.title" -> body["properties"]["title"]).
func setBodyPath(body map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	m := body
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

func intValue(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t != float64(int64(t)) {
			return 0, false
		}
		return int64(t), true
	}
	return 0, false
}

func stringSlice(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// enumDescription renders an allowed-values clause like "'RAW' or
// 'USER_ENTERED'" for validation messages.
func enumDescription(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
