package sentiment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// RawResponse is an untyped JSON object as returned by a prediction endpoint.
// Keys keep their document order.
type RawResponse struct {
	doc gjson.Result
}

// ParseRawResponse validates body and wraps it. Only JSON objects are accepted.
func ParseRawResponse(body []byte) (RawResponse, error) {
	if !gjson.ValidBytes(body) {
		return RawResponse{}, fmt.Errorf("decode response: invalid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return RawResponse{}, fmt.Errorf("decode response: expected object, got %s", doc.Type)
	}
	return RawResponse{doc: doc}, nil
}

// RawFromMap builds a RawResponse from a decoded map. Go maps are unordered,
// so keys end up in sorted order.
func RawFromMap(m map[string]any) (RawResponse, error) {
	if m == nil {
		m = map[string]any{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return RawResponse{}, fmt.Errorf("encode response: %w", err)
	}
	return ParseRawResponse(data)
}

// String returns the raw JSON text.
func (r RawResponse) String() string {
	if r.doc.Raw == "" {
		return "{}"
	}
	return r.doc.Raw
}

// Field returns the top-level value stored under key. Duplicate keys resolve
// to the last occurrence.
func (r RawResponse) Field(key string) (gjson.Result, bool) {
	var (
		out   gjson.Result
		found bool
	)
	r.doc.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out, found = v, true
		}
		return true
	})
	return out, found
}

// Lookup returns the value of the first alias that is present and not null.
func (r RawResponse) Lookup(aliases []string) (gjson.Result, bool) {
	for _, key := range aliases {
		v, ok := r.Field(key)
		if ok && v.Type != gjson.Null {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// ErrorMessage reports the top-level error field when it holds a truthy value.
func (r RawResponse) ErrorMessage() (string, bool) {
	v, ok := r.Field("error")
	if !ok {
		return "", false
	}
	switch v.Type {
	case gjson.String:
		return v.Str, v.Str != ""
	case gjson.Number:
		if v.Num == 0 || math.IsNaN(v.Num) {
			return "", false
		}
		return formatNumber(v.Num), true
	case gjson.True:
		return "true", true
	case gjson.JSON:
		return v.Raw, true
	default:
		return "", false
	}
}

// numericValue accepts JSON numbers and strings holding a finite number.
func numericValue(v gjson.Result) (float64, bool) {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Num
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// labelValue stringifies scalar label values; objects and arrays are rejected.
func labelValue(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number:
		return formatNumber(v.Num), true
	case gjson.True:
		return "true", true
	case gjson.False:
		return "false", true
	default:
		return "", false
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
