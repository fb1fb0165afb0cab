package values

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AllOptions selects every option of a multichoice field.
const AllOptions = "*"

// Values is the flat mapping of field key to collected value. Toggles hold
// bools, multichoice fields hold []string and everything else holds text.
type Values map[string]any

// String returns the trimmed text form of a value.
func (v Values) String(key string) string {
	return strings.TrimSpace(Text(v[key]))
}

// Bool reports whether a toggle value is on.
func (v Values) Bool(key string) bool {
	on, _ := ParseToggle(v[key])
	return on
}

// Strings returns the selections of a multichoice value.
func (v Values) Strings(key string) []string {
	switch typed := v[key].(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, Text(item))
		}
		return out
	case string:
		return SplitList(typed)
	default:
		return nil
	}
}

// Has reports whether key holds a non-empty value.
func (v Values) Has(key string) bool {
	switch typed := v[key].(type) {
	case nil:
		return false
	case bool:
		return true
	case []string:
		return len(typed) > 0
	case []any:
		return len(typed) > 0
	default:
		return v.String(key) != ""
	}
}

// Set stores value under key.
func (v Values) Set(key string, value any) {
	v[key] = value
}

// Clone returns a copy that does not share slices with v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		if list, ok := value.([]string); ok {
			value = append([]string(nil), list...)
		}
		out[key] = value
	}
	return out
}

// Keys returns the keys sorted alphabetically.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Text renders a scalar the way it is written into script files. Floats use
// the shortest representation and lists are joined with `;`.
func Text(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case []string:
		return strings.Join(typed, ";")
	default:
		return fmt.Sprint(value)
	}
}

// ParseToggle interprets checkbox-like input. The second result is false when
// the input is not recognisable.
func ParseToggle(value any) (bool, bool) {
	switch typed := value.(type) {
	case nil:
		return false, true
	case bool:
		return typed, true
	case float64:
		return typed != 0, true
	case int:
		return typed != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "yes", "y", "1", "x", "on":
			return true, true
		case "false", "no", "n", "0", "off", "":
			return false, true
		}
	}
	return false, false
}

// SplitList splits `a;b` style input, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
