package values

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Parse decodes a flat JSON object into Values. Numbers keep their source
// text so `1.0` is written back as `1.0`.
func Parse(data []byte) (Values, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("values: invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("values: expected a JSON object")
	}

	out := make(Values)
	var parseErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		switch {
		case value.Type == gjson.Null:
		case value.Type == gjson.True || value.Type == gjson.False:
			out[name] = value.Bool()
		case value.Type == gjson.Number:
			out[name] = value.Raw
		case value.Type == gjson.String:
			out[name] = value.Str
		case value.IsArray():
			list := make([]string, 0, len(value.Array()))
			for _, item := range value.Array() {
				list = append(list, item.String())
			}
			out[name] = list
		default:
			parseErr = fmt.Errorf("values: field %q: nested objects are not supported", name)
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

// Marshal encodes v as an indented JSON object with sorted keys.
func Marshal(v Values) ([]byte, error) {
	doc := []byte("{}")
	for _, key := range v.Keys() {
		var err error
		doc, err = sjson.SetBytes(doc, escapePath(key), v[key])
		if err != nil {
			return nil, fmt.Errorf("values: encode %q: %w", key, err)
		}
	}
	return pretty.Pretty(doc), nil
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	".", `\.`,
	"*", `\*`,
	"?", `\?`,
	"|", `\|`,
	"#", `\#`,
	"@", `\@`,
	":", `\:`,
)

func escapePath(key string) string {
	return pathEscaper.Replace(key)
}
