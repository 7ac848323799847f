package client

import (
	"fmt"
	"net/url"
	"strconv"
)

// BuildURL appends query parameters to base, which may be absolute or a bare
// path and may already carry a query string. Parameters with nil or empty
// values are omitted, scalar values overwrite any existing parameter of the
// same name, and slice values become one parameter per element. Keys are
// encoded in sorted order so the same inputs always produce the same URL.
func BuildURL(base string, params map[string]any) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", base, err)
	}

	values := u.Query()
	for key, value := range params {
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case []string:
			values.Del(key)
			for _, item := range v {
				if item == "" {
					continue
				}
				values.Add(key, item)
			}
		case []int:
			values.Del(key)
			for _, item := range v {
				values.Add(key, strconv.Itoa(item))
			}
		case []any:
			values.Del(key)
			for _, item := range v {
				s := stringify(item)
				if s == "" {
					continue
				}
				values.Add(key, s)
			}
		default:
			s := stringify(value)
			if s == "" {
				continue
			}
			values.Set(key, s)
		}
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
