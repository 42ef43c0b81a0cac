// Package parameters parses player configuration strings of the form "key=value,flag,...".
package parameters

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Params maps configuration keys to their raw values. A key given without a value maps to "".
type Params map[string]string

// Value is any type a parameter can be parsed to.
type Value interface {
	bool | int | int64 | float64 | string
}

// NewFromConfigString parses a comma-separated list of keys with optional values.
// Empty entries are skipped and the last occurrence of a key wins.
func NewFromConfigString(config string) Params {
	params := make(Params)

	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, _ := strings.Cut(part, "=")
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return params
}

// String formats params back to a config string, with keys sorted.
func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if p[key] == "" {
			parts = append(parts, key)
			continue
		}
		parts = append(parts, key+"="+p[key])
	}

	return strings.Join(parts, ",")
}

// GetParamOr parses the value of key, or returns defaultValue if key is absent.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}

	var parsed any
	var err error

	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		parsed, err = strconv.Atoi(value)
	case int64:
		parsed, err = strconv.ParseInt(value, 10, 64)
	case float64:
		parsed, err = strconv.ParseFloat(value, 64)
	case bool:
		parsed, err = parseBool(value)
	}

	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse parameter %s=%q as %T", key, value, defaultValue)
	}

	return parsed.(T), nil
}

// PopParamOr is like GetParamOr, but also deletes key from params.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}

	delete(params, key)
	return value, nil
}

// CheckEmpty returns an error naming all keys left in params.
// Call it after popping every known parameter to reject typos.
func CheckEmpty(params Params) error {
	if len(params) == 0 {
		return nil
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return errors.Errorf("unknown parameters: %s", strings.Join(keys, ", "))
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "", "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, errors.Errorf("invalid bool %q", value)
	}
}
