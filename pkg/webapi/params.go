package webapi

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Params holds the query or form parameters of a request. Supported values are strings,
// booleans, integers, floats, fmt.Stringer implementations and slices of those. Slices are
// sent as indexed keys, eg. appids_filter[0]=730&appids_filter[1]=440.
type Params map[string]any

// Values encodes the parameters.
func (p Params) Values() (url.Values, error) {
	values := url.Values{}
	for name, value := range p {
		if value == nil {
			continue
		}

		if encoded, isScalar := formatScalar(value); isScalar {
			values.Set(name, encoded)

			continue
		}

		list := reflect.ValueOf(value)
		if list.Kind() != reflect.Slice && list.Kind() != reflect.Array {
			return nil, errors.Join(ErrParamType, fmt.Errorf("%s: %T", name, value))
		}

		for idx := range list.Len() {
			encoded, isScalar := formatScalar(list.Index(idx).Interface())
			if !isScalar {
				return nil, errors.Join(ErrParamType, fmt.Errorf("%s[%d]: %T", name, idx, list.Index(idx).Interface()))
			}

			values.Set(name+"["+strconv.Itoa(idx)+"]", encoded)
		}
	}

	return values, nil
}

func formatScalar(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case int:
		return strconv.Itoa(typed), true
	case int32:
		return strconv.FormatInt(int64(typed), 10), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case uint:
		return strconv.FormatUint(uint64(typed), 10), true
	case uint32:
		return strconv.FormatUint(uint64(typed), 10), true
	case uint64:
		return strconv.FormatUint(typed, 10), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case fmt.Stringer:
		return typed.String(), true
	default:
		return "", false
	}
}

// Endpoint names an upstream method: Interface/Method/vVersion.
type Endpoint struct {
	Interface string
	Method    string
	Version   int
}

func (e Endpoint) Path() string {
	return e.Interface + "/" + e.Method + "/v" + strconv.Itoa(e.Version)
}

// ParseEndpoint splits a path of the form Interface/Method/vN. Leading and trailing slashes
// are ignored.
func ParseEndpoint(path string) (Endpoint, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return Endpoint{}, errors.Join(ErrInvalidURL, fmt.Errorf("expected Interface/Method/vN, got %q", path))
	}

	version, errVersion := strconv.Atoi(strings.TrimPrefix(strings.ToLower(parts[2]), "v"))
	if errVersion != nil || version <= 0 {
		return Endpoint{}, errors.Join(ErrInvalidURL, fmt.Errorf("invalid version %q", parts[2]))
	}

	return Endpoint{Interface: parts[0], Method: parts[1], Version: version}, nil
}
