package encoding

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
)

var (
	ErrDecodeJSON = errors.New("failed to decode JSON")
	ErrDecodeXML  = errors.New("failed to decode XML")
)

// DecodeJSON decodes a buffered response body. Numbers are kept as json.Number when decoding
// into untyped values so large 64-bit ids survive intact.
func DecodeJSON[T any](body []byte) (T, error) {
	var value T
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return value, errors.Join(err, ErrDecodeJSON)
	}

	return value, nil
}

func UnmarshalXML[T any](body []byte) (T, error) {
	var value T
	if err := xml.Unmarshal(body, &value); err != nil {
		return value, errors.Join(err, ErrDecodeXML)
	}

	return value, nil
}
