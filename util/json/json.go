package json

import (
	"github.com/bytedance/sonic"
)

// API is the shared sonic configuration. UseNumber keeps upstream numbers intact
// when an envelope is decoded into a map and written back out.
var API = sonic.Config{
	UseNumber:   true,
	EscapeHTML:  false,
	SortMapKeys: false,
}.Froze()

// Marshal encodes v with sonic.
func Marshal(v interface{}) ([]byte, error) {
	return API.Marshal(v)
}

// Unmarshal decodes data into v with sonic.
func Unmarshal(data []byte, v interface{}) error {
	return API.Unmarshal(data, v)
}

// Valid reports whether data is a single well-formed JSON value.
func Valid(data []byte) bool {
	return API.Valid(data)
}

// DecodeObject decodes data into a generic JSON object.
func DecodeObject(data []byte) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := API.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
