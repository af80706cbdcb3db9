package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/muurk/mallas/internal/form"
)

// DecodeExample parses a flat JSON object into an ExampleRecord, keeping
// the key order of the document. Numbers are rendered in their shortest
// decimal form (2.0 becomes "2"), strings are kept verbatim, booleans
// become "true"/"false" and null becomes "". Nested objects and arrays are
// rejected.
func DecodeExample(body []byte) (form.ExampleRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading object start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("example is not a JSON object")
	}

	var rec form.ExampleRecord
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading value of %q: %w", key, err)
		}
		value, err := exampleValue(tok)
		if err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		rec = append(rec, form.ExampleValue{Name: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading object end: %w", err)
	}
	if _, err := dec.Token(); err == nil {
		return nil, errors.New("trailing data after example object")
	}

	return rec, nil
}

func exampleValue(tok json.Token) (string, error) {
	switch v := tok.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", nil
	case json.Delim:
		return "", fmt.Errorf("nested %s not supported", v)
	default:
		return "", fmt.Errorf("unsupported value %v", v)
	}
}
