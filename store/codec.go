package store

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Encode turns a JSON-tagged struct into document fields. The "id" key is
// dropped because ids live on the Document, not in its body.
func Encode(v interface{}) (Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	var fields Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

// Decode fills v from the document body, exposing the document id as "id".
func Decode(doc Document, v interface{}) error {
	fields := make(Fields, len(doc.Fields)+1)
	for k, val := range doc.Fields {
		fields[k] = val
	}
	fields["id"] = doc.ID
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("store: decode %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", doc.ID, err)
	}
	return nil
}

// DecodeAll decodes every document into a slice of T.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := Decode(doc, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// normalize round-trips a value through JSON so that stored values and
// filter values compare the same way regardless of their Go types.
func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeFields(fields Fields) (Fields, error) {
	n, err := normalize(fields)
	if err != nil {
		return nil, fmt.Errorf("store: fields are not JSON encodable: %w", err)
	}
	out, _ := n.(map[string]interface{})
	if out == nil {
		out = map[string]interface{}{}
	}
	return Fields(out), nil
}

func matches(fields Fields, filters []Filter) (bool, error) {
	for _, f := range filters {
		want, err := normalize(f.Value)
		if err != nil {
			return false, fmt.Errorf("store: filter %s: %w", f.Field, err)
		}
		if !reflect.DeepEqual(fields[f.Field], want) {
			return false, nil
		}
	}
	return true, nil
}
