package grid

import (
	"cmp"

	"github.com/tidwall/gjson"

	"github.com/go-drift/domkit/pkg/errors"
)

// JSONRows parses a JSON array of row objects. A non-empty path selects the
// array inside a larger document ("data", "result.items").
func JSONRows(data []byte, path string) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidConfiguration("grid.JSONRows", "invalid JSON row data")
	}
	doc := gjson.ParseBytes(data)
	if path != "" {
		doc = doc.Get(path)
	}
	if !doc.IsArray() {
		return nil, errors.InvalidConfiguration("grid.JSONRows", "rows at %q are not an array", path)
	}
	return doc.Array(), nil
}

// JSONKey returns a key function reading path from each row.
func JSONKey(path string) func(gjson.Result) string {
	return func(r gjson.Result) string {
		return r.Get(path).String()
	}
}

// JSONColumn returns a sortable column reading path from each row. Numbers
// compare numerically, everything else by text.
func JSONColumn(key, header, path string) Column[gjson.Result] {
	return Column[gjson.Result]{
		Key:    key,
		Header: header,
		Value: func(r gjson.Result) string {
			return r.Get(path).String()
		},
		Compare: func(a, b gjson.Result) int {
			va, vb := a.Get(path), b.Get(path)
			if va.Type == gjson.Number && vb.Type == gjson.Number {
				return cmp.Compare(va.Float(), vb.Float())
			}
			return cmp.Compare(va.String(), vb.String())
		},
		Sortable: true,
	}
}
