// Package validate checks the shape of decoded GitHub API payloads before
// they are cached or handed to callers.
//
// Validation is about presence, not content: a required field whose value is
// null passes. Failures are *apierr.Error values of kind KindValidation and
// never carry a status code.
package validate

import (
	"github.com/tidwall/gjson"

	"github.com/rshade/ghscout/internal/apierr"
)

// Required fields per endpoint.
var (
	SearchFields     = []string{"items", "total_count"}
	RepositoryFields = []string{"id", "name", "full_name", "owner"}
	UserFields       = []string{"login", "id", "html_url"}
)

// Object confirms raw is a JSON object containing every required field.
// The error names the first missing field.
func Object(raw []byte, required ...string) error {
	res, err := parse(raw)
	if err != nil {
		return err
	}
	if !res.IsObject() {
		return apierr.Validation("invalid response: expected an object, got %s", describe(res))
	}
	for _, field := range required {
		if !res.Get(gjson.Escape(field)).Exists() {
			return apierr.Validation("invalid response: missing required field '%s'", field)
		}
	}
	return nil
}

// Array confirms raw is a JSON array. Elements are not inspected.
func Array(raw []byte) error {
	res, err := parse(raw)
	if err != nil {
		return err
	}
	if !res.IsArray() {
		return apierr.Validation("invalid response: expected an array, got %s", describe(res))
	}
	return nil
}

// Search validates a search payload: an object with total_count and an items
// array.
func Search(raw []byte) error {
	if err := Object(raw, SearchFields...); err != nil {
		return err
	}
	if items := gjson.GetBytes(raw, "items"); !items.IsArray() {
		return apierr.Validation("invalid response: field 'items' must be an array, got %s", describe(items))
	}
	return nil
}

func parse(raw []byte) (gjson.Result, error) {
	if len(raw) == 0 {
		return gjson.Result{}, apierr.Validation("invalid response: empty body")
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, apierr.Validation("invalid response: body is not valid JSON")
	}
	return gjson.ParseBytes(raw), nil
}

func describe(res gjson.Result) string {
	switch {
	case res.IsArray():
		return "array"
	case res.IsObject():
		return "object"
	}
	switch res.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		return "unknown"
	}
}
