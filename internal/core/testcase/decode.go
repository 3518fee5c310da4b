package testcase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

var fieldOrder = []string{"test_case_type", "module_name", "num_test_cases", "url"}

var typeMessages = map[string]string{
	"test_case_type": "Test case type must be one of: " + categoryList(),
	"module_name":    "Module name must be a string",
	"num_test_cases": fmt.Sprintf("Number of test cases must be an integer between %d and %d", MinCount, MaxCount),
	"url":            "URL must be a string",
}

type wireRequest struct {
	TestCaseType json.RawMessage `json:"test_case_type"`
	ModuleName   json.RawMessage `json:"module_name"`
	NumTestCases json.RawMessage `json:"num_test_cases"`
	URL          json.RawMessage `json:"url"`
}

// DecodeRequest reads a JSON request body and validates it. A field that is
// null or has the wrong JSON type is reported as a FieldError together with
// the rule failures of the other fields. Only a body that is not a JSON object
// yields a plain error.
func DecodeRequest(body []byte) (Request, error) {
	var w wireRequest
	if err := json.Unmarshal(body, &w); err != nil {
		return Request{}, err
	}

	var raw RawRequest
	var typeErrs []FieldError
	decode := func(field string, data json.RawMessage, dst any) bool {
		if len(data) == 0 {
			return false
		}
		if bytes.Equal(bytes.TrimSpace(data), []byte("null")) || json.Unmarshal(data, dst) != nil {
			typeErrs = append(typeErrs, FieldError{Field: field, Message: typeMessages[field]})
			return false
		}
		return true
	}

	decode("test_case_type", w.TestCaseType, &raw.TestCaseType)
	decode("module_name", w.ModuleName, &raw.ModuleName)
	decode("url", w.URL, &raw.URL)
	var count int
	if decode("num_test_cases", w.NumTestCases, &count) {
		raw.NumTestCases = &count
	}

	req, err := Validate(raw)
	if len(typeErrs) == 0 {
		return req, err
	}

	out := &ValidationError{Fields: typeErrs}
	if verr, ok := err.(*ValidationError); ok {
		for _, fe := range verr.Fields {
			if !slices.ContainsFunc(typeErrs, func(t FieldError) bool { return t.Field == fe.Field }) {
				out.Fields = append(out.Fields, fe)
			}
		}
	}
	slices.SortStableFunc(out.Fields, func(a, b FieldError) int {
		return slices.Index(fieldOrder, a.Field) - slices.Index(fieldOrder, b.Field)
	})
	return Request{}, out
}
