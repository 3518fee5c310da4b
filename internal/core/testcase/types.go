package testcase

import (
	"fmt"
	"strings"
)

// DefaultCount is used when the caller omits num_test_cases.
const DefaultCount = 8

const (
	MinCount         = 1
	MaxCount         = 50
	MaxModuleNameLen = 100
	MaxURLLen        = 500
)

// Category is one of the five supported test-case families.
type Category string

const (
	Functional  Category = "Functional Test Cases"
	Regression  Category = "Regression Test Cases"
	Security    Category = "Security Test Cases"
	Performance Category = "Performance Test Cases"
	Usability   Category = "Usability Test Cases"
)

// Categories lists every supported category in display order.
var Categories = []Category{Functional, Regression, Security, Performance, Usability}

// ParseCategory matches s exactly against the supported categories.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func categoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// RawRequest is the caller-facing payload before validation.
type RawRequest struct {
	TestCaseType string `json:"test_case_type" yaml:"test_case_type"`
	ModuleName   string `json:"module_name" yaml:"module_name"`
	NumTestCases *int   `json:"num_test_cases,omitempty" yaml:"num_test_cases,omitempty"`
	URL          string `json:"url" yaml:"url"`
}

// Request is a validated generation request. Build it with Validate.
type Request struct {
	category   Category
	moduleName string
	count      int
	targetURL  string
}

func (r Request) Category() Category { return r.category }
func (r Request) ModuleName() string { return r.moduleName }
func (r Request) Count() int         { return r.count }
func (r Request) TargetURL() string  { return r.targetURL }

// ModuleID is the module name upper-cased with spaces replaced by underscores.
func (r Request) ModuleID() string {
	return strings.ReplaceAll(strings.ToUpper(r.moduleName), " ", "_")
}

// CaseID builds TC_<MODULE>_<seq> with a zero-padded three digit sequence.
func (r Request) CaseID(seq int) string {
	return fmt.Sprintf("TC_%s_%03d", r.ModuleID(), seq)
}

// TestCase is a single manual test case.
type TestCase struct {
	ID            string `json:"test_case_id" yaml:"test_case_id" jsonschema:"title=Test case ID"`
	Description   string `json:"description" yaml:"description"`
	Preconditions string `json:"preconditions" yaml:"preconditions"`
	Steps         string `json:"steps" yaml:"steps"`
}

// Collection is the response returned to callers.
type Collection struct {
	TestCases  []TestCase `json:"test_cases" yaml:"test_cases"`
	TotalCount int        `json:"total_count" yaml:"total_count"`
}

// NewCollection wraps cases and sets TotalCount from their length.
func NewCollection(cases []TestCase) *Collection {
	if cases == nil {
		cases = []TestCase{}
	}
	return &Collection{TestCases: cases, TotalCount: len(cases)}
}
