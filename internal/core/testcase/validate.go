package testcase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError names one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned by Validate when the caller input is malformed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// requestInput mirrors RawRequest after trimming, with the rules as tags.
// Tag order matters: validator reports the first failing tag per field.
type requestInput struct {
	TestCaseType string `json:"test_case_type" validate:"category"`
	ModuleName   string `json:"module_name" validate:"required,max=100"`
	NumTestCases int    `json:"num_test_cases" validate:"min=1,max=50"`
	URL          string `json:"url" validate:"required,httpscheme,max=500"`
}

var messages = map[string]string{
	"test_case_type/category": "Test case type must be one of: " + categoryList(),
	"module_name/required":    "Module name cannot be empty",
	"module_name/max":         fmt.Sprintf("Module name cannot exceed %d characters", MaxModuleNameLen),
	"num_test_cases/min":      fmt.Sprintf("Number of test cases must be between %d and %d", MinCount, MaxCount),
	"num_test_cases/max":      fmt.Sprintf("Number of test cases must be between %d and %d", MinCount, MaxCount),
	"url/required":            "URL cannot be empty",
	"url/httpscheme":          "URL must start with http:// or https://",
	"url/max":                 fmt.Sprintf("URL cannot exceed %d characters", MaxURLLen),
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := ParseCategory(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("httpscheme", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
	})

	return v
}

// Validate checks every field of raw independently and returns the
// immutable Request, or a *ValidationError naming each offending field.
func Validate(raw RawRequest) (Request, error) {
	count := DefaultCount
	if raw.NumTestCases != nil {
		count = *raw.NumTestCases
	}

	in := requestInput{
		TestCaseType: raw.TestCaseType,
		ModuleName:   strings.TrimSpace(raw.ModuleName),
		NumTestCases: count,
		URL:          strings.TrimSpace(raw.URL),
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Request{}, fmt.Errorf("failed to validate request: %w", err)
		}
		out := &ValidationError{}
		for _, fe := range verrs {
			msg, ok := messages[fe.Field()+"/"+fe.Tag()]
			if !ok {
				msg = fmt.Sprintf("failed on %q rule", fe.Tag())
			}
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
		}
		return Request{}, out
	}

	category, _ := ParseCategory(in.TestCaseType)
	return Request{
		category:   category,
		moduleName: in.ModuleName,
		count:      in.NumTestCases,
		targetURL:  in.URL,
	}, nil
}
