package testcase

import (
	"fmt"
	"strings"
)

const featurePlaceholder = "{feature}"

var (
	functionalTemplates = []string{
		"Verify {feature} functionality works correctly",
		"Test {feature} with valid inputs",
		"Validate {feature} error handling",
		"Check {feature} integration points",
	}
	regressionTemplates = []string{
		"Ensure {feature} still works after recent changes",
		"Verify {feature} backward compatibility",
		"Test {feature} with existing data",
		"Validate {feature} performance after updates",
	}
	securityTemplates = []string{
		"Test {feature} authentication requirements",
		"Verify {feature} authorization controls",
		"Validate {feature} input sanitization",
		"Check {feature} for potential vulnerabilities",
	}
	performanceTemplates = []string{
		"Test {feature} response time under normal load",
		"Verify {feature} performance with large datasets",
		"Validate {feature} memory usage",
		"Check {feature} scalability limits",
	}
	usabilityTemplates = []string{
		"Test {feature} user interface navigation",
		"Verify {feature} accessibility features",
		"Validate {feature} user experience flow",
		"Check {feature} error message clarity",
	}
)

// Templates returns the description templates for c.
func Templates(c Category) []string {
	switch c {
	case Regression:
		return regressionTemplates
	case Security:
		return securityTemplates
	case Performance:
		return performanceTemplates
	case Usability:
		return usabilityTemplates
	default:
		return functionalTemplates
	}
}

// Fallback synthesizes exactly count template-based test cases numbered from 1.
func Fallback(req Request, count int) []TestCase {
	return FallbackFrom(req, 0, count)
}

// FallbackFrom synthesizes count cases whose sequence numbers start at offset+1.
func FallbackFrom(req Request, offset, count int) []TestCase {
	if count <= 0 {
		return []TestCase{}
	}

	templates := Templates(req.Category())
	module := req.ModuleName()
	preconditions := fmt.Sprintf("User is logged in and %s module is accessible", module)
	steps := strings.Join([]string{
		"1. Navigate to " + req.TargetURL(),
		fmt.Sprintf("2. Access %s module", module),
		"3. Perform required actions",
		"4. Verify expected results",
		"5. Document any issues found",
	}, "\n")

	cases := make([]TestCase, count)
	for i := range count {
		seq := offset + i
		cases[i] = TestCase{
			ID:            req.CaseID(seq + 1),
			Description:   strings.ReplaceAll(templates[seq%len(templates)], featurePlaceholder, module),
			Preconditions: preconditions,
			Steps:         steps,
		}
	}
	return cases
}
