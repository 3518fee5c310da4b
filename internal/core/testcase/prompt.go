package testcase

import "fmt"

// BuildPrompt renders the generation instruction for req.
// The output depends only on req, so equal requests give identical prompts.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(`Generate %[1]d %[2]s test cases for the module/feature: %[3]s that will be executed on the URL: %[4]s.

For each test case, provide:
1. Test Case ID (format: TC_%[5]s_XXX)
2. Description - A clear, concise description of what the test case verifies
3. Preconditions - What must be in place before executing this test case
4. Steps - Detailed step-by-step instructions to execute the test case, including navigation to %[4]s

Return the response in the following JSON format ONLY (no additional text):
{
  "test_cases": [
    {
      "test_case_id": "TC_EXAMPLE_001",
      "description": "Verify that user can successfully log in with valid credentials",
      "preconditions": "User account exists and is active",
      "steps": "1. Navigate to %[4]s\n2. Enter valid username\n3. Enter valid password\n4. Click login button\n5. Verify successful login"
    }
  ]
}

Requirements:
- A single JSON object, no code fences, comments or prose around it
- Double quotes for keys/strings
- No trailing commas

Make sure the test cases are comprehensive and cover different scenarios including:
- Positive test cases (valid inputs)
- Negative test cases (invalid inputs)
- Edge cases (boundary conditions)
- Error scenarios

Focus on practical, executable test cases that would be useful for manual testing on the specified URL.`,
		req.Count(), req.Category(), req.ModuleName(), req.TargetURL(), req.ModuleID())
}

// SystemPrompt is sent alongside BuildPrompt by providers that support a system role.
const SystemPrompt = "Role: Manual QA test case writer. Return pure JSON only - no markdown, no comments."
