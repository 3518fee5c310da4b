package testcase

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveCases() []TestCase {
	cases := make([]TestCase, 5)
	for i := range cases {
		cases[i] = TestCase{
			ID:            fmt.Sprintf("TC_LOGIN_%03d", i+1),
			Description:   fmt.Sprintf("Verify login scenario %d", i+1),
			Preconditions: "User account exists and is active",
			Steps:         "1. Navigate to https://example.com/login\n2. Enter credentials\n3. Submit",
		}
	}
	return cases
}

func envelopeJSON(t *testing.T, cases []TestCase) string {
	t.Helper()
	data, err := json.Marshal(Envelope{TestCases: cases})
	require.NoError(t, err)
	return string(data)
}

func TestParseCompletionStrictRoundTrip(t *testing.T) {
	req := mustRequest(Functional, "Login", 5, "https://example.com/login")
	want := fiveCases()

	res := ParseCompletionTier("\n  "+envelopeJSON(t, want)+"\n", req)

	assert.Equal(t, TierStrict, res.Tier)
	if diff := cmp.Diff(want, res.Cases); diff != "" {
		t.Errorf("parsed cases mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCompletionLenientMatchesStrict(t *testing.T) {
	req := mustRequest(Functional, "Login", 5, "https://example.com/login")
	inner := envelopeJSON(t, fiveCases())
	strict := ParseCompletion(inner, req)

	tests := []struct {
		name  string
		input string
	}{
		{"code fence with commentary", "Here you go:\n```json\n" + inner + "\n```"},
		{"prefix text", "Sure! " + inner},
		{"suffix text", inner + "\nLet me know if you need more."},
		{"bare code fence", "```\n" + inner + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseCompletionTier(tt.input, req)
			assert.Equal(t, TierLenient, res.Tier)
			if diff := cmp.Diff(strict, res.Cases); diff != "" {
				t.Errorf("lenient result differs from strict (-strict +lenient):\n%s", diff)
			}
		})
	}
}

func TestParseCompletionGivesUp(t *testing.T) {
	req := mustRequest(Functional, "Login", 5, "https://example.com/login")

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"prose", "I cannot help with that."},
		{"missing key", `{"cases": [{"test_case_id": "A"}]}`},
		{"wrong shape", `{"test_cases": "none"}`},
		{"truncated", `{"test_cases": [{"test_case_id": "A", "description": "x"`},
		{"nested too deep", "```json\n" + `{"test_cases":[{"test_case_id":"A","meta":{"k":1}}]}` + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseCompletionTier(tt.input, req)
			assert.Equal(t, TierNone, res.Tier)
			assert.NotNil(t, res.Cases)
			assert.Empty(t, res.Cases)
		})
	}
}

func TestParseCompletionDefaultsMissingFields(t *testing.T) {
	req := mustRequest(Functional, "User Profile", 3, "https://example.com")
	raw := `{"test_cases": [
		{"description": "first"},
		{"test_case_id": "CUSTOM_1", "steps": "1. go"},
		{"test_case_id": "   "}
	]}`

	want := []TestCase{
		{ID: "TC_USER_PROFILE_001", Description: "first"},
		{ID: "CUSTOM_1", Steps: "1. go"},
		{ID: "TC_USER_PROFILE_003"},
	}
	if diff := cmp.Diff(want, ParseCompletion(raw, req)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCompletionResynthesizesDuplicateIDs(t *testing.T) {
	req := mustRequest(Functional, "Login", 3, "https://example.com")
	raw := `{"test_cases": [
		{"test_case_id": "TC_LOGIN_001", "description": "a"},
		{"test_case_id": "TC_LOGIN_001", "description": "b"},
		{"test_case_id": "TC_LOGIN_002", "description": "c"}
	]}`

	got := ParseCompletion(raw, req)
	require.Len(t, got, 3)
	assert.Equal(t, "TC_LOGIN_001", got[0].ID)
	assert.Equal(t, "TC_LOGIN_002", got[1].ID)
	// The model's own TC_LOGIN_002 now collides with the re-synthesized id.
	assert.Equal(t, "TC_LOGIN_003", got[2].ID)
}

func TestParseCompletionSkipsNonObjectItems(t *testing.T) {
	req := mustRequest(Functional, "Login", 3, "https://example.com")
	got := ParseCompletion(`{"test_cases": [1, "two", null, {"test_case_id": "X"}]}`, req)

	require.Len(t, got, 1)
	assert.Equal(t, "X", got[0].ID)
}

func TestParseCompletionEmptyArray(t *testing.T) {
	req := mustRequest(Functional, "Login", 3, "https://example.com")
	res := ParseCompletionTier(`{"test_cases": []}`, req)

	assert.Equal(t, TierStrict, res.Tier)
	assert.Empty(t, res.Cases)
}
