package testcase

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Tier names the parse attempt that produced a result.
type Tier string

const (
	TierStrict  Tier = "strict"
	TierLenient Tier = "lenient"
	TierNone    Tier = "none"
)

// ParseResult is the outcome of ParseCompletionTier.
type ParseResult struct {
	Cases []TestCase
	Tier  Tier
}

// Outermost brace-delimited object, tolerating one level of nested braces.
var objectPattern = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

type attempt struct {
	tier Tier
	fn   func(raw string, req Request) ([]TestCase, bool)
}

var attempts = []attempt{
	{tier: TierStrict, fn: parseStrict},
	{tier: TierLenient, fn: parseLenient},
}

// ParseCompletion extracts test cases from a raw model completion.
// It never fails: when nothing usable is found it returns an empty slice.
func ParseCompletion(raw string, req Request) []TestCase {
	return ParseCompletionTier(raw, req).Cases
}

// ParseCompletionTier is ParseCompletion that also reports which attempt won.
func ParseCompletionTier(raw string, req Request) ParseResult {
	for _, a := range attempts {
		if cases, ok := a.fn(raw, req); ok {
			return ParseResult{Cases: cases, Tier: a.tier}
		}
	}
	return ParseResult{Cases: []TestCase{}, Tier: TierNone}
}

func parseStrict(raw string, req Request) ([]TestCase, bool) {
	return decodeEnvelope(strings.TrimSpace(raw), req)
}

func parseLenient(raw string, req Request) ([]TestCase, bool) {
	match := objectPattern.FindString(raw)
	if match == "" {
		return nil, false
	}
	return decodeEnvelope(match, req)
}

// decodeEnvelope accepts only a single JSON object whose test_cases member is an array.
func decodeEnvelope(text string, req Request) ([]TestCase, bool) {
	if !gjson.Valid(text) {
		return nil, false
	}
	res := gjson.Parse(text)
	if !res.IsObject() {
		return nil, false
	}
	items := res.Get("test_cases")
	if !items.IsArray() {
		return nil, false
	}

	cases := []TestCase{}
	seen := make(map[string]bool)
	items.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		id := item.Get("test_case_id").String()
		if strings.TrimSpace(id) == "" || seen[id] {
			id = nextFreeID(req, len(cases)+1, seen)
		}
		seen[id] = true
		cases = append(cases, TestCase{
			ID:            id,
			Description:   item.Get("description").String(),
			Preconditions: item.Get("preconditions").String(),
			Steps:         item.Get("steps").String(),
		})
		return true
	})
	return cases, true
}

// nextFreeID returns the first synthesized id at or after seq not present in seen.
func nextFreeID(req Request, seq int, seen map[string]bool) string {
	id := req.CaseID(seq)
	for seen[id] {
		seq++
		id = req.CaseID(seq)
	}
	return id
}
