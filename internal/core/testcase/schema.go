package testcase

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaName identifies the completion envelope in structured-output requests.
const SchemaName = "test_case_list"

// Envelope is the JSON object the model is asked to return.
type Envelope struct {
	TestCases []TestCase `json:"test_cases" jsonschema:"description=Generated manual test cases"`
}

// Schema reflects the JSON Schema of Envelope.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return r.Reflect(&Envelope{})
}

// SchemaJSON returns Schema encoded as JSON.
func SchemaJSON() (json.RawMessage, error) {
	data, err := json.Marshal(Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
