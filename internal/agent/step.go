package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StepKind is the value of a step's "step" field.
type StepKind string

const (
	StepPlan    StepKind = "plan"
	StepAction  StepKind = "action"
	StepObserve StepKind = "observe"
	StepOutput  StepKind = "output"
)

// Step is one structured reply of the model.
type Step struct {
	Kind     StepKind        `json:"step"`
	Content  string          `json:"content,omitempty"`
	Function string          `json:"function,omitempty"`
	Input    json.RawMessage `json:"input,omitempty"`
}

// ProtocolError reports a model reply that broke the step protocol. The
// turn that received it is abandoned.
type ProtocolError struct {
	Reason string
	Reply  string
}

func (e *ProtocolError) Error() string {
	return e.Reason
}

// InvalidJSONMessage is reported when a reply is not a JSON object.
const InvalidJSONMessage = "Invalid JSON response from assistant."

type rawStep struct {
	Step     *string         `json:"step"`
	Content  *string         `json:"content"`
	Function *string         `json:"function"`
	Input    json.RawMessage `json:"input"`
}

// ParseStep decodes and validates a model reply. Only plan, action and
// output steps are accepted from the model.
func ParseStep(reply string) (*Step, error) {
	trimmed := bytes.TrimSpace([]byte(reply))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ProtocolError{Reason: InvalidJSONMessage, Reply: reply}
	}

	var raw rawStep
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ProtocolError{Reason: InvalidJSONMessage, Reply: reply}
	}
	if raw.Step == nil {
		return nil, &ProtocolError{Reason: "Response is missing the 'step' field.", Reply: reply}
	}

	step := &Step{Kind: StepKind(*raw.Step), Input: raw.Input}
	switch step.Kind {
	case StepPlan, StepOutput:
		if raw.Content == nil {
			return nil, &ProtocolError{Reason: fmt.Sprintf("Step '%s' is missing 'content'.", step.Kind), Reply: reply}
		}
		step.Content = *raw.Content
	case StepAction:
		if raw.Function == nil || *raw.Function == "" {
			return nil, &ProtocolError{Reason: "Step 'action' is missing 'function'.", Reply: reply}
		}
		step.Function = *raw.Function
		if raw.Content != nil {
			step.Content = *raw.Content
		}
	default:
		return nil, &ProtocolError{Reason: fmt.Sprintf("Unexpected step '%s'.", step.Kind), Reply: reply}
	}
	return step, nil
}

type observation struct {
	Step   StepKind `json:"step"`
	Output any      `json:"output"`
}

// observe serializes a tool outcome as the observe step appended to the
// conversation. Errors become "Error: <message>".
func observe(payload any, err error) (string, error) {
	if err != nil {
		payload = "Error: " + err.Error()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if encErr := enc.Encode(observation{Step: StepObserve, Output: payload}); encErr != nil {
		return "", fmt.Errorf("failed to encode observation: %w", encErr)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
