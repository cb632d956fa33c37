package events

import (
	"encoding/json"
	"strings"

	"github.com/redstarmatt/since-sean-left/internal/llm"
	"github.com/redstarmatt/since-sean-left/internal/schemas"
)

// noneSentinel is the model's explicit "nothing newsworthy" signal.
const noneSentinel = "none"

// Outcome classifies what the model's response turned out to be.
type Outcome int

const (
	// OutcomeEvents means the response parsed into zero or more valid events.
	OutcomeEvents Outcome = iota
	// OutcomeNone means the model explicitly signalled nothing newsworthy.
	OutcomeNone
	// OutcomeMalformed means the response could not be parsed as an event
	// array. The run continues with no document change.
	OutcomeMalformed
)

// Result is the tagged outcome of response validation, so callers can tell
// "nothing to do" from "something went wrong" without inspecting logs.
type Result struct {
	Outcome Outcome
	Events  []Event
	// Raw holds the unparseable text when Outcome is OutcomeMalformed.
	Raw string
}

// ParseResponse validates raw model text into at most MaxEvents events.
// Malformed output is never an error: the pipeline must survive whatever
// the model returns.
func ParseResponse(raw string) Result {
	text := strings.TrimSpace(raw)
	if strings.EqualFold(text, noneSentinel) {
		return Result{Outcome: OutcomeNone}
	}

	text = llm.CleanJSONBlock(text)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return Result{Outcome: OutcomeMalformed, Raw: text}
	}

	validated := make([]Event, 0, len(elements))
	for _, element := range elements {
		// Elements missing any of the four keys are dropped, not repaired.
		if err := schemas.ValidateEvent(element); err != nil {
			continue
		}

		var event Event
		if err := json.Unmarshal(element, &event); err != nil {
			continue
		}

		event.Tags = FilterTags(event.Tags)
		event.Title = EscapeQuotes(event.Title)
		event.Desc = EscapeQuotes(event.Desc)
		validated = append(validated, event)
	}

	if len(validated) > MaxEvents {
		validated = validated[:MaxEvents]
	}

	return Result{Outcome: OutcomeEvents, Events: validated}
}
