// Package suggest implements the pattern-suggestion cycle: building an
// isolated instruction prompt from the catalog, draining the provider's
// response stream, validating the raw output into a bounded list of known
// pattern names, and coordinating the request/selection state around it.
//
// The provider is treated as hostile-but-useful: it is instructed to emit a
// single strict JSON object and routinely does not. Everything downstream of
// the prompt is total and never panics.
package suggest

import (
	"fmt"
	"strings"
)

// DefaultIdentifierCap bounds how many pattern names are embedded in the
// instruction prompt. Order of truncation is input order.
const DefaultIdentifierCap = 150

// IsolatedPrompt is the instruction/message pair for one suggestion request.
// It is built fresh per request and carries no conversational history; the
// system text must never be concatenated with any other system instruction.
type IsolatedPrompt struct {
	SystemText string
	UserText   string
}

// promptShape is the literal output contract embedded in the system text.
const promptShape = `{"patterns":["name1","name2","name3","name4","name5"]}`

// BuildPrompt builds the isolated prompt with the default identifier cap.
func BuildPrompt(userInput string, knownIdentifiers []string) IsolatedPrompt {
	return BuildPromptWithCap(userInput, knownIdentifiers, DefaultIdentifierCap)
}

// BuildPromptWithCap builds the isolated prompt, embedding at most cap
// identifiers. Pure: identical inputs yield identical output.
func BuildPromptWithCap(userInput string, knownIdentifiers []string, cap int) IsolatedPrompt {
	if cap <= 0 {
		cap = DefaultIdentifierCap
	}
	if len(knownIdentifiers) > cap {
		knownIdentifiers = knownIdentifiers[:cap]
	}

	var sb strings.Builder
	sb.WriteString("You are a pattern selection engine. Your only job is to pick the 5 patterns from the list below that best match the user's input.\n\n")
	sb.WriteString("Available patterns:\n")
	for _, name := range knownIdentifiers {
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	sb.WriteString("\nRespond with exactly one JSON object of the form ")
	sb.WriteString(promptShape)
	sb.WriteString(" containing the 5 best-matching pattern names from the list.\n")
	sb.WriteString("Do not write any prose, greeting, explanation, or markdown code fence. ")
	sb.WriteString("The first character of your response must be { and the last character must be }.")

	userText := fmt.Sprintf("%q\n\nEmit the JSON object for the input above now.", userInput)

	return IsolatedPrompt{
		SystemText: sb.String(),
		UserText:   userText,
	}
}
