package openai

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/codechronicle/ai"
	"github.com/poiesic/codechronicle/vocab"
)

// promptVersion identifies the prompt/schema revision. Cached interpretations
// are keyed by it; bump it whenever the template or schema changes.
const promptVersion = "cc-parse-v1"

const parseResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "date": {
      "type": "string",
      "pattern": "^(\\d{4}(-\\d{2}-\\d{2})?)?$"
    },
    "keywords": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "building_type": {
      "type": "string"
    },
    "province": {
      "type": "string",
      "pattern": "^([A-Z]{2})?$"
    }
  },
  "required": ["date", "keywords", "building_type", "province"],
  "additionalProperties": false
}`

const parsePromptTemplate = `Extract structured search parameters from a question about Canadian building codes and return them as JSON.

Today's date is %s.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "date" is the date the question refers to, as YYYY-MM-DD. Resolve relative phrases ("last year", "when it was built in 2003") against today's date. If only a year is given, return the bare year YYYY. If the question has no temporal anchor, return "".
- "keywords" are search terms chosen ONLY from this controlled vocabulary: %s. Return the matching vocabulary terms, lowercase. Do not invent terms.
- "building_type" must be exactly one of: %s - or "" when the question does not state one.
- "province" is the two-letter code of the Canadian province or territory the question concerns, one of: %s - or "" when none is named.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "What were the fire separation requirements for apartment doors in Ontario in 2019?"
Output:
{
  "date": "2019",
  "keywords": ["fire", "separations", "doors"],
  "building_type": "residential",
  "province": "ON"
}

Example (relative date, no province):
Input: "what did the code say about guard heights when my deck was built 5 years ago"
Output:
{
  "date": "%s",
  "keywords": ["guards", "deck"],
  "building_type": "",
  "province": ""
}

Example (no temporal anchor):
Input: "backflow prevention for commercial kitchens in BC"
Output:
{
  "date": "",
  "keywords": ["plumbing", "kitchen"],
  "building_type": "commercial",
  "province": "BC"
}`

// buildSystemPrompt creates the system prompt with the controlled vocabulary
// and today's date embedded.
func buildSystemPrompt(now time.Time) string {
	return fmt.Sprintf(parsePromptTemplate,
		now.Format("2006-01-02"),
		parseResponseSchema,
		strings.Join(vocab.Keywords, ", "),
		strings.Join(ai.BuildingTypes, ", "),
		strings.Join(ai.Provinces, ", "),
		now.AddDate(-5, 0, 0).Format("2006-01-02"))
}
