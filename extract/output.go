package extract

import (
	"maps"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/internal/jsonx"
)

// NotAvailable is the answer reported when the candidate carries no safety ratings.
const NotAvailable = "N/A"

// Mode selects how the answer is read from the reply text.
type Mode int

const (
	// RawText uses the first text part unmodified.
	RawText Mode = iota
	// JSONResponse reads the "response" key of the JSON object in the reply.
	JSONResponse
)

// AnswerOutput is the {answer, safety_ratings} output.
type AnswerOutput struct {
	Answer        *string       `json:"answer"`
	SafetyRatings SafetyRatings `json:"safety_ratings"`
}

// EmailOutput is the {subject, body, safety_ratings} output.
type EmailOutput struct {
	Subject       *string       `json:"subject"`
	Body          *string       `json:"body"`
	SafetyRatings SafetyRatings `json:"safety_ratings"`
}

// ParsedOutput holds the schema-declared keys of a parse reply. It encodes as a
// flat object of those keys plus safety_ratings.
type ParsedOutput struct {
	Fields        map[string]any
	SafetyRatings SafetyRatings
}

// MarshalJSON flattens Fields next to safety_ratings.
func (o ParsedOutput) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(o.Fields)+1)
	maps.Copy(flat, o.Fields)
	flat["safety_ratings"] = o.SafetyRatings
	return jsonx.Marshal(flat)
}

// EmbeddingValue is one vector component.
type EmbeddingValue struct {
	Value float64 `json:"value"`
}

// EmbeddingOutput is the {embedding: [{value}]} output.
type EmbeddingOutput struct {
	Embedding []EmbeddingValue `json:"embedding"`
}

// Answer builds an AnswerOutput from the first candidate. The finish reason is
// checked first. A candidate without safety ratings short-circuits to
// NotAvailable with an empty ratings object.
func Answer(resp *geminikit.GenerateResponse, mode Mode) (*AnswerOutput, error) {
	c, _ := resp.FirstCandidate()
	if err := CheckFinishReason(c.FinishReason); err != nil {
		return nil, err
	}
	if len(c.SafetyRatings) == 0 {
		na := NotAvailable
		return &AnswerOutput{Answer: &na, SafetyRatings: SafetyRatings{}}, nil
	}
	out := &AnswerOutput{SafetyRatings: Ratings(c.SafetyRatings)}
	text, ok := c.Content.FirstText()
	if !ok {
		return out, nil
	}
	switch mode {
	case JSONResponse:
		obj, _ := EmbeddedJSON(text)
		out.Answer = stringValue(obj["response"])
	default:
		out.Answer = &text
	}
	return out, nil
}

// Email builds an EmailOutput from the "subject" and "body" keys of the reply.
func Email(resp *geminikit.GenerateResponse) (*EmailOutput, error) {
	c, _ := resp.FirstCandidate()
	if err := CheckFinishReason(c.FinishReason); err != nil {
		return nil, err
	}
	obj := replyObject(c)
	return &EmailOutput{
		Subject:       stringValue(obj["subject"]),
		Body:          stringValue(obj["body"]),
		SafetyRatings: Ratings(c.SafetyRatings),
	}, nil
}

// Parsed copies each of keys from the reply object; missing keys are nil.
func Parsed(resp *geminikit.GenerateResponse, keys []string) (*ParsedOutput, error) {
	c, _ := resp.FirstCandidate()
	if err := CheckFinishReason(c.FinishReason); err != nil {
		return nil, err
	}
	obj := replyObject(c)
	fields := make(map[string]any, len(keys))
	for _, k := range keys {
		fields[k] = obj[k]
	}
	return &ParsedOutput{Fields: fields, SafetyRatings: Ratings(c.SafetyRatings)}, nil
}

// Embedding converts the embedContent vector.
func Embedding(resp *geminikit.EmbedResponse) *EmbeddingOutput {
	if resp == nil || resp.Embedding.Values == nil {
		return &EmbeddingOutput{}
	}
	out := &EmbeddingOutput{Embedding: make([]EmbeddingValue, 0, len(resp.Embedding.Values))}
	for _, v := range resp.Embedding.Values {
		out.Embedding = append(out.Embedding, EmbeddingValue{Value: v})
	}
	return out
}

func replyObject(c geminikit.Candidate) map[string]any {
	text, ok := c.Content.FirstText()
	if !ok {
		return map[string]any{}
	}
	obj, _ := EmbeddedJSON(text)
	return obj
}

// stringValue returns strings as is and encodes any other non-nil value as
// compact JSON.
func stringValue(v any) *string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return &x
	default:
		data, err := jsonx.Marshal(x)
		if err != nil {
			return nil
		}
		s := string(data)
		return &s
	}
}
