package geminikit

import "strings"

// ModelsPath is the path of the model listing endpoint.
const ModelsPath = "models"

// ModelResource returns name in "models/{id}" form, adding the prefix when missing.
func ModelResource(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "/") {
		return name
	}
	return "models/" + name
}

// GenerateContentPath is the generateContent path for model.
func GenerateContentPath(model string) string {
	return ModelResource(model) + ":generateContent"
}

// EmbedContentPath is the embedContent path for model.
func EmbedContentPath(model string) string {
	return ModelResource(model) + ":embedContent"
}

// GenerateRequest is the generateContent request body.
type GenerateRequest struct {
	Contents         Conversation      `json:"contents"`
	SafetySettings   []SafetySetting   `json:"safetySettings,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateResponse is the generateContent response body.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// FirstCandidate returns the first candidate. ok is false when there is none,
// which happens when the prompt itself was blocked.
func (r *GenerateResponse) FirstCandidate() (c Candidate, ok bool) {
	if r == nil || len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Candidate is one generated answer.
type Candidate struct {
	Content       Turn           `json:"content"`
	FinishReason  string         `json:"finishReason,omitempty"`
	SafetyRatings []SafetyRating `json:"safetyRatings,omitempty"`
}

// SafetyRating is the probability the candidate falls in a harm category.
type SafetyRating struct {
	Category    HarmCategory `json:"category"`
	Probability string       `json:"probability"`
}

// EmbedRequest is the embedContent request body.
type EmbedRequest struct {
	Model   string `json:"model"`
	Content Turn   `json:"content"`
}

// EmbedResponse is the embedContent response body.
type EmbedResponse struct {
	Embedding Embedding `json:"embedding"`
}

// Embedding holds the vector returned by embedContent.
type Embedding struct {
	Values []float64 `json:"values"`
}

// Model describes one entry of the model listing.
type Model struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
}

// ModelList is the model listing response body.
type ModelList struct {
	Models        []Model `json:"models"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}
