package schema

import "github.com/skosovsky/geminikit"

// SampleProbability is the probability label used in sample safety ratings.
const SampleProbability = "NEGLIGIBLE"

var ratingLabels = map[geminikit.HarmCategory]string{
	geminikit.HarmCategorySexuallyExplicit: "Sexually explicit",
	geminikit.HarmCategoryHateSpeech:       "Hate speech",
	geminikit.HarmCategoryHarassment:       "Harassment",
	geminikit.HarmCategoryDangerousContent: "Dangerous content",
}

// SafetyRatingsField describes the safety-ratings object attached to every
// generated output.
func SafetyRatingsField() Field {
	props := make([]Field, 0, len(geminikit.HarmCategories))
	for _, c := range geminikit.HarmCategories {
		props = append(props, Field{Name: c.RatingKey(), Label: ratingLabels[c]})
	}
	return Field{Name: ReservedName, Label: "Safety ratings", Type: TypeObject, Properties: props}
}

// SafetyRatingsSample returns a safety-ratings value with every category NEGLIGIBLE.
func SafetyRatingsSample() map[string]any {
	out := make(map[string]any, len(geminikit.HarmCategories))
	for _, c := range geminikit.HarmCategories {
		out[c.RatingKey()] = SampleProbability
	}
	return out
}

// AnswerContract is the {answer, safety_ratings} shape; label names the answer field.
func AnswerContract(label string) []Field {
	return []Field{{Name: "answer", Label: label}, SafetyRatingsField()}
}

// EmailContract is the {subject, body, safety_ratings} shape.
func EmailContract() []Field {
	return []Field{
		{Name: "subject", Label: "Email subject"},
		{Name: "body", Label: "Email body"},
		SafetyRatingsField(),
	}
}

// EmbeddingContract is the {embedding: [{value}]} shape.
func EmbeddingContract() []Field {
	return []Field{{
		Name:       "embedding",
		Type:       TypeArray,
		Of:         TypeObject,
		Properties: []Field{{Name: "value", Type: TypeNumber}},
	}}
}
