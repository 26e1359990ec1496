package extract

import "github.com/skosovsky/geminikit"

// SafetyRatings maps each rating key to its probability label; nil encodes as
// JSON null. Built from a candidate it always holds the four category keys.
type SafetyRatings map[string]*string

// Ratings picks the first rating of each known category from rs.
func Ratings(rs []geminikit.SafetyRating) SafetyRatings {
	out := make(SafetyRatings, len(geminikit.HarmCategories))
	for _, c := range geminikit.HarmCategories {
		out[c.RatingKey()] = nil
	}
	for _, c := range geminikit.HarmCategories {
		for _, r := range rs {
			if r.Category == c {
				p := r.Probability
				out[c.RatingKey()] = &p
				break
			}
		}
	}
	return out
}

// Get returns the probability reported for key.
func (s SafetyRatings) Get(key string) (string, bool) {
	p := s[key]
	if p == nil {
		return "", false
	}
	return *p, true
}
