// Package genaitransport implements geminikit.Transport on top of the official
// google.golang.org/genai SDK.
//
// Paths are routed by suffix: "{model}:generateContent" and
// "{model}:embedContent" are posts, "models" is the model listing. Records are
// converted to and from SDK types, and SDK API errors become
// *geminikit.HTTPError so callers see the same failure shape as with
// httptransport.
package genaitransport
