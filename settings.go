package geminikit

import (
	"fmt"
	"strings"

	"github.com/skosovsky/geminikit/internal/cast"
)

// HarmCategory names a safety filter category.
type HarmCategory string

// Harm categories accepted in safety settings.
const (
	HarmCategoryHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// HarmCategories lists the categories in the order outputs report them.
var HarmCategories = []HarmCategory{
	HarmCategorySexuallyExplicit,
	HarmCategoryHateSpeech,
	HarmCategoryHarassment,
	HarmCategoryDangerousContent,
}

// RatingKey returns the key under which outputs report the category's rating,
// or "" for categories outside HarmCategories.
func (c HarmCategory) RatingKey() string {
	switch c {
	case HarmCategorySexuallyExplicit:
		return "sexually_explicit"
	case HarmCategoryHateSpeech:
		return "hate_speech"
	case HarmCategoryHarassment:
		return "harassment"
	case HarmCategoryDangerousContent:
		return "dangerous_content"
	default:
		return ""
	}
}

// HarmBlockThreshold is the probability at and above which content is blocked.
type HarmBlockThreshold string

// Block thresholds accepted in safety settings.
const (
	BlockUnspecified    HarmBlockThreshold = "HARM_BLOCK_THRESHOLD_UNSPECIFIED"
	BlockLowAndAbove    HarmBlockThreshold = "BLOCK_LOW_AND_ABOVE"
	BlockMediumAndAbove HarmBlockThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockOnlyHigh       HarmBlockThreshold = "BLOCK_ONLY_HIGH"
	BlockNone           HarmBlockThreshold = "BLOCK_NONE"
)

// HarmBlockThresholds lists every threshold.
var HarmBlockThresholds = []HarmBlockThreshold{
	BlockUnspecified,
	BlockLowAndAbove,
	BlockMediumAndAbove,
	BlockOnlyHigh,
	BlockNone,
}

// SafetySetting pairs a harm category with a block threshold.
type SafetySetting struct {
	Category  HarmCategory       `json:"category"`
	Threshold HarmBlockThreshold `json:"threshold"`
}

// blank reports whether either half of the pair is missing.
func (s SafetySetting) blank() bool {
	return strings.TrimSpace(string(s.Category)) == "" || strings.TrimSpace(string(s.Threshold)) == ""
}

// GenerationConfig tunes sampling. Nil fields are unset and never sent.
type GenerationConfig struct {
	StopSequences   []string `json:"stopSequences,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens *int64   `json:"maxOutputTokens,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	TopK            *float64 `json:"topK,omitempty"`
}

// IsEmpty reports whether no field is set.
func (g *GenerationConfig) IsEmpty() bool {
	return g == nil || (len(g.StopSequences) == 0 && g.Temperature == nil &&
		g.MaxOutputTokens == nil && g.TopP == nil && g.TopK == nil)
}

// Settings are the caller-supplied safety and generation settings merged into
// generateContent requests by ApplySettings.
type Settings struct {
	SafetySettings   []SafetySetting   `json:"safetySettings,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// IsZero reports whether the settings carry nothing.
func (s Settings) IsZero() bool {
	return len(s.SafetySettings) == 0 && s.GenerationConfig == nil
}

// Validate checks generation values are within the ranges the API accepts.
// Returns an error wrapping ErrInvalidSettings.
func (s Settings) Validate() error {
	g := s.GenerationConfig
	if g == nil {
		return nil
	}
	switch {
	case g.Temperature != nil && *g.Temperature < 0:
		return fmt.Errorf("%w: temperature must not be negative, got %v", ErrInvalidSettings, *g.Temperature)
	case g.MaxOutputTokens != nil && *g.MaxOutputTokens <= 0:
		return fmt.Errorf("%w: maxOutputTokens must be positive, got %d", ErrInvalidSettings, *g.MaxOutputTokens)
	case g.TopP != nil && (*g.TopP < 0 || *g.TopP > 1):
		return fmt.Errorf("%w: topP must be within [0, 1], got %v", ErrInvalidSettings, *g.TopP)
	case g.TopK != nil && *g.TopK <= 0:
		return fmt.Errorf("%w: topK must be positive, got %v", ErrInvalidSettings, *g.TopK)
	}
	return nil
}

// ParseSettings builds Settings from a loosely typed document such as a decoded
// JSON request or YAML action block. It reads the "safetySettings" list and the
// "generationConfig" object; blank values are skipped and numeric strings are
// accepted. The result is validated.
func ParseSettings(raw map[string]any) (Settings, error) {
	var s Settings
	if v, ok := raw["safetySettings"]; ok && !cast.IsBlank(v) {
		items, ok := cast.ToMapSlice(v)
		if !ok {
			return Settings{}, fmt.Errorf("%w: safetySettings must be a list of objects", ErrInvalidSettings)
		}
		for _, item := range items {
			category, _ := cast.ToString(item["category"])
			threshold, _ := cast.ToString(item["threshold"])
			ss := SafetySetting{Category: HarmCategory(category), Threshold: HarmBlockThreshold(threshold)}
			if ss.blank() {
				continue
			}
			s.SafetySettings = append(s.SafetySettings, ss)
		}
	}
	if v, ok := raw["generationConfig"]; ok && !cast.IsBlank(v) {
		m, ok := v.(map[string]any)
		if !ok {
			return Settings{}, fmt.Errorf("%w: generationConfig must be an object", ErrInvalidSettings)
		}
		g, err := parseGenerationConfig(m)
		if err != nil {
			return Settings{}, err
		}
		if !g.IsEmpty() {
			s.GenerationConfig = g
		}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func parseGenerationConfig(m map[string]any) (*GenerationConfig, error) {
	g := &GenerationConfig{}
	if v := m["stopSequences"]; !cast.IsBlank(v) {
		seqs, ok := cast.ToStringSlice(v)
		if !ok {
			return nil, fmt.Errorf("%w: stopSequences must be a list of strings", ErrInvalidSettings)
		}
		g.StopSequences = seqs
	}
	floats := []struct {
		key string
		dst **float64
	}{
		{"temperature", &g.Temperature},
		{"topP", &g.TopP},
		{"topK", &g.TopK},
	}
	for _, f := range floats {
		v := m[f.key]
		if cast.IsBlank(v) {
			continue
		}
		n, ok := cast.ToFloat64(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a number, got %v", ErrInvalidSettings, f.key, v)
		}
		*f.dst = &n
	}
	if v := m["maxOutputTokens"]; !cast.IsBlank(v) {
		n, ok := cast.ToInt64(v)
		if !ok {
			return nil, fmt.Errorf("%w: maxOutputTokens must be an integer, got %v", ErrInvalidSettings, v)
		}
		g.MaxOutputTokens = &n
	}
	return g, nil
}
