package geminikit

import (
	"slices"
	"strings"
)

// ApplySettings merges s into req and returns req.
//
// Safety settings with a blank category or threshold are dropped, and the
// safetySettings key is set only when at least one pair remains. Generation
// values that are unset are dropped, except temperature, which defaults to 0.
// The generationConfig key is therefore always present unless a caller later
// clears it. Settings already on req are replaced.
func ApplySettings(req *GenerateRequest, s Settings) *GenerateRequest {
	if req == nil {
		return nil
	}
	var safety []SafetySetting
	for _, ss := range s.SafetySettings {
		if ss.blank() {
			continue
		}
		safety = append(safety, ss)
	}
	req.SafetySettings = safety

	g := overlayGeneration(s.GenerationConfig)
	req.GenerationConfig = nil
	if !g.IsEmpty() {
		req.GenerationConfig = g
	}
	return req
}

func overlayGeneration(in *GenerationConfig) *GenerationConfig {
	out := &GenerationConfig{}
	if in != nil {
		for _, seq := range in.StopSequences {
			if strings.TrimSpace(seq) != "" {
				out.StopSequences = append(out.StopSequences, seq)
			}
		}
		out.Temperature = clonePtr(in.Temperature)
		out.MaxOutputTokens = clonePtr(in.MaxOutputTokens)
		out.TopP = clonePtr(in.TopP)
		out.TopK = clonePtr(in.TopK)
	}
	if out.Temperature == nil {
		zero := 0.0
		out.Temperature = &zero
	}
	out.StopSequences = slices.Clip(out.StopSequences)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
