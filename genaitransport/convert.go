package genaitransport

import (
	"math"

	"google.golang.org/genai"

	"github.com/skosovsky/geminikit"
)

func toContents(conv geminikit.Conversation) ([]*genai.Content, error) {
	out := make([]*genai.Content, 0, len(conv))
	for _, turn := range conv {
		c, err := toContent(turn)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func toContent(turn geminikit.Turn) (*genai.Content, error) {
	parts := make([]*genai.Part, 0, len(turn.Parts))
	for _, p := range turn.Parts {
		switch x := p.(type) {
		case geminikit.TextPart:
			parts = append(parts, genai.NewPartFromText(x.Text))
		case geminikit.BlobPart:
			raw, err := x.Bytes()
			if err != nil {
				return nil, err
			}
			parts = append(parts, genai.NewPartFromBytes(raw, x.MIMEType))
		}
	}
	return &genai.Content{Role: string(turn.Role), Parts: parts}, nil
}

func toGenerateConfig(req *geminikit.GenerateRequest) *genai.GenerateContentConfig {
	if len(req.SafetySettings) == 0 && req.GenerationConfig == nil {
		return nil
	}
	cfg := &genai.GenerateContentConfig{}
	for _, s := range req.SafetySettings {
		cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}
	if g := req.GenerationConfig; g != nil {
		cfg.StopSequences = g.StopSequences
		cfg.Temperature = float32Ptr(g.Temperature)
		cfg.TopP = float32Ptr(g.TopP)
		cfg.TopK = float32Ptr(g.TopK)
		if g.MaxOutputTokens != nil {
			n := *g.MaxOutputTokens
			if n > math.MaxInt32 {
				n = math.MaxInt32
			}
			cfg.MaxOutputTokens = int32(n) // #nosec G115 -- clamped above
		}
	}
	return cfg
}

func float32Ptr(p *float64) *float32 {
	if p == nil {
		return nil
	}
	v := float32(*p)
	return &v
}

func fromGenerateResponse(resp *genai.GenerateContentResponse) geminikit.GenerateResponse {
	var out geminikit.GenerateResponse
	if resp == nil {
		return out
	}
	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		cand := geminikit.Candidate{FinishReason: string(c.FinishReason)}
		if c.Content != nil {
			cand.Content = fromContent(c.Content)
		}
		for _, r := range c.SafetyRatings {
			if r == nil {
				continue
			}
			cand.SafetyRatings = append(cand.SafetyRatings, geminikit.SafetyRating{
				Category:    geminikit.HarmCategory(r.Category),
				Probability: string(r.Probability),
			})
		}
		out.Candidates = append(out.Candidates, cand)
	}
	return out
}

// fromContent keeps text and inline data parts. Thought parts are dropped.
func fromContent(c *genai.Content) geminikit.Turn {
	turn := geminikit.Turn{Role: geminikit.Role(c.Role)}
	for _, p := range c.Parts {
		switch {
		case p == nil || p.Thought:
		case p.InlineData != nil:
			turn.Parts = append(turn.Parts, geminikit.NewBlobPart(p.InlineData.MIMEType, p.InlineData.Data))
		case p.Text != "":
			turn.Parts = append(turn.Parts, geminikit.TextPart{Text: p.Text})
		}
	}
	return turn
}
