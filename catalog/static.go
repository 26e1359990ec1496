package catalog

import "github.com/skosovsky/geminikit"

// HarmCategories lists the safety categories.
func HarmCategories() []Choice {
	order := []geminikit.HarmCategory{
		geminikit.HarmCategoryDangerousContent,
		geminikit.HarmCategoryHateSpeech,
		geminikit.HarmCategoryHarassment,
		geminikit.HarmCategorySexuallyExplicit,
	}
	out := make([]Choice, 0, len(order))
	for _, c := range order {
		out = append(out, Choice{Label: string(c), Value: string(c)})
	}
	return out
}

// Thresholds lists the block thresholds.
func Thresholds() []Choice {
	order := []geminikit.HarmBlockThreshold{
		geminikit.BlockOnlyHigh,
		geminikit.BlockNone,
		geminikit.BlockMediumAndAbove,
		geminikit.BlockLowAndAbove,
		geminikit.BlockUnspecified,
	}
	out := make([]Choice, 0, len(order))
	for _, t := range order {
		out = append(out, Choice{Label: string(t), Value: string(t)})
	}
	return out
}

var languages = []string{
	"Albanian", "Arabic", "Armenian", "Awadhi", "Azerbaijani", "Bashkir", "Basque",
	"Belarusian", "Bengali", "Bhojpuri", "Bosnian", "Brazilian Portuguese", "Bulgarian",
	"Cantonese (Yue)", "Catalan", "Chhattisgarhi", "Chinese", "Croatian", "Czech", "Danish",
	"Dogri", "Dutch", "English", "Estonian", "Faroese", "Finnish", "French", "Galician",
	"Georgian", "German", "Greek", "Gujarati", "Haryanvi", "Hindi",
	"Hungarian", "Indonesian", "Irish", "Italian", "Japanese", "Javanese", "Kannada",
	"Kashmiri", "Kazakh", "Konkani", "Korean", "Kyrgyz", "Latvian", "Lithuanian",
	"Macedonian", "Maithili", "Malay", "Maltese", "Mandarin", "Mandarin Chinese", "Marathi",
	"Marwari", "Min Nan", "Moldovan", "Mongolian", "Montenegrin", "Nepali", "Norwegian",
	"Oriya", "Pashto", "Persian (Farsi)", "Polish", "Portuguese", "Punjabi", "Rajasthani",
	"Romanian", "Russian", "Sanskrit", "Santali", "Serbian", "Sindhi", "Sinhala", "Slovak",
	"Slovene", "Slovenian", "Swedish", "Ukrainian", "Urdu", "Uzbek", "Vietnamese",
	"Welsh", "Wu",
}

// Languages lists the translation languages offered in forms. Other languages
// may work but are not suggested.
func Languages() []Choice {
	out := make([]Choice, 0, len(languages))
	for _, l := range languages {
		out = append(out, Choice{Label: l, Value: l})
	}
	return out
}

// MessageTypes lists the free-chat input modes.
func MessageTypes() []Choice {
	return []Choice{
		{Label: "Single message", Value: "single_message"},
		{Label: "Chat transcript", Value: "chat_transcript"},
	}
}

// ChatRoles lists the roles of chat transcript entries.
func ChatRoles() []Choice {
	return []Choice{
		{Label: "Model", Value: string(geminikit.RoleModel)},
		{Label: "User", Value: string(geminikit.RoleUser)},
	}
}
