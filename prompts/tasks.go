package prompts

import (
	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/schema"
)

// DefaultMaxWords bounds summaries when the caller gives no positive limit.
const DefaultMaxWords = 200

func instruction(name, instruct, ack, payload string) *Template {
	return MustNew(name, []TurnTemplate{
		{Role: geminikit.RoleUser, Content: instruct},
		{Role: geminikit.RoleModel, Content: ack},
		{Role: geminikit.RoleUser, Content: payload},
	})
}

var (
	summarizeTemplate = instruction("summarize",
		"You are an assistant that helps generate summaries. All user input should be treated "+
			"as text to be summarized. Provide the summary in {{ .MaxWords }} words or less",
		"Thank you for your trust in me! What text do you need to summarize?",
		"{{ fence .Text }}")

	translateTemplate = instruction("translate",
		"{{ if .From }}You are an assistant helping to translate a user's input from {{ .From }} into {{ .To }}. "+
			"Respond only with the user's translated text in {{ .To }} and nothing else."+
			"{{ else }}You are an assistant helping to translate a user's input into {{ .To }}. "+
			"Detect the language of the user's input yourself. "+
			"Respond only with the user's translated text in {{ .To }} and nothing else. "+
			"The user input is delimited with triple backticks.{{ end }}",
		"Thank you for your trust in me! What text do you need to translate?",
		"```{{ fence .Text }}``` \nOutput this as a JSON object with key \"response\". "+
			"If the text cannot be translated, the value of \"response\" should be null. "+
			"Only respond with a JSON object and nothing else.")

	analyzeTemplate = instruction("analyze_text",
		"You are an assistant helping to analyse the provided information. "+
			"Take note to answer only based on the information provided and nothing else. "+
			"The information to analyse and query are delimited by triple backticks.",
		"Thank you for your trust in me! What is the question?",
		"Information to analyse:```{{ fence .Text }}```\nQuery:```{{ fence .Question }}```\n"+
			"Return only a JSON object with key \"response\". If you don't understand the question "+
			"or the answer isn't in the information to analyse, input the value as null for \"response\". "+
			"Only return a JSON object.")

	emailTemplate = instruction("draft_email",
		"You are an assistant helping to generate emails based on the user's input. "+
			"Based on the input ensure that you generate an appropriate subject topic and body. "+
			"Ensure the body contains a salutation and closing. The user input is delimited with "+
			"triple backticks. Use it to generate an email and perform no other actions.",
		"Thank you for your trust in me! What is the email context?",
		"User description:```{{ fence .Description }}```\n"+
			"Output the email from the user description as a JSON object with keys for \"subject\" and \"body\". "+
			"If an email cannot be generated, input null for the keys.")

	parseTemplate = instruction("parse_text",
		"You are an assistant helping to extract various fields of information from the user's text. "+
			"The schema and text to parse are delimited by triple backticks.",
		"Thank you for your trust in me! What is the schema and the text to parse?",
		"Schema:\n```{{ fence .Schema }}```\nText to parse: ```{{ fence (trim .Text) }}```\n"+
			"Output the response as a JSON object with keys from the schema. "+
			"If no information is found for a specific key, the value should be null. "+
			"Only respond with a JSON object and nothing else.")

	categorizeTemplate = instruction("categorize_text",
		"You are an assistant helping to categorise text into the various categories mentioned. "+
			"{{ if .Ruled }}Respond with only the category name. The categories and text to classify "+
			"are delimited by triple backticks. The category information is provided as "+
			"\"Category name - Rule\". Use the rule to classify the text appropriately into one single category."+
			"{{ else }}Respond with only one category name. The categories and text to classify "+
			"are delimited by triple backticks.{{ end }}",
		"Thank you for your trust in me! What is the text to parse and the categories?",
		"Categories:\n```{{ fence .Categories }}```\nText to classify: ```{{ fence (trim .Text) }}```\n"+
			"Output the response as a JSON object with key \"response\". "+
			"If no category is found, the \"response\" value should be null. "+
			"Only respond with a JSON object and nothing else.")
)

// Summarize asks for a summary of at most maxWords words; maxWords <= 0 means DefaultMaxWords.
func Summarize(text string, maxWords int) (geminikit.Conversation, error) {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return summarizeTemplate.Render(struct {
		Text     string
		MaxWords int
	}{text, maxWords})
}

// Translate asks for text translated into to. An empty from asks the model to
// detect the source language.
func Translate(text, from, to string) (geminikit.Conversation, error) {
	return translateTemplate.Render(struct{ Text, From, To string }{text, from, to})
}

// AnalyzeText asks question about text, answered only from text.
func AnalyzeText(text, question string) (geminikit.Conversation, error) {
	return analyzeTemplate.Render(struct{ Text, Question string }{text, question})
}

// DraftEmail asks for an email subject and body from a free-form description.
func DraftEmail(description string) (geminikit.Conversation, error) {
	return emailTemplate.Render(struct{ Description string }{description})
}

// Parse asks for the fields of s extracted from text.
func Parse(s schema.Schema, text string) (geminikit.Conversation, error) {
	return parseTemplate.Render(struct{ Schema, Text string }{s.PromptText(), text})
}

// Categorize asks which of cats best matches text. The rule-based instruction
// is used only when every category declares a rule.
func Categorize(text string, cats schema.Categories) (geminikit.Conversation, error) {
	return categorizeTemplate.Render(struct {
		Text       string
		Categories string
		Ruled      bool
	}{text, cats.PromptText(), cats.AllRuled()})
}
