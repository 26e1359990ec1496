package action_test

import (
	"fmt"

	"github.com/skosovsky/geminikit/action"
	"github.com/skosovsky/geminikit/internal/jsonx"
	"github.com/skosovsky/geminikit/schema"
)

func ExampleDefinition_SampleOutput() {
	s, err := schema.New([]schema.Field{{Name: "total", Type: schema.TypeNumber}, {Name: "1due"}})
	if err != nil {
		fmt.Println(err)
		return
	}
	def := action.Definition{Name: "invoice", Kind: action.KindParseText, Model: "gemini-pro", Schema: s}
	data, err := jsonx.Marshal(def.SampleOutput())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(data))
	// Output:
	// {"_31due":"\u003cSample text\u003e","safety_ratings":{"dangerous_content":"NEGLIGIBLE","harassment":"NEGLIGIBLE","hate_speech":"NEGLIGIBLE","sexually_explicit":"NEGLIGIBLE"},"total":"\u003cSample text\u003e"}
}
