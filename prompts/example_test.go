package prompts_test

import (
	"fmt"
	"strings"

	"github.com/skosovsky/geminikit/prompts"
	"github.com/skosovsky/geminikit/schema"
)

func ExampleCategorize() {
	conv, err := prompts.Categorize("The app crashes on login", schema.Categories{
		{Key: "Billing"},
		{Key: "Technical"},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, turn := range conv {
		fmt.Println(turn.Role)
	}
	payload, _ := conv[2].FirstText()
	categories, _, _ := strings.Cut(payload, "\nText to classify")
	fmt.Println(categories)
	// Output:
	// user
	// model
	// user
	// Categories:
	// ```Billing\nTechnical```
}

func ExampleEscapeFence() {
	fmt.Println(prompts.EscapeFence("see ```code``` here"))
	// Output: see ####code#### here
}
