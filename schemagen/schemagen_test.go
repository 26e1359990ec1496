package schemagen

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/skosovsky/geminikit/schema"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGoName(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"invoice_number": "InvoiceNumber",
		"1due":           "F1due",
		"total":          "Total",
		"first name":     "FirstName",
		"__":             "Field",
		"type":           "Type",
	}
	for in, want := range tests {
		assert.Equal(t, want, GoName(in), in)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	s, err := schema.Parse([]byte(`[
		{"name":"invoice_number","label":"Invoice number"},
		{"name":"total","type":"number","description":"Grand total"},
		{"name":"paid","type":"boolean"},
		{"name":"tags","type":"array"},
		{"name":"lines","type":"array","of":"object","properties":[{"name":"sku"},{"name":"qty","type":"integer"}]},
		{"name":"vendor","type":"object","properties":[{"name":"name"}]}
	]`))
	require.NoError(t, err)

	src, err := Generate("invoices", "Invoice", s)
	require.NoError(t, err)
	code := string(src)

	_, err = parser.ParseFile(token.NewFileSet(), "invoice.go", src, parser.AllErrors)
	require.NoError(t, err, code)

	assert.Contains(t, code, "// Code generated by geminikit gen. DO NOT EDIT.")
	assert.Contains(t, code, "package invoices")
	assert.Contains(t, code, "type Invoice struct")
	assert.Regexp(t, `InvoiceNumber\s+\*string\s+`+"`"+`json:"invoice_number"`+"`"+`\s+// Invoice number`, code)
	assert.Regexp(t, `Total\s+\*float64`, code)
	assert.Contains(t, code, "// Grand total")
	assert.Regexp(t, `Paid\s+\*bool`, code)
	assert.Regexp(t, `Tags\s+\[\]string`, code)
	assert.Regexp(t, `Lines\s+\[\]struct`, code)
	assert.Regexp(t, `Qty\s+\*int64`, code)
	assert.Regexp(t, `Vendor\s+\*struct`, code)
	assert.Regexp(t, `SafetyRatings\s+map\[string\]\*string\s+`+"`"+`json:"safety_ratings"`+"`", code)
}

func TestGenerate_collidingNames(t *testing.T) {
	t.Parallel()
	s, err := schema.New([]schema.Field{{Name: "due_date"}, {Name: "due date"}})
	require.NoError(t, err)
	src, err := Generate("out", "Doc", s)
	require.NoError(t, err)
	assert.Contains(t, string(src), "DueDate2")
}

func TestGenerate_invalid(t *testing.T) {
	t.Parallel()
	s, err := schema.New([]schema.Field{{Name: "a"}})
	require.NoError(t, err)

	_, err = Generate("1pkg", "Doc", s)
	require.ErrorIs(t, err, ErrInvalidName)
	_, err = Generate("out", "doc", s)
	require.ErrorIs(t, err, ErrInvalidName)
	_, err = Generate("out", "Doc", schema.Schema{})
	require.ErrorIs(t, err, schema.ErrInvalidSchema)
}
