// Package schemagen generates Go source for the output of a parse_text action:
// a struct whose fields mirror the schema, plus the safety-ratings map.
package schemagen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/skosovsky/geminikit/schema"
)

// ErrInvalidName is returned for package or type names that are not Go identifiers.
var ErrInvalidName = errors.New("schemagen: invalid identifier")

// Generate renders a file in package pkg declaring typeName for s. Every
// leaf is a pointer (or slice) because the model answers null for missing keys.
func Generate(pkg, typeName string, s schema.Schema) ([]byte, error) {
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("%w: package %q", ErrInvalidName, pkg)
	}
	if !token.IsIdentifier(typeName) || !token.IsExported(typeName) {
		return nil, fmt.Errorf("%w: type %q must be an exported identifier", ErrInvalidName, typeName)
	}
	if s.IsZero() {
		return nil, fmt.Errorf("%w: empty schema", schema.ErrInvalidSchema)
	}

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by geminikit gen. DO NOT EDIT.")

	fields := structFields(s.Fields())
	fields = append(fields, jen.Id("SafetyRatings").Map(jen.String()).Op("*").String().
		Tag(map[string]string{"json": schema.ReservedName}))

	f.Commentf("%s is the output of a parse_text action.", typeName)
	f.Type().Id(typeName).Struct(fields...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("schemagen: render: %w", err)
	}
	return buf.Bytes(), nil
}

func structFields(fields []schema.Field) []jen.Code {
	out := make([]jen.Code, 0, len(fields))
	used := make(map[string]int, len(fields))
	for _, fd := range fields {
		name := strings.TrimSpace(fd.Name)
		id := GoName(name)
		if n := used[id]; n > 0 {
			used[id] = n + 1
			id = fmt.Sprintf("%s%d", id, n+1)
		} else {
			used[id] = 1
		}
		stmt := jen.Id(id).Add(fieldType(fd)).Tag(map[string]string{"json": name})
		if doc := comment(fd); doc != "" {
			stmt = stmt.Comment(doc)
		}
		out = append(out, stmt)
	}
	return out
}

func comment(fd schema.Field) string {
	parts := make([]string, 0, 2)
	if l := strings.TrimSpace(fd.Label); l != "" {
		parts = append(parts, l)
	}
	if d := strings.TrimSpace(fd.Description); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, ": ")
}

func fieldType(fd schema.Field) *jen.Statement {
	switch fd.Kind() {
	case schema.TypeObject:
		return jen.Op("*").Struct(structFields(fd.Properties)...)
	case schema.TypeArray:
		elem := fd.Of
		if elem == "" {
			elem = schema.TypeString
		}
		if elem == schema.TypeObject {
			return jen.Index().Struct(structFields(fd.Properties)...)
		}
		return jen.Index().Add(scalar(elem))
	default:
		return jen.Op("*").Add(scalar(fd.Kind()))
	}
}

func scalar(t schema.FieldType) *jen.Statement {
	switch t {
	case schema.TypeInteger:
		return jen.Int64()
	case schema.TypeNumber:
		return jen.Float64()
	case schema.TypeBoolean:
		return jen.Bool()
	default:
		// Dates and timestamps arrive in whatever format the model chose.
		return jen.String()
	}
}

// GoName converts a schema field name to an exported Go identifier:
// "invoice_number" becomes "InvoiceNumber", "1due" becomes "F1due".
func GoName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	id := b.String()
	if id == "" {
		return "Field"
	}
	if r := []rune(id)[0]; !unicode.IsLetter(r) {
		id = "F" + id
	}
	return id
}
