package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON document a prompt asks the model for.
type ExtractionSchema struct {
	Name   string
	Fields []SchemaField
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string
	Required    bool
}

// DescribeFields renders schema as a commented JSON skeleton for a prompt.
func DescribeFields(schema ExtractionSchema) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		fmt.Fprintf(&sb, "  %q: %s%s", field.Name, typeHint, requiredHint)
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// ResumeProfileSchema is the structure the oracle parser requests.
func ResumeProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeProfile",
		Fields: []SchemaField{
			{Name: "name", Type: `"string" | null`, Description: "Candidate full name"},
			{Name: "email", Type: `"string" | null`, Description: "Primary email address"},
			{Name: "phone", Type: `"string" | null`, Description: "Primary phone number as written"},
			{Name: "skills", Type: `["string"]`, Description: "Technical skills, tools and languages, one per entry", Required: true},
			{Name: "education", Type: `["string"]`, Description: "Degrees held, e.g. \"bachelors\", \"masters\", \"phd\", \"diploma\"", Required: true},
			{Name: "experience_years", Type: "integer", Description: "Total years of professional experience", Required: true},
			{Name: "summary", Type: `"string"`, Description: "One or two sentence professional summary"},
			{Name: "certifications", Type: `["string"]`, Description: "Professional certifications"},
			{
				Name:        "experience_detail",
				Type:        `[{"title": "string", "company": "string", "start_year": integer, "end_year": integer, "description": "string"}]`,
				Description: "Work history, most recent first; omit end_year for current roles",
			},
		},
	}
}
