package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeFields(t *testing.T) {
	schema := ExtractionSchema{
		Name: "Tiny",
		Fields: []SchemaField{
			{Name: "name", Description: "Full name", Required: true},
			{Name: "skills", Type: `["string"]`},
		},
	}

	expected := "{\n" +
		`  "name": "string" (required) // Full name,` + "\n" +
		`  "skills": ["string"]` + "\n" +
		"}"
	assert.Equal(t, expected, DescribeFields(schema))
}

func TestResumeProfileSchema(t *testing.T) {
	schema := ResumeProfileSchema()
	rendered := DescribeFields(schema)

	for _, name := range []string{"name", "email", "phone", "skills", "education", "experience_years", "summary", "certifications", "experience_detail"} {
		assert.Contains(t, rendered, `"`+name+`"`)
	}
	assert.Equal(t, 1, strings.Count(rendered, `"experience_years": integer (required)`))

	required := 0
	for _, f := range schema.Fields {
		if f.Required {
			required++
		}
	}
	assert.Equal(t, 3, required)
}
