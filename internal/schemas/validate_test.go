package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func TestValidateBytes_Valid(t *testing.T) {
	err := ValidateBytes([]byte(personSchema), []byte(`{"name": "test"}`))
	assert.NoError(t, err)
}

func TestValidateBytes_MissingRequiredField(t *testing.T) {
	err := ValidateBytes([]byte(personSchema), []byte(`{"age": 30}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateBytes_WrongType(t *testing.T) {
	err := ValidateBytes([]byte(personSchema), []byte(`{"name": 42}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateBytes_MalformedSchema(t *testing.T) {
	err := ValidateBytes([]byte(`{ invalid schema }`), []byte(`{"name": "test"}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidateDocument_Valid(t *testing.T) {
	doc := map[string]any{"name": "test"}
	err := ValidateDocument([]byte(personSchema), doc)
	assert.NoError(t, err)
}

func TestValidateDocument_Invalid(t *testing.T) {
	doc := map[string]any{"name": 42}
	err := ValidateDocument([]byte(personSchema), doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateBytes_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	err := ValidateBytes([]byte(schemaContent), []byte(`{"person": {}}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)

	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "title", Message: "is required"},
			{Field: "duration_minutes", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "title")
	assert.Contains(t, errorMsg, "duration_minutes")
}
