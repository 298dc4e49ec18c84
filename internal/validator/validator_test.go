package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchParams struct {
	Query string `query:"q" validate:"required,min=3"`
}

type jsonTagged struct {
	Kind string `json:"type" validate:"required,oneof=movie show anime"`
}

func TestValidate_UsesQueryTagNames(t *testing.T) {
	v := New()

	err := v.Validate(searchParams{})
	require.Error(t, err)

	errs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "q", errs[0].Field, "query-bound fields report the parameter name")
	assert.Equal(t, "q is required", errs[0].Message)
}

func TestValidate_FallsBackToJSONTagNames(t *testing.T) {
	v := New()

	err := v.Validate(jsonTagged{Kind: "podcast"})
	require.Error(t, err)

	errs := err.(ValidationErrors)
	require.Len(t, errs, 1)
	assert.Equal(t, "type", errs[0].Field)
	assert.Equal(t, "type must be one of: movie show anime", errs[0].Message)
}

func TestValidate_MinMessage(t *testing.T) {
	v := New()

	err := v.Validate(searchParams{Query: "ab"})
	require.Error(t, err)

	errs := err.(ValidationErrors)
	require.Len(t, errs, 1)
	assert.Equal(t, "q must be at least 3", errs[0].Message)
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(searchParams{Query: "dune"}))
	assert.NoError(t, v.Validate(jsonTagged{Kind: "anime"}))
}
