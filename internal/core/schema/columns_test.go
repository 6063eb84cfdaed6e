package schema_test

import (
	"testing"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cols []domain.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

func TestNormalize_InjectsDefaults(t *testing.T) {
	cols := schema.Normalize([]domain.Column{
		{Name: "Name", Type: domain.ColumnText},
		{Name: "Email", Type: domain.ColumnEmail},
	})

	assert.Equal(t, []string{"Name", "Email", "Informed", "Source", "Feedback"}, names(cols))
	assert.True(t, cols[2].IsDefault)
	assert.Equal(t, domain.ColumnCheckbox, cols[2].Type)
}

func TestNormalize_DedupesFirstWins(t *testing.T) {
	cols := schema.Normalize([]domain.Column{
		{Name: "Source", Type: domain.ColumnSelect, Options: []string{"LinkedIn", "Referral"}},
		{Name: "Name", Type: domain.ColumnText},
		{Name: "Source", Type: domain.ColumnText},
		{Name: "", Type: domain.ColumnText},
		{Name: "Name", Type: domain.ColumnNumber},
	})

	assert.Equal(t, []string{"Source", "Name", "Informed", "Feedback"}, names(cols))
	assert.Equal(t, domain.ColumnSelect, cols[0].Type, "existing Source column is kept, not replaced by default")
	assert.Equal(t, domain.ColumnText, cols[1].Type)
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, []string{"Informed", "Source", "Feedback"}, names(schema.Normalize(nil)))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := [][]domain.Column{
		nil,
		{{Name: "Feedback"}, {Name: "Feedback"}, {Name: "Stage", Type: domain.ColumnSelect, Options: []string{"a"}}},
		{{Name: "informed"}, {Name: "Informed", Type: domain.ColumnText}},
	}

	for _, in := range inputs {
		once := schema.Normalize(in)
		twice := schema.Normalize(once)
		require.Equal(t, once, twice)
	}
}

func TestNormalize_DoesNotAliasInput(t *testing.T) {
	in := []domain.Column{{Name: "Stage", Options: []string{"a", "b"}}}
	out := schema.Normalize(in)
	out[0].Options[0] = "changed"
	assert.Equal(t, "a", in[0].Options[0])
}
