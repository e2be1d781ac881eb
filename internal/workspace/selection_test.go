package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/annotator/internal/domain"
	"github.com/pkordes/annotator/internal/workspace"
)

func TestNewDocumentSelection(t *testing.T) {
	sel, err := workspace.NewDocumentSelection("héllo wörld", 6, 11)

	require.NoError(t, err)
	assert.Equal(t, domain.Selection{Start: 6, End: 11, Text: "wörld"}, sel.Selection())
}

func TestNewDocumentSelection_Collapsed(t *testing.T) {
	sel, err := workspace.NewDocumentSelection("hello", 3, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.Selection{Start: 3, End: 3}, sel.Selection())
	assert.Equal(t, "", sel.Selection().Text)
}

func TestNewDocumentSelection_InvalidBounds(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 2},
		{"end before start", 3, 1},
		{"end past document", 0, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := workspace.NewDocumentSelection("hello", tc.start, tc.end)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
