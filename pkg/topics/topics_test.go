package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.Contains(t, names, "layout")
	assert.Contains(t, names, "backups")
	assert.Contains(t, names, "recovery")
	assert.IsIncreasing(t, names)
}

func TestRender_KnownTopic(t *testing.T) {
	out, err := Render("backups")
	require.NoError(t, err)
	assert.Contains(t, out, "snapshot")
}

func TestRender_UnknownTopic(t *testing.T) {
	_, err := Render("does-not-exist")
	assert.Error(t, err)
}

func TestGlamourRenderer_NonMarkdownPassthrough(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "raw", r.Render("raw", ".txt"))
}
