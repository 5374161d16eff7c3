package commit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_Accessors(t *testing.T) {
	b := NewBuilder(Lowercase, 0)
	require.NoError(t, b.SetType(fix))
	require.NoError(t, b.SetScope("git"))
	require.NoError(t, b.SetSubject("handle unborn head"))
	b.SetDescription("Unstaging on a fresh repository used to fail.")

	c, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, fix, c.Type())
	scope, ok := c.Scope()
	assert.True(t, ok)
	assert.Equal(t, "git", scope)
	assert.Equal(t, "handle unborn head", c.Subject())
	desc, ok := c.Description()
	assert.True(t, ok)
	assert.Equal(t, "Unstaging on a fresh repository used to fail.", desc)
	assert.False(t, c.IsBreaking())
}

func TestCommit_UnaffectedByLaterBuilderChanges(t *testing.T) {
	b := NewBuilder(Lowercase, 0)
	require.NoError(t, b.SetType(feat))
	require.NoError(t, b.SetScope("ui"))
	require.NoError(t, b.SetSubject("first"))

	c, err := b.Build()
	require.NoError(t, err)

	require.NoError(t, b.SetScope("core"))
	require.NoError(t, b.SetSubject("second"))
	assert.Equal(t, "feat(ui): first", c.String())
}

func TestCommit_MarshalJSON(t *testing.T) {
	b := NewBuilder(Lowercase, 0)
	require.NoError(t, b.SetType(feat))
	require.NoError(t, b.MarkBreaking())
	require.NoError(t, b.SetSubject("drop v1 api"))

	c, err := b.Build()
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "feat",
		"subject": "drop v1 api",
		"breaking": true,
		"header": "feat!: drop v1 api",
		"message": "feat!: drop v1 api"
	}`, string(data))
}
