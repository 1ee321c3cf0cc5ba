package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteSingleMatch(t *testing.T) {
	c := NewCompleter(DefaultVocabulary())
	got, ok := c.Complete("pro")
	assert.True(t, ok)
	assert.Equal(t, "projects", got)

	got, ok = c.Complete("EXP")
	assert.True(t, ok)
	assert.Equal(t, "experience", got)
}

func TestCompleteAmbiguousOrMissing(t *testing.T) {
	c := NewCompleter(DefaultVocabulary())
	for _, partial := range []string{"p", "d", "", "zzz", "a b"} {
		_, ok := c.Complete(partial)
		assert.False(t, ok, "partial %q", partial)
	}
	assert.Equal(t, []string{"projects", "pwd"}, c.Matches("p"))
	assert.Len(t, c.Matches(""), len(DefaultVocabulary()))
}

func TestCompleteUsesCuratedVocabulary(t *testing.T) {
	c := NewCompleter(DefaultVocabulary())
	// hobbies routes but is not offered for completion
	_, ok := c.Complete("hob")
	assert.False(t, ok)
}
