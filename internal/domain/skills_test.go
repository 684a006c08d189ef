package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillSet_With_AddsNewName(t *testing.T) {
	t.Parallel()

	base := SkillSet{"go", "python"}
	for _, name := range []string{"react", "Go", "rust lang", "c++"} {
		got, added := base.With(name)

		assert.True(t, added, name)
		assert.Len(t, got, len(base)+1)
		assert.True(t, got.Contains(name))
		assert.Equal(t, name, got[len(got)-1], "new skills are appended")
	}
	assert.Equal(t, SkillSet{"go", "python"}, base, "receiver is not mutated")
}

func TestSkillSet_With_IgnoresDuplicateAndEmpty(t *testing.T) {
	t.Parallel()

	base := SkillSet{"go", "python"}

	got, added := base.With("go")
	assert.False(t, added)
	assert.Equal(t, base, got)

	got, added = base.With("")
	assert.False(t, added)
	assert.Equal(t, base, got)
}

func TestSkillSet_Without(t *testing.T) {
	t.Parallel()

	base := SkillSet{"go", "react", "python"}

	got, removed := base.Without("react")
	assert.Equal(t, 1, removed)
	assert.Equal(t, SkillSet{"go", "python"}, got)
	assert.False(t, got.Contains("react"))

	got, removed = base.Without("React")
	assert.Equal(t, 0, removed, "match is case-sensitive")
	assert.Equal(t, base, got)
}

func TestSkillSet_Without_RemovesEveryMatch(t *testing.T) {
	t.Parallel()

	// a list loaded from the server is taken as-is and may repeat entries
	got, removed := SkillSet{"go", "go", "sql"}.Without("go")
	assert.Equal(t, 2, removed)
	assert.Equal(t, SkillSet{"sql"}, got)
}

func TestSkillSet_AddThenRemoveRestores(t *testing.T) {
	t.Parallel()

	before := SkillSet{"go", "python"}
	added, _ := before.With("react")
	after, _ := added.Without("react")

	assert.Equal(t, before, after)
}

func TestSkillSet_CloneNil(t *testing.T) {
	t.Parallel()

	var s SkillSet
	assert.Equal(t, SkillSet{}, s.Clone())
}
