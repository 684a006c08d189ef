package domain

// SkillSet is an ordered list of skill keywords. Methods never mutate the
// receiver so a snapshot can be handed to a background push safely.
type SkillSet []string

func (s SkillSet) Contains(name string) bool {
	for _, v := range s {
		if v == name {
			return true
		}
	}
	return false
}

// With appends name unless it is empty or already present (exact match).
func (s SkillSet) With(name string) (SkillSet, bool) {
	if name == "" || s.Contains(name) {
		return s, false
	}
	out := make(SkillSet, 0, len(s)+1)
	out = append(out, s...)
	return append(out, name), true
}

// Without drops every exact match of name and reports how many were dropped.
func (s SkillSet) Without(name string) (SkillSet, int) {
	out := make(SkillSet, 0, len(s))
	removed := 0
	for _, v := range s {
		if v == name {
			removed++
			continue
		}
		out = append(out, v)
	}
	return out, removed
}

func (s SkillSet) Clone() SkillSet {
	if s == nil {
		return SkillSet{}
	}
	out := make(SkillSet, len(s))
	copy(out, s)
	return out
}
