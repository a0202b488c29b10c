package ranking

import "strings"

// ProfileSource is the part of a candidate profile that feeds the ranker.
type ProfileSource struct {
	Skills      []string
	Experiences []string
	Projects    []string
}

// BuildProfileText joins skill names, experience descriptions and project
// descriptions with single spaces. Blank entries are skipped.
func BuildProfileText(p ProfileSource) string {
	parts := make([]string, 0, len(p.Skills)+len(p.Experiences)+len(p.Projects))
	for _, group := range [][]string{p.Skills, p.Experiences, p.Projects} {
		for _, s := range group {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func BuildJobText(title, description string) string {
	return strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(description))
}
