package search

// Synonyms maps a normalised query phrase to equivalent phrases seen in job
// titles and descriptions.
var Synonyms = map[string][]string{
	"frontend":         {"front end", "frontend developer", "ui developer"},
	"backend":          {"back end", "server side", "backend developer"},
	"fullstack":        {"full stack", "full-stack developer"},
	"devops":           {"site reliability", "platform engineer", "sre"},
	"ml":               {"machine learning"},
	"machine learning": {"ml", "ai engineer"},
	"data scientist":   {"data science", "ml engineer"},
	"qa":               {"quality assurance", "test engineer"},
	"golang":           {"go developer", "go"},
	"js":               {"javascript"},
	"hr":               {"human resources", "recruiter"},
	"designer":         {"graphic designer", "ui designer", "visual designer"},
}

func GetSynonyms(query string) []string {
	v, ok := Synonyms[query]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(v))
	return append(out, v...)
}
