package services

import "strings"

// sectionMarkers are the headings the splitter recognizes, lowercase.
var sectionMarkers = []string{
	"experience", "education", "skills", "projects",
	"summary", "objective", "certifications", "publications",
	"languages", "awards", "volunteer",
}

// ParseResumeSections splits raw resume text into named sections on a
// best-effort basis. Lines before the first recognized heading land in
// "header". A line counts as a heading when it starts or ends with a known
// marker (case-insensitive).
func ParseResumeSections(text string) map[string][]string {
	sections := map[string][]string{"header": {}}
	current := "header"

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.ToLower(strings.TrimSpace(line))
		matched := false
		for _, marker := range sectionMarkers {
			if strings.HasPrefix(stripped, marker) || strings.HasSuffix(stripped, marker) {
				current = marker
				sections[current] = []string{}
				matched = true
				break
			}
		}
		if !matched && strings.TrimSpace(line) != "" {
			sections[current] = append(sections[current], strings.TrimSpace(line))
		}
	}
	return sections
}
