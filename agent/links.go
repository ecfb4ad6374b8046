package agent

import (
	"regexp"
	"strings"
)

var (
	wholeLinkPattern  = regexp.MustCompile(`^Link-[0-9]+$`)
	linkPlaceholderRe = regexp.MustCompile(`\[(Link-[0-9]+)\]`)
)

// ResolveLinks rewrites symbolic link placeholders in the recommendation-call
// output into real URLs. When the whole trimmed response is a bare Link-N
// token that exists in the map, the entire response becomes the URL.
// Otherwise every mapped [Link-N] occurrence is substituted in place;
// unmapped placeholders stay verbatim, which is not an error.
func ResolveLinks(text string, links map[string]string) string {
	trimmed := strings.TrimSpace(text)
	if wholeLinkPattern.MatchString(trimmed) {
		if url, ok := links[trimmed]; ok {
			return url
		}
	}
	return linkPlaceholderRe.ReplaceAllStringFunc(text, func(match string) string {
		id := match[1 : len(match)-1]
		if url, ok := links[id]; ok {
			return url
		}
		return match
	})
}
