package catalog

import "strings"

var imageFieldKeys = map[string]bool{
	"image":     true,
	"images":    true,
	"img":       true,
	"thumbnail": true,
	"photo":     true,
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Sanitize gathers the child records for the given parent ids in order,
// concatenating each parent's full child list and truncating the combined
// sequence at limit. Truncation can cut a parent's list mid-way; there is no
// fairness guarantee across parents.
//
// Each emitted record is a cleaned copy (sources are never mutated) with the
// Link_value field removed, any field literally named "Images" removed, and
// any other image-looking string field stripped. When a record carries both
// Link and Link_value, the pair is recorded in the returned link map so the
// resolver can substitute real URLs after the recommendation call.
func (s *Snapshot) Sanitize(parentIDs []string, limit int) ([]ChildRecord, map[string]string) {
	links := make(map[string]string)
	var cleaned []ChildRecord

	for _, pid := range parentIDs {
		for _, child := range s.children[pid] {
			if len(cleaned) >= limit {
				return cleaned, links
			}
			if link, ok := child["Link"].(string); ok {
				if url, ok := child["Link_value"].(string); ok {
					links[link] = url
				}
			}
			cleaned = append(cleaned, cleanRecord(child))
		}
	}
	return cleaned, links
}

func cleanRecord(child ChildRecord) ChildRecord {
	out := make(ChildRecord, len(child))
	for key, value := range child {
		if key == "Link_value" || key == "Images" {
			continue
		}
		if str, ok := value.(string); ok && isImageField(key, str) {
			continue
		}
		out[key] = value
	}
	return out
}

// isImageField drops a string field only when both the key names an image and
// the value looks like an image URL.
func isImageField(key, value string) bool {
	if !imageFieldKeys[strings.ToLower(key)] {
		return false
	}
	if !strings.Contains(value, "http") {
		return false
	}
	lower := strings.ToLower(value)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}
