package catalog

import "strings"

// Filter scans the snapshot in load order and returns the parent ids matching
// the criteria, stopping as soon as limit matches are collected. The result is
// a prefix scan in snapshot order, not a relevance ranking.
//
// Matching semantics: the category criterion must pass (vacuously true when no
// category terms were requested), AND — when any medical-feature, tag or
// nutritional-info terms were requested — at least one of those three fields
// must substring-match one of its own requested terms. The non-category fields
// form a single OR bucket, mirroring the store-query construction
// {"$and": [category, {"$or": other_conditions}]}.
func (s *Snapshot) Filter(c Criteria, limit int) []string {
	if limit <= 0 {
		return nil
	}
	otherRequested := len(c.MedicalFeatures) > 0 || len(c.Tags) > 0 || len(c.NutritionalInfo) > 0

	var matched []string
	for _, id := range s.parentOrder {
		p := s.parents[id]
		if !containsAny(p.Category, c.Categories) {
			continue
		}
		if otherRequested &&
			!matchesAnyField(p, c.MedicalFeatures, c.Tags, c.NutritionalInfo) {
			continue
		}
		matched = append(matched, id)
		if len(matched) >= limit {
			break
		}
	}
	return matched
}

func matchesAnyField(p ParentRecord, medical, tags, nutrition []string) bool {
	if len(medical) > 0 && containsAnyStrict(p.MedicalFeatures, medical) {
		return true
	}
	if len(tags) > 0 && containsAnyStrict(p.Tags, tags) {
		return true
	}
	if len(nutrition) > 0 && containsAnyStrict(p.NutritionalInfo, nutrition) {
		return true
	}
	return false
}

// containsAny is vacuously true when no terms were requested.
func containsAny(field string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	return containsAnyStrict(field, terms)
}

// containsAnyStrict reports whether field case-insensitively contains at
// least one of the terms.
func containsAnyStrict(field string, terms []string) bool {
	lower := strings.ToLower(field)
	for _, t := range terms {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
