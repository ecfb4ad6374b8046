package catalog

import "strings"

// Field labels the criteria model is prompted to emit. Label matching is
// exact (case-sensitive): the prompt pins these spellings down.
const (
	labelCategory        = "Category:"
	labelMedicalFeatures = "Medical Features:"
	labelTags            = "Tags:"
	labelNutritionalInfo = "Nutritional Info:"
)

// ExtractCriteria parses the criteria-call output for the four known field
// labels. An absent or malformed label yields an empty list for that field,
// never an error: absence means "no constraint".
func ExtractCriteria(text string) Criteria {
	return Criteria{
		Categories:      extractField(text, labelCategory),
		MedicalFeatures: extractField(text, labelMedicalFeatures),
		Tags:            extractField(text, labelTags),
		NutritionalInfo: extractField(text, labelNutritionalInfo),
	}
}

// extractField takes the text after the label up to the first newline, splits
// it on commas and trims each term.
func extractField(text, label string) []string {
	idx := strings.Index(text, label)
	if idx == -1 {
		return nil
	}
	rest := text[idx+len(label):]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		rest = rest[:nl]
	}
	return parseValues(rest)
}

func parseValues(text string) []string {
	parts := strings.Split(text, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}
