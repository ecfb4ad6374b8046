package catalog

import "context"

// ParentRecord is a product-family document carrying the classification
// metadata the filter matches against. Field names mirror the store schema.
type ParentRecord struct {
	ParentID        string `bson:"Parent_id"`
	Category        string `bson:"Category"`
	MedicalFeatures string `bson:"Medical Features"`
	Tags            string `bson:"Tags"`
	NutritionalInfo string `bson:"Nutritional Info"`
}

// ChildRecord is a concrete sellable variant of a parent. Child documents are
// free-form (name, price, size, link fields, sometimes image URLs), so they
// are kept as maps rather than a fixed struct.
type ChildRecord map[string]interface{}

// ParentID returns the child's parent reference, or "" if absent.
func (c ChildRecord) ParentID() string {
	if v, ok := c["Parent_id"].(string); ok {
		return v
	}
	return ""
}

// Criteria holds the search constraints extracted from the criteria-call
// output. All fields are optional; an empty list means "no constraint".
type Criteria struct {
	Categories      []string
	MedicalFeatures []string
	Tags            []string
	NutritionalInfo []string
}

// Empty reports whether no constraints at all were extracted.
func (c Criteria) Empty() bool {
	return len(c.Categories) == 0 && len(c.MedicalFeatures) == 0 &&
		len(c.Tags) == 0 && len(c.NutritionalInfo) == 0
}

// Store is the document-store contract the snapshot loads from.
type Store interface {
	FetchParents(ctx context.Context) ([]ParentRecord, error)
	FetchChildren(ctx context.Context) ([]ChildRecord, error)
}
