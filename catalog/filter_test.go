package catalog

import (
	"fmt"
	"reflect"
	"testing"
)

func filterSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	// 15 parents, 12 distinct categories; p13/p14 push past the match cap.
	parents := []ParentRecord{
		{ParentID: "p1", Category: "Diabetic Care", Tags: "sugar-free, snack", MedicalFeatures: "Low Glycemic"},
		{ParentID: "p2", Category: "First Aid", Tags: "bandage"},
		{ParentID: "p3", Category: "Heart Health", MedicalFeatures: "Omega 3", NutritionalInfo: "Low Sodium"},
		{ParentID: "p4", Category: "Baby Care"},
		{ParentID: "p5", Category: "Diabetic Snacks", Tags: "sugar-free", NutritionalInfo: "High Fiber"},
		{ParentID: "p6", Category: "Orthopedic"},
		{ParentID: "p7", Category: "Heart Care", Tags: "cholesterol"},
		{ParentID: "p8", Category: "Skin Care"},
		{ParentID: "p9", Category: "Ayurveda"},
		{ParentID: "p10", Category: "Vitamins"},
		{ParentID: "p11", Category: "DIABETIC nutrition"},
		{ParentID: "p12", Category: "Protein"},
		{ParentID: "p13", Category: "diabetic care plus"},
		{ParentID: "p14", Category: "hearty wellness"},
		{ParentID: "p15", Category: "Elder Care"},
	}
	return loadedSnapshot(t, &stubStore{parents: parents})
}

func TestFilterByCategory(t *testing.T) {
	snap := filterSnapshot(t)

	got := snap.Filter(Criteria{Categories: []string{"diabetic", "heart"}}, 10)
	want := []string{"p1", "p3", "p5", "p7", "p11", "p13", "p14"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilterEmptyCategoryIsVacuous(t *testing.T) {
	snap := filterSnapshot(t)

	got := snap.Filter(Criteria{Tags: []string{"sugar-free"}}, 10)
	want := []string{"p1", "p5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilterOtherFieldsAreOneOrBucket(t *testing.T) {
	snap := filterSnapshot(t)

	// p3 has the medical feature but not the tag; the non-category fields
	// form a single OR bucket, so it still matches.
	got := snap.Filter(Criteria{
		Categories:      []string{"heart"},
		MedicalFeatures: []string{"omega"},
		Tags:            []string{"cholesterol"},
	}, 10)
	want := []string{"p3", "p7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilterCategoryAndOtherMustBothPass(t *testing.T) {
	snap := filterSnapshot(t)

	// p14 matches "heart" by category but has none of the requested tags.
	got := snap.Filter(Criteria{
		Categories: []string{"heart"},
		Tags:       []string{"cholesterol"},
	}, 10)
	want := []string{"p7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilterCapsAtLimitInSnapshotOrder(t *testing.T) {
	parents := make([]ParentRecord, 15)
	for i := range parents {
		parents[i] = ParentRecord{
			ParentID: fmt.Sprintf("p%d", i+1),
			Category: "Diabetic Care",
		}
	}
	snap := loadedSnapshot(t, &stubStore{parents: parents})

	got := snap.Filter(Criteria{Categories: []string{"diabetic"}}, 10)
	if len(got) != 10 {
		t.Fatalf("Filter() returned %d ids, want 10", len(got))
	}
	for i, id := range got {
		if want := fmt.Sprintf("p%d", i+1); id != want {
			t.Errorf("Filter()[%d] = %s, want %s (snapshot order)", i, id, want)
		}
	}
}

func TestFilterNoMatches(t *testing.T) {
	snap := filterSnapshot(t)

	if got := snap.Filter(Criteria{Categories: []string{"veterinary"}}, 10); len(got) != 0 {
		t.Errorf("Filter() = %v, want empty", got)
	}
}
