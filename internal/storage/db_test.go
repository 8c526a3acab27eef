package storage

import (
	"path/filepath"
	"testing"

	"vucat/internal"
	"vucat/internal/util"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpsertCourseRoundTrip(t *testing.T) {
	db := openTestDB(t)

	record := internal.CourseRecord{
		CourseID:      "11111",
		Subject:       "CS",
		CatalogNumber: "1101",
		DisplayName:   "CS 1101",
		LongTitle:     "Programming and Problem Solving",
		SchoolCode:    util.StringPtr("ENGIN"),
		UnitsEarned:   "3",
		TermOffered:   "FA, SP",
	}
	if err := db.UpsertCourse(record); err != nil {
		t.Fatal(err)
	}

	// Second upsert replaces, not duplicates.
	record.LongTitle = "Programming and Problem Solving I"
	if err := db.UpsertCourse(record); err != nil {
		t.Fatal(err)
	}

	courses, err := db.ListCourses()
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 1 {
		t.Fatalf("len=%d", len(courses))
	}
	got := courses[0]
	if got.LongTitle != "Programming and Problem Solving I" {
		t.Fatalf("title %q", got.LongTitle)
	}
	if got.SchoolCode == nil || *got.SchoolCode != "ENGIN" {
		t.Fatalf("school %v", got.SchoolCode)
	}
	if got.Prerequisites != nil {
		t.Fatalf("absent fields must stay nil: %v", *got.Prerequisites)
	}
}

func TestInsertRunAndStats(t *testing.T) {
	db := openTestDB(t)

	err := db.InsertRun("sections",
		map[string]float64{"totalMs": 1234},
		map[string]int{"scanned": 100, "found": 7})
	if err != nil {
		t.Fatal(err)
	}

	stats, err := db.Stats()
	if err != nil {
		t.Fatal(err)
	}
	byTable := map[string]int{}
	for _, s := range stats {
		byTable[s.Table] = s.Rows
	}
	if byTable["runs"] != 1 || byTable["sections"] != 0 {
		t.Fatalf("stats: %v", byTable)
	}
}

func TestMetadata(t *testing.T) {
	db := openTestDB(t)

	if v, err := db.GetMetadata("lastTerm"); err != nil || v != nil {
		t.Fatalf("absent key: %v %v", v, err)
	}
	if err := db.SetMetadata("lastTerm", "1055"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMetadata("lastTerm", "1060"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMetadata("lastTerm")
	if err != nil {
		t.Fatal(err)
	}
	if v == nil || *v != "1060" {
		t.Fatalf("got %v", v)
	}
}
