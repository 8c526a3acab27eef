package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

const requirementsJSON = `[
  {
    "requirementGroups": [
      {
        "name": "Computer Science Major",
        "plan": "CS-BS",
        "requirementGroupNumber": 10,
        "entrySequence": 1,
        "requirements": [
          {
            "name": "Core Courses",
            "requirementNumber": 100,
            "entrySequence": 1,
            "requirementLines": [
              {
                "name": "Intro Sequence",
                "description": "Complete the introductory sequence",
                "status": "Satisfied",
                "unitsRequired": 6,
                "unitsUsed": 6,
                "unitsNeeded": 0,
                "coursesUsedToSatisfy": [
                  {
                    "termTaken": "Fall 2024",
                    "courseId": 11111,
                    "unitsEarned": 3,
                    "unitsTaken": 3,
                    "longTitle": "Programming and Problem Solving",
                    "grade": "A",
                    "sequence": 1,
                    "subject": "CS",
                    "catalogNumber": "1101",
                    "displayName": "CS 1101"
                  },
                  {
                    "termTaken": "Spring 2025",
                    "courseId": 11112,
                    "unitsEarned": 3,
                    "unitsTaken": 3,
                    "longTitle": "Intermediate Programming",
                    "grade": "B+",
                    "sequence": 2,
                    "subject": "CS",
                    "catalogNumber": "2201",
                    "displayName": "CS 2201"
                  }
                ]
              },
              {
                "name": "Capstone",
                "description": "Complete the capstone project",
                "status": "Not Satisfied",
                "unitsRequired": 3,
                "unitsUsed": 0,
                "unitsNeeded": 3
              }
            ]
          }
        ]
      },
      {
        "name": "",
        "plan": "",
        "requirementGroupNumber": 20,
        "entrySequence": 2,
        "requirements": [
          {
            "name": "Electives",
            "requirementNumber": 200,
            "entrySequence": 1,
            "requirementLines": [
              {
                "name": "Open Electives",
                "description": "Any course",
                "status": "In Progress",
                "unitsRequired": 12,
                "unitsUsed": 9,
                "unitsNeeded": 3,
                "coursesUsedToSatisfy": []
              }
            ]
          }
        ]
      }
    ]
  }
]`

func writeRequirementsFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reqs.json")
	if err := os.WriteFile(path, []byte(requirementsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRequirements(t *testing.T) {
	audits, err := LoadRequirements(writeRequirementsFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(audits) != 1 || len(audits[0].RequirementGroups) != 2 {
		t.Fatalf("unexpected shape: %+v", audits)
	}
}

func TestLoadRequirementsMissingFile(t *testing.T) {
	if _, err := LoadRequirements(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file must be an error")
	}
}

func TestLoadRequirementsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"requirementGroups": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRequirements(path); err == nil {
		t.Fatal("malformed json must be an error")
	}
}

func TestDetailRowsExpansion(t *testing.T) {
	audits, err := LoadRequirements(writeRequirementsFixture(t))
	if err != nil {
		t.Fatal(err)
	}

	rows := DetailRows(audits)
	// Line with 2 courses -> 2 rows, two empty lines -> 1 row each.
	if len(rows) != 4 {
		t.Fatalf("len=%d", len(rows))
	}

	if rows[0].GroupName != "Computer Science Major" || !rows[0].IsMainRequirement {
		t.Fatalf("row0: %+v", rows[0])
	}
	// Same line metadata on both course rows, distinct course fields.
	if rows[0].RequirementName != rows[1].RequirementName || rows[0].Description != rows[1].Description {
		t.Fatal("course rows must share line metadata")
	}
	if rows[0].Course == nil || rows[1].Course == nil {
		t.Fatal("course rows must carry courses")
	}
	if rows[0].Course.DisplayName == rows[1].Course.DisplayName {
		t.Fatal("course rows must carry distinct courses")
	}

	// Zero-course lines still produce exactly one row with nil course fields.
	if rows[2].Course != nil || rows[3].Course != nil {
		t.Fatalf("empty lines must have nil courses: %+v %+v", rows[2], rows[3])
	}
	if rows[2].RequirementName != "Core Courses" || rows[2].Status != "Not Satisfied" {
		t.Fatalf("row2: %+v", rows[2])
	}

	// Empty plan and empty name fall back on the second group.
	if rows[3].IsMainRequirement {
		t.Fatal("empty plan must not be a main requirement")
	}
	if rows[3].GroupName != "Unnamed Requirement Group" {
		t.Fatalf("row3 group: %q", rows[3].GroupName)
	}
}

func TestStructureRows(t *testing.T) {
	audits, err := LoadRequirements(writeRequirementsFixture(t))
	if err != nil {
		t.Fatal(err)
	}

	rows := StructureRows(audits)
	// One row per requirement line, no course expansion.
	if len(rows) != 3 {
		t.Fatalf("len=%d", len(rows))
	}

	first := rows[0]
	if first.LineName != "Intro Sequence" {
		t.Fatalf("line name %q", first.LineName)
	}
	if first.RequirementGroupNumber.String() != "10" || first.RequirementNumber.String() != "100" {
		t.Fatalf("positional ids: %+v", first)
	}
	if first.EntrySequence.String() != "1" {
		t.Fatalf("entry sequence: %+v", first)
	}
	if first.UnitsRequired == nil || *first.UnitsRequired != 6 {
		t.Fatalf("units: %+v", first)
	}
}
