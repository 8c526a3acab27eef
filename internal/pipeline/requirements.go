package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// The degree-requirement export is a 4-level tree: audit documents contain
// requirement groups, which contain requirements, which contain requirement
// lines, which are optionally satisfied by courses. Field names follow the
// export's camelCase keys.

type RequirementAudit struct {
	RequirementGroups []RequirementGroup `json:"requirementGroups"`
}

type RequirementGroup struct {
	Name                   string        `json:"name"`
	Plan                   string        `json:"plan"`
	RequirementGroupNumber json.Number   `json:"requirementGroupNumber"`
	EntrySequence          json.Number   `json:"entrySequence"`
	Requirements           []Requirement `json:"requirements"`
}

type Requirement struct {
	Name              string            `json:"name"`
	RequirementNumber json.Number       `json:"requirementNumber"`
	EntrySequence     json.Number       `json:"entrySequence"`
	RequirementLines  []RequirementLine `json:"requirementLines"`
}

type RequirementLine struct {
	Name                 string             `json:"name"`
	Description          string             `json:"description"`
	Status               string             `json:"status"`
	UnitsRequired        *float64           `json:"unitsRequired"`
	UnitsUsed            *float64           `json:"unitsUsed"`
	UnitsNeeded          *float64           `json:"unitsNeeded"`
	CoursesUsedToSatisfy []SatisfyingCourse `json:"coursesUsedToSatisfy"`
}

type SatisfyingCourse struct {
	TermTaken     string      `json:"termTaken"`
	CourseID      json.Number `json:"courseId"`
	UnitsEarned   *float64    `json:"unitsEarned"`
	UnitsTaken    *float64    `json:"unitsTaken"`
	LongTitle     string      `json:"longTitle"`
	Grade         string      `json:"grade"`
	Sequence      json.Number `json:"sequence"`
	Subject       string      `json:"subject"`
	CatalogNumber string      `json:"catalogNumber"`
	DisplayName   string      `json:"displayName"`
}

// RequirementDetailRow is the detail-mode flat row: one per satisfying
// course, or one with a nil Course for lines nothing satisfies yet.
type RequirementDetailRow struct {
	GroupName         string
	IsMainRequirement bool
	RequirementName   string
	Description       string
	Status            string
	UnitsRequired     *float64
	UnitsUsed         *float64
	UnitsNeeded       *float64
	Course            *SatisfyingCourse
}

// RequirementStructureRow is the structure-mode flat row: one per
// requirement line, positional metadata only.
type RequirementStructureRow struct {
	GroupName              string
	IsMainRequirement      bool
	LineName               string
	Description            string
	Status                 string
	RequirementGroupNumber json.Number
	RequirementNumber      json.Number
	EntrySequence          json.Number
	RequirementEntrySeq    json.Number
	UnitsRequired          *float64
	UnitsUsed              *float64
	UnitsNeeded            *float64
}

// LoadRequirements reads a degree-requirement export. A missing or malformed
// file is fatal for the run; the caller writes nothing in that case.
func LoadRequirements(path string) ([]RequirementAudit, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("requirements file: %w", err)
	}

	var audits []RequirementAudit
	if err := json.Unmarshal(blob, &audits); err != nil {
		return nil, fmt.Errorf("requirements file %s: %w", path, err)
	}

	return audits, nil
}

const unnamedGroup = "Unnamed Requirement Group"

// DetailRows flattens the tree one row per satisfying course. A line with no
// courses still yields exactly one row with nil course fields, so every line
// is visible in the output. Row count equals the per-line sum of
// max(1, course count).
func DetailRows(audits []RequirementAudit) []RequirementDetailRow {
	rows := []RequirementDetailRow{}

	for _, audit := range audits {
		for _, group := range audit.RequirementGroups {
			groupName := group.Name
			if groupName == "" {
				groupName = unnamedGroup
			}
			isMain := group.Plan != ""

			for _, requirement := range group.Requirements {
				for _, line := range requirement.RequirementLines {
					base := RequirementDetailRow{
						GroupName:         groupName,
						IsMainRequirement: isMain,
						RequirementName:   requirement.Name,
						Description:       line.Description,
						Status:            line.Status,
						UnitsRequired:     line.UnitsRequired,
						UnitsUsed:         line.UnitsUsed,
						UnitsNeeded:       line.UnitsNeeded,
					}

					if len(line.CoursesUsedToSatisfy) == 0 {
						rows = append(rows, base)
						continue
					}
					for i := range line.CoursesUsedToSatisfy {
						row := base
						row.Course = &line.CoursesUsedToSatisfy[i]
						rows = append(rows, row)
					}
				}
			}
		}
	}

	return rows
}

// StructureRows flattens the tree one row per requirement line, keeping the
// positional identifiers from the group and requirement levels.
func StructureRows(audits []RequirementAudit) []RequirementStructureRow {
	rows := []RequirementStructureRow{}

	for _, audit := range audits {
		for _, group := range audit.RequirementGroups {
			groupName := group.Name
			if groupName == "" {
				groupName = unnamedGroup
			}
			isMain := group.Plan != ""

			for _, requirement := range group.Requirements {
				for _, line := range requirement.RequirementLines {
					rows = append(rows, RequirementStructureRow{
						GroupName:              groupName,
						IsMainRequirement:      isMain,
						LineName:               line.Name,
						Description:            line.Description,
						Status:                 line.Status,
						RequirementGroupNumber: group.RequirementGroupNumber,
						RequirementNumber:      requirement.RequirementNumber,
						EntrySequence:          group.EntrySequence,
						RequirementEntrySeq:    requirement.EntrySequence,
						UnitsRequired:          line.UnitsRequired,
						UnitsUsed:              line.UnitsUsed,
						UnitsNeeded:            line.UnitsNeeded,
					})
				}
			}
		}
	}

	return rows
}
