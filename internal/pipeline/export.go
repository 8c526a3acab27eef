package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"vucat/internal"
)

var sectionColumns = []string{
	"class_number", "display_name", "long_title", "subject", "catalog_number",
	"section_number", "school_code", "career_code", "component_code", "units_earned",
}

var courseColumns = []string{
	"course_id", "subject", "catalog_number", "display_name", "long_title",
	"school_code", "career_code", "component_code", "units_earned", "term_offered",
	"all_requirements", "corequisites", "prerequisites", "anti_requirements",
	"attributes", "description",
}

var requirementDetailColumns = []string{
	"group_name", "is_main_requirement", "requirement_name", "description",
	"status", "units_required", "units_used", "units_needed",
	"term_taken", "course_id", "units_earned", "units_taken",
	"long_title", "grade", "sequence", "subject",
	"catalog_number", "display_name",
}

var requirementStructureColumns = []string{
	"group_name", "is_main_requirement", "line_name", "description", "status",
	"requirement_group_number", "requirement_number",
	"entry_sequence", "requirement_entry_sequence",
	"units_required", "units_used", "units_needed",
}

func sectionCSVRow(r internal.ClassSectionRecord) []string {
	return []string{
		r.ClassNumber, r.DisplayName, r.LongTitle, r.Subject, r.CatalogNumber,
		r.SectionNumber, csvString(r.SchoolCode), csvString(r.CareerCode),
		csvString(r.ComponentCode), csvFloat(r.UnitsEarned),
	}
}

func courseCSVRow(r internal.CourseRecord) []string {
	return []string{
		r.CourseID, r.Subject, r.CatalogNumber, r.DisplayName, r.LongTitle,
		csvString(r.SchoolCode), csvString(r.CareerCode), csvString(r.ComponentCode),
		r.UnitsEarned, r.TermOffered,
		csvString(r.AllRequirements), csvString(r.Corequisites),
		csvString(r.Prerequisites), csvString(r.AntiRequisites),
		csvString(r.Attributes), r.Description,
	}
}

// WriteSectionsCSV writes the full section table at once, header first even
// when there are no rows.
func WriteSectionsCSV(path string, records []internal.ClassSectionRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, sectionCSVRow(r))
	}
	return writeCSV(path, sectionColumns, rows)
}

// CourseCSVWriter keeps an open handle for the whole catalog run so each
// parsed course lands on disk as it goes. An interrupted run retains every
// row written so far.
type CourseCSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

func NewCourseCSVWriter(path string) (*CourseCSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(courseColumns); err != nil {
		_ = file.Close()
		return nil, err
	}
	writer.Flush()

	return &CourseCSVWriter{file: file, writer: writer}, nil
}

func (w *CourseCSVWriter) Write(record internal.CourseRecord) error {
	if err := w.writer.Write(courseCSVRow(record)); err != nil {
		return err
	}
	w.writer.Flush()
	return w.writer.Error()
}

func (w *CourseCSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

func WriteRequirementDetailCSV(path string, rows []RequirementDetailRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			r.GroupName, csvBool(r.IsMainRequirement), r.RequirementName,
			r.Description, r.Status,
			csvFloat(r.UnitsRequired), csvFloat(r.UnitsUsed), csvFloat(r.UnitsNeeded),
		}
		if r.Course != nil {
			row = append(row,
				r.Course.TermTaken, r.Course.CourseID.String(),
				csvFloat(r.Course.UnitsEarned), csvFloat(r.Course.UnitsTaken),
				r.Course.LongTitle, r.Course.Grade, r.Course.Sequence.String(),
				r.Course.Subject, r.Course.CatalogNumber, r.Course.DisplayName,
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "", "", "")
		}
		out = append(out, row)
	}
	return writeCSV(path, requirementDetailColumns, out)
}

func WriteRequirementStructureCSV(path string, rows []RequirementStructureRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.GroupName, csvBool(r.IsMainRequirement), r.LineName,
			r.Description, r.Status,
			r.RequirementGroupNumber.String(), r.RequirementNumber.String(),
			r.EntrySequence.String(), r.RequirementEntrySeq.String(),
			csvFloat(r.UnitsRequired), csvFloat(r.UnitsUsed), csvFloat(r.UnitsNeeded),
		})
	}
	return writeCSV(path, requirementStructureColumns, out)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		_ = file.Close()
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			_ = file.Close()
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ExportSectionsXLSX renders the section table as a spreadsheet.
func ExportSectionsXLSX(records []internal.ClassSectionRecord, outputPath string) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, sectionCSVRow(r))
	}
	return writeXLSX(outputPath, sectionColumns, rows)
}

// ExportCoursesXLSX renders the course table as a spreadsheet.
func ExportCoursesXLSX(records []internal.CourseRecord, outputPath string) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, courseCSVRow(r))
	}
	return writeXLSX(outputPath, courseColumns, rows)
}

func writeXLSX(outputPath string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func csvString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func csvBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
