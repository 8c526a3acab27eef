package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"vucat/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS sections (
  class_number TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  long_title TEXT NOT NULL,
  subject TEXT NOT NULL,
  catalog_number TEXT NOT NULL,
  section_number TEXT NOT NULL,
  school_code TEXT,
  career_code TEXT,
  component_code TEXT,
  units_earned REAL,
  lastSeenAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sections_subject ON sections(subject);
CREATE INDEX IF NOT EXISTS idx_sections_display_name ON sections(display_name);

CREATE TABLE IF NOT EXISTS courses (
  course_id TEXT PRIMARY KEY,
  subject TEXT NOT NULL,
  catalog_number TEXT NOT NULL,
  display_name TEXT NOT NULL,
  long_title TEXT NOT NULL,
  school_code TEXT,
  career_code TEXT,
  component_code TEXT,
  units_earned TEXT NOT NULL,
  term_offered TEXT NOT NULL,
  all_requirements TEXT,
  corequisites TEXT,
  prerequisites TEXT,
  anti_requisites TEXT,
  attributes TEXT,
  description TEXT NOT NULL,
  lastSeenAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_courses_subject ON courses(subject);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  kind TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertSections(records []internal.ClassSectionRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO sections (
  class_number, display_name, long_title, subject, catalog_number,
  section_number, school_code, career_code, component_code, units_earned, lastSeenAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(class_number) DO UPDATE SET
  display_name=excluded.display_name,
  long_title=excluded.long_title,
  subject=excluded.subject,
  catalog_number=excluded.catalog_number,
  section_number=excluded.section_number,
  school_code=excluded.school_code,
  career_code=excluded.career_code,
  component_code=excluded.component_code,
  units_earned=excluded.units_earned,
  lastSeenAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.ClassNumber, r.DisplayName, r.LongTitle, r.Subject, r.CatalogNumber,
			r.SectionNumber, r.SchoolCode, r.CareerCode, r.ComponentCode, r.UnitsEarned,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListSections() ([]internal.ClassSectionRecord, error) {
	rows, err := d.conn.Query(`
SELECT class_number, display_name, long_title, subject, catalog_number,
       section_number, school_code, career_code, component_code, units_earned
FROM sections ORDER BY CAST(class_number AS INTEGER) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ClassSectionRecord
	for rows.Next() {
		var r internal.ClassSectionRecord
		if err := rows.Scan(
			&r.ClassNumber, &r.DisplayName, &r.LongTitle, &r.Subject, &r.CatalogNumber,
			&r.SectionNumber, &r.SchoolCode, &r.CareerCode, &r.ComponentCode, &r.UnitsEarned,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

func (d *DB) UpsertCourse(r internal.CourseRecord) error {
	_, err := d.conn.Exec(`
INSERT INTO courses (
  course_id, subject, catalog_number, display_name, long_title,
  school_code, career_code, component_code, units_earned, term_offered,
  all_requirements, corequisites, prerequisites, anti_requisites,
  attributes, description, lastSeenAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(course_id) DO UPDATE SET
  subject=excluded.subject,
  catalog_number=excluded.catalog_number,
  display_name=excluded.display_name,
  long_title=excluded.long_title,
  school_code=excluded.school_code,
  career_code=excluded.career_code,
  component_code=excluded.component_code,
  units_earned=excluded.units_earned,
  term_offered=excluded.term_offered,
  all_requirements=excluded.all_requirements,
  corequisites=excluded.corequisites,
  prerequisites=excluded.prerequisites,
  anti_requisites=excluded.anti_requisites,
  attributes=excluded.attributes,
  description=excluded.description,
  lastSeenAt=CURRENT_TIMESTAMP
`, r.CourseID, r.Subject, r.CatalogNumber, r.DisplayName, r.LongTitle,
		r.SchoolCode, r.CareerCode, r.ComponentCode, r.UnitsEarned, r.TermOffered,
		r.AllRequirements, r.Corequisites, r.Prerequisites, r.AntiRequisites,
		r.Attributes, r.Description)
	return err
}

func (d *DB) ListCourses() ([]internal.CourseRecord, error) {
	rows, err := d.conn.Query(`
SELECT course_id, subject, catalog_number, display_name, long_title,
       school_code, career_code, component_code, units_earned, term_offered,
       all_requirements, corequisites, prerequisites, anti_requisites,
       attributes, description
FROM courses ORDER BY subject ASC, catalog_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CourseRecord
	for rows.Next() {
		var r internal.CourseRecord
		if err := rows.Scan(
			&r.CourseID, &r.Subject, &r.CatalogNumber, &r.DisplayName, &r.LongTitle,
			&r.SchoolCode, &r.CareerCode, &r.ComponentCode, &r.UnitsEarned, &r.TermOffered,
			&r.AllRequirements, &r.Corequisites, &r.Prerequisites, &r.AntiRequisites,
			&r.Attributes, &r.Description,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

func (d *DB) InsertRun(kind string, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (kind, countsJson, timingsJson) VALUES (?, ?, ?)`,
		kind, string(countsJSON), string(timingsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

type TableCount struct {
	Table string
	Rows  int
}

// Stats reports row counts for the scraped tables, for the db:stats command.
func (d *DB) Stats() ([]TableCount, error) {
	out := []TableCount{}
	for _, table := range []string{"sections", "courses", "runs"} {
		var count int
		if err := d.conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			return nil, err
		}
		out = append(out, TableCount{Table: table, Rows: count})
	}
	return out, nil
}
