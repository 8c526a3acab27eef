package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"vucat/internal"
	"vucat/internal/config"
	"vucat/internal/mappings"
	"vucat/internal/pipeline"
	"vucat/internal/portal"
	"vucat/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "sections:scrape":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		start := fs.Int("start", cfg.ClassNumberStart, "first class number (inclusive)")
		end := fs.Int("end", cfg.ClassNumberEnd, "last class number (exclusive)")
		term := fs.String("term", cfg.TermCode, "term code")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "sections.csv"), "output csv path")
		_ = fs.Parse(os.Args[2:])

		cfg.TermCode = *term
		fmt.Printf("Scanning class numbers %d to %d (term %s)\n", *start, *end, cfg.TermCode)

		started := time.Now()
		scraper := pipeline.NewSectionScraper(cfg, portal.NewClient(cfg))
		records, err := scraper.Run(context.Background(), *start, *end)
		must(err)

		must(pipeline.WriteSectionsCSV(*out, records))
		must(db.UpsertSections(records))
		_ = db.InsertRun("sections",
			map[string]float64{"totalMs": float64(time.Since(started).Milliseconds())},
			map[string]int{"scanned": *end - *start, "found": len(records)})
		fmt.Printf("saved %d sections to %s\n", len(records), *out)
	case "catalog:scrape":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", filepath.Join(cfg.OutputDir, "courses.csv"), "output csv path")
		_ = fs.Parse(os.Args[2:])

		writer, err := pipeline.NewCourseCSVWriter(*out)
		must(err)

		started := time.Now()
		scraper := pipeline.NewCatalogScraper(cfg, portal.NewClient(cfg), mappings.SubjectList())
		total, err := scraper.Run(context.Background(), func(record internal.CourseRecord) error {
			if err := db.UpsertCourse(record); err != nil {
				return err
			}
			return writer.Write(record)
		})
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
		must(err)

		_ = db.InsertRun("catalog",
			map[string]float64{"totalMs": float64(time.Since(started).Milliseconds())},
			map[string]int{"found": total})
		fmt.Printf("scraping completed, total courses found: %d\n", total)
		fmt.Printf("results saved to %s\n", *out)
	case "requirements:convert":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "requirements json export")
		out := fs.String("out", "", "output csv path")
		mode := fs.String("mode", "detail", "detail|structure")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--input and --out are required"))
		}

		audits, err := pipeline.LoadRequirements(*input)
		must(err)

		switch *mode {
		case "detail":
			rows := pipeline.DetailRows(audits)
			must(pipeline.WriteRequirementDetailCSV(*out, rows))
			fmt.Printf("wrote %d requirement rows to %s\n", len(rows), *out)
		case "structure":
			rows := pipeline.StructureRows(audits)
			must(pipeline.WriteRequirementStructureCSV(*out, rows))
			fmt.Printf("wrote %d structure rows to %s\n", len(rows), *out)
		default:
			must(fmt.Errorf("unsupported mode: %s", *mode))
		}
	case "mappings:subjects":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "saved subject-select html")
		out := fs.String("out", "", "generated go source path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--input and --out are required"))
		}

		file, err := os.Open(*input)
		must(err)
		table, err := mappings.ExtractSubjectOptions(file)
		_ = file.Close()
		must(err)
		if len(table) == 0 {
			must(fmt.Errorf("no subject options found in %s", *input))
		}

		outFile, err := os.Create(*out)
		must(err)
		err = mappings.WriteSubjectTable(outFile, table)
		if closeErr := outFile.Close(); err == nil {
			err = closeErr
		}
		must(err)
		fmt.Printf("extracted %d subject mappings to %s\n", len(table), *out)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		table := fs.String("table", "", "sections|courses")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--table and --out are required"))
		}

		switch *table {
		case "sections":
			records, err := db.ListSections()
			must(err)
			must(pipeline.ExportSectionsXLSX(records, *out))
			fmt.Printf("exported %d sections to %s\n", len(records), *out)
		case "courses":
			records, err := db.ListCourses()
			must(err)
			must(pipeline.ExportCoursesXLSX(records, *out))
			fmt.Printf("exported %d courses to %s\n", len(records), *out)
		default:
			must(fmt.Errorf("unsupported table: %s", *table))
		}
	case "db:stats":
		stats, err := db.Stats()
		must(err)
		w := tablewriter.NewWriter(os.Stdout)
		w.SetHeader([]string{"Table", "Rows"})
		for _, s := range stats {
			w.Append([]string{s.Table, fmt.Sprintf("%d", s.Rows)})
		}
		w.Render()
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: vucat <command>")
	fmt.Println("commands:")
	fmt.Println("  sections:scrape [--start=1000] [--end=13000] [--term=1055] [--out=out/sections.csv]")
	fmt.Println("  catalog:scrape [--out=out/courses.csv]")
	fmt.Println("  requirements:convert --input=reqs.json --out=rows.csv [--mode=detail|structure]")
	fmt.Println("  mappings:subjects --input=subjects.html --out=subject_table.go")
	fmt.Println("  export:xlsx --table=sections|courses --out=out/table.xlsx")
	fmt.Println("  db:stats")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
