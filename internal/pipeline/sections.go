// Package pipeline contains the three extraction flows: class sections by id
// scan, course catalog by subject search, and degree-requirement flattening.
// Each parser is a named function returning (record, error) so a skip reason
// stays inspectable instead of being swallowed in the loop.
package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatih/color"

	"vucat/internal"
	"vucat/internal/config"
	"vucat/internal/mappings"
	"vucat/internal/util"
)

// sectionDetailMarker distinguishes a real section detail page from the
// portal's generic "nothing here" response, which still comes back 200.
const sectionDetailMarker = "classSectionDetailDialog"

var sectionCodePattern = regexp.MustCompile(`^([A-Z]{2,6})-([A-Z0-9]{4,6})-(\d{2})`)

type SectionHeader struct {
	Subject       string
	CatalogNumber string
	SectionNumber string
	DisplayName   string
	LongTitle     string
}

// ParseSectionHeader splits the page heading on the first colon and matches
// the SUBJECT-CATALOG-SECTION code on the left side.
func ParseSectionHeader(header string) (SectionHeader, error) {
	left, title, _ := strings.Cut(header, ":")
	left = strings.TrimSpace(left)
	title = strings.TrimSpace(title)

	m := sectionCodePattern.FindStringSubmatch(left)
	if m == nil {
		return SectionHeader{}, fmt.Errorf("header %q: no section code", header)
	}

	return SectionHeader{
		Subject:       m[1],
		CatalogNumber: m[2],
		SectionNumber: m[3],
		DisplayName:   m[1] + "-" + m[2],
		LongTitle:     title,
	}, nil
}

// ParseSectionDetail turns one section detail document into a record. The
// returned error is a skip reason, never fatal to the scan.
func ParseSectionDetail(classNumber int, body string) (internal.ClassSectionRecord, error) {
	if !strings.Contains(body, sectionDetailMarker) {
		return internal.ClassSectionRecord{}, fmt.Errorf("class %d: no section detail", classNumber)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return internal.ClassSectionRecord{}, err
	}

	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return internal.ClassSectionRecord{}, fmt.Errorf("class %d: no heading", classNumber)
	}

	header, err := ParseSectionHeader(util.NormalizeSpaces(h1.Text()))
	if err != nil {
		return internal.ClassSectionRecord{}, err
	}

	record := internal.ClassSectionRecord{
		ClassNumber:   strconv.Itoa(classNumber),
		DisplayName:   header.DisplayName,
		LongTitle:     header.LongTitle,
		Subject:       header.Subject,
		CatalogNumber: header.CatalogNumber,
		SectionNumber: header.SectionNumber,
	}
	parseSectionDetailPanel(doc, &record)

	return record, nil
}

// parseSectionDetailPanel reads the label/value table inside the first
// detailPanel div. Unknown labels are ignored; labels whose value has no
// mapping stay nil rather than failing the record.
func parseSectionDetailPanel(doc *goquery.Document, record *internal.ClassSectionRecord) {
	doc.Find("div.detailPanel").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		label := util.TrimLabel(cells.Eq(0).Text())
		value := util.NormalizeSpaces(cells.Eq(1).Text())

		switch label {
		case "School":
			record.SchoolCode = mappings.LookupPtr(mappings.School, value)
		case "Career":
			record.CareerCode = mappings.LookupPtr(mappings.Career, value)
		case "Component":
			record.ComponentCode = mappings.LookupPtr(mappings.Component, value)
		case "Hours":
			if hours, err := strconv.ParseFloat(value, 64); err == nil {
				record.UnitsEarned = util.FloatPtr(hours)
			}
		}
	})
}

type sectionFetcher interface {
	SectionDetail(ctx context.Context, classNumber int) (string, error)
}

type SectionScraper struct {
	cfg   config.Config
	fetch sectionFetcher
}

func NewSectionScraper(cfg config.Config, fetch sectionFetcher) *SectionScraper {
	return &SectionScraper{cfg: cfg, fetch: fetch}
}

// Run scans class numbers [start, end). Every per-id failure, transport or
// shape, skips that id; the scan itself only stops at the end of the range.
func (s *SectionScraper) Run(ctx context.Context, start, end int) ([]internal.ClassSectionRecord, error) {
	results := make([]internal.ClassSectionRecord, 0)
	found := 0

	for classNumber := start; classNumber < end; classNumber++ {
		body, err := s.fetch.SectionDetail(ctx, classNumber)
		if err != nil {
			continue
		}

		record, err := ParseSectionDetail(classNumber, body)
		if err != nil {
			continue
		}

		found++
		results = append(results, record)
		color.Green("Found class %5d - total found: %05d", classNumber, found)
	}

	return results, nil
}
