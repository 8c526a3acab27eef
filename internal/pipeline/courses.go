package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatih/color"

	"vucat/internal"
	"vucat/internal/config"
	"vucat/internal/mappings"
	"vucat/internal/util"
)

const noCoursesMarker = "No courses found."

var (
	courseIDPattern = regexp.MustCompile(
		`YAHOO\.mis\.student\.CourseDetailPanel\.showCourseDetail\('(\d+)', '(\d+)', notificationString\);`)
	notificationPattern = regexp.MustCompile(`var notificationString = '(.*?)';`)
	verificationPattern = regexp.MustCompile(`^(.*?)-\d+$`)

	catalogNumberPattern = regexp.MustCompile(`(\d{4}[A-Z]?)\s+-\s+`)
	parentheticalPattern = regexp.MustCompile(`\(.*?\)`)
)

// termRule maps a substring of the "Typically Offered" text to its token.
// The slice order is the output order, regardless of how the portal phrases
// the value.
type termRule struct {
	Contains string
	Token    string
}

var termRules = []termRule{
	{Contains: "Fall", Token: "FA"},
	{Contains: "Spring", Token: "SP"},
	{Contains: "Summer", Token: "SU"},
	{Contains: "Alternate Years", Token: "ALT"},
}

// requisiteAnchors are the keyword anchors that carve the requirement blob
// into prerequisite, corequisite and anti-requisite segments. A segment runs
// from its anchor to the earliest occurrence of any other anchor.
var requisiteAnchors = []string{
	"Prerequisite:",
	"Corequisite:",
	"Not open to students who have earned credit for",
}

// ExtractCourseRefs pulls candidate courses out of a search-results page by
// pairing the showCourseDetail calls with the parallel notification strings
// positionally. The verification code is the notification's text before its
// trailing "-<number>" suffix.
func ExtractCourseRefs(body string) []internal.CourseRef {
	ids := courseIDPattern.FindAllStringSubmatch(body, -1)
	notifications := notificationPattern.FindAllStringSubmatch(body, -1)

	refs := make([]internal.CourseRef, 0, len(ids))
	for i, m := range ids {
		ref := internal.CourseRef{CourseID: m[1], OfferNumber: m[2]}

		if i < len(notifications) {
			notification := notifications[i][1]
			ref.Notification = &notification
			if vm := verificationPattern.FindStringSubmatch(notification); vm != nil {
				ref.VerificationCode = &vm[1]
			}
		}

		refs = append(refs, ref)
	}

	return refs
}

// ExtractRequisiteSegment isolates one requisite segment from the blob. Nil
// when the anchor is absent; otherwise the text after the anchor, truncated
// at the earliest other anchor, trimmed of ":; " padding.
func ExtractRequisiteSegment(text, anchor string) *string {
	_, rest, found := strings.Cut(text, anchor)
	if !found {
		return nil
	}

	cut := len(rest)
	for _, other := range requisiteAnchors {
		if other == anchor {
			continue
		}
		if idx := strings.Index(rest, other); idx >= 0 && idx < cut {
			cut = idx
		}
	}

	segment := strings.TrimSpace(strings.Trim(rest[:cut], ":; "))
	return &segment
}

// TermTokens decomposes a "Typically Offered" value through the ordered rule
// table. Check order fixes the output order: FA, SP, SU, ALT.
func TermTokens(text string) string {
	tokens := make([]string, 0, len(termRules))
	for _, rule := range termRules {
		if strings.Contains(text, rule.Contains) {
			tokens = append(tokens, rule.Token)
		}
	}
	return strings.Join(tokens, ", ")
}

// ParseCourseDetail turns one course detail document into a record. The
// returned error is a skip reason for that candidate only.
func ParseCourseDetail(body, subjectCode, courseID string) (internal.CourseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return internal.CourseRecord{}, err
	}

	h1 := doc.Find("#courseDetailDialog h1").First()
	if h1.Length() == 0 {
		return internal.CourseRecord{}, fmt.Errorf("course %s: no title line", courseID)
	}

	titleText := util.NormalizeSpaces(h1.Text())
	cm := catalogNumberPattern.FindStringSubmatch(titleText)
	if cm == nil {
		return internal.CourseRecord{}, fmt.Errorf("course %s: malformed heading %q", courseID, titleText)
	}
	catalogNumber := cm[1]

	_, longTitle, found := strings.Cut(titleText, catalogNumber+" - ")
	if !found {
		return internal.CourseRecord{}, fmt.Errorf("course %s: no title after catalog number", courseID)
	}

	record := internal.CourseRecord{
		CourseID:      courseID,
		Subject:       subjectCode,
		CatalogNumber: catalogNumber,
		DisplayName:   subjectCode + " " + catalogNumber,
		LongTitle:     strings.TrimSpace(longTitle),
	}

	details := readNameValueTable(doc.Find(".detailPanel .nameValueTable tr"))
	record.SchoolCode = mappings.LookupPtr(mappings.School, details["School"])
	record.CareerCode = mappings.LookupPtr(mappings.Career, details["Career"])
	record.UnitsEarned = strings.TrimSpace(withDefault(details, "Units", "0"))

	components := util.NormalizeSpaces(parentheticalPattern.ReplaceAllString(details["Components"], ""))
	record.ComponentCode = mappings.LookupPtr(mappings.Component, components)

	rightPanel := readNameValueTable(doc.Find("#rightSection .detailPanel .nameValueTable tr"))
	record.TermOffered = TermTokens(rightPanel["Typically Offered"])

	requirements := rightPanel["Requirement"]
	record.AllRequirements = util.NullableString(requirements)
	record.Prerequisites = ExtractRequisiteSegment(requirements, "Prerequisite:")
	record.Corequisites = ExtractRequisiteSegment(requirements, "Corequisite:")
	record.AntiRequisites = ExtractRequisiteSegment(requirements, "Not open to students who have earned credit for")

	record.Attributes = extractAttributes(doc)
	record.Description = extractDescription(doc)

	return record, nil
}

// readNameValueTable reads rows keyed by a bold label into a map. Rows
// without a strong tag or a value cell are ignored.
func readNameValueTable(rows *goquery.Selection) map[string]string {
	out := map[string]string{}
	rows.Each(func(_ int, row *goquery.Selection) {
		strong := row.Find("strong").First()
		if strong.Length() == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		key := util.TrimLabel(strong.Text())
		out[key] = util.NormalizeSpaces(cells.Eq(1).Text())
	})
	return out
}

// extractAttributes reads the nested divs following the bold "Attributes"
// label in the right panel, keeping only labels the attribute table knows.
func extractAttributes(doc *goquery.Document) *string {
	codes := []string{}
	doc.Find("#rightSection .detailPanel td").Each(func(_ int, cell *goquery.Selection) {
		label := util.TrimLabel(cell.Find("strong").First().Text())
		if label != "Attributes" {
			return
		}
		cell.NextAll().Find("div").Each(func(_ int, div *goquery.Selection) {
			if code, ok := mappings.Lookup(mappings.Attribute, util.NormalizeSpaces(div.Text())); ok {
				codes = append(codes, code)
			}
		})
	})

	if len(codes) == 0 {
		return nil
	}
	return util.StringPtr(strings.Join(codes, ", "))
}

// extractDescription walks from the div.clear anchor to the first following
// detailHeader sibling mentioning "Description" and takes the text of the
// content panel after it. Absent pieces yield an empty string, not null.
func extractDescription(doc *goquery.Document) string {
	header := doc.Find("div.clear").First().NextAllFiltered("div.detailHeader").First()
	if header.Length() == 0 || !strings.Contains(header.Text(), "Description") {
		return ""
	}
	panel := header.NextAllFiltered("div.detailPanel").First()
	return util.NormalizeSpaces(panel.Text())
}

func withDefault(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

type catalogFetcher interface {
	SearchCourses(ctx context.Context, keywords string) (string, error)
	CourseDetail(ctx context.Context, courseID, offerNumber string) (string, error)
}

// CourseSink receives each parsed course as the scan goes, so output survives
// an interrupted run up to the last completed course.
type CourseSink func(internal.CourseRecord) error

type CatalogScraper struct {
	cfg      config.Config
	fetch    catalogFetcher
	subjects []mappings.SubjectEntry
}

func NewCatalogScraper(cfg config.Config, fetch catalogFetcher, subjects []mappings.SubjectEntry) *CatalogScraper {
	return &CatalogScraper{cfg: cfg, fetch: fetch, subjects: subjects}
}

// Run walks the subject list in order. Search failures skip the subject,
// candidate failures skip the candidate; only sink errors are fatal since a
// broken output file fails the whole run.
func (s *CatalogScraper) Run(ctx context.Context, sink CourseSink) (int, error) {
	total := 0

	for _, subject := range s.subjects {
		fmt.Printf("Processing (%s) %s\n", subject.Code, subject.Name)

		body, err := s.fetch.SearchCourses(ctx, subject.Name)
		if err != nil {
			color.Red("  search failed for %s: %v", subject.Name, err)
			continue
		}
		if strings.Contains(body, noCoursesMarker) {
			fmt.Printf("  no courses found for %s\n", subject.Name)
			continue
		}

		subjectCount := 0
		for _, ref := range ExtractCourseRefs(body) {
			// Leakage guard: the search endpoint may return courses from
			// other subjects. TODO: re-verify whether this also drops
			// legitimately cross-listed sections.
			if ref.VerificationCode == nil || *ref.VerificationCode != subject.Code {
				continue
			}

			detail, err := s.fetch.CourseDetail(ctx, ref.CourseID, ref.OfferNumber)
			if err != nil {
				color.Red("  error fetching course %s: %v", ref.CourseID, err)
				continue
			}

			record, err := ParseCourseDetail(detail, subject.Code, ref.CourseID)
			if err != nil {
				color.Red("  error parsing course %s: %v", ref.CourseID, err)
				continue
			}

			if err := sink(record); err != nil {
				return total, err
			}
			subjectCount++
			total++
			fmt.Printf("  (%05d) Found: %s\n", total, record.DisplayName)
		}

		fmt.Printf("  completed %s: %d courses found\n", subject.Name, subjectCount)
	}

	return total, nil
}
