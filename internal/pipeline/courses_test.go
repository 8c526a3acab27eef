package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"vucat/internal"
	"vucat/internal/config"
	"vucat/internal/mappings"
)

const searchResultsHTML = `<html><body><script>
var notificationString = 'CS-1';
YAHOO.mis.student.CourseDetailPanel.showCourseDetail('11111', '1', notificationString);
var notificationString = 'MATH-2';
YAHOO.mis.student.CourseDetailPanel.showCourseDetail('22222', '1', notificationString);
var notificationString = 'just text';
YAHOO.mis.student.CourseDetailPanel.showCourseDetail('33333', '2', notificationString);
</script></body></html>`

const courseDetailHTML = `<html><body>
<div id="courseDetailDialog">
  <h1>Undergraduate 1101 - Programming and Problem Solving</h1>
  <div class="detailPanel">
    <table class="nameValueTable">
      <tr><td><strong>School:</strong></td><td>School of Engineering</td></tr>
      <tr><td><strong>Career:</strong></td><td>Undergraduate</td></tr>
      <tr><td><strong>Units:</strong></td><td>3</td></tr>
      <tr><td><strong>Components:</strong></td><td>Lecture (Required)</td></tr>
    </table>
  </div>
  <div id="rightSection">
    <div class="detailPanel">
      <table class="nameValueTable">
        <tr><td><strong>Typically Offered:</strong></td><td>Summer, Fall</td></tr>
        <tr><td><strong>Requirement:</strong></td><td>Prerequisite: MATH 1300; Corequisite: MATH 1301</td></tr>
        <tr>
          <td><strong>Attributes:</strong></td>
          <td>
            <div>AXLE: Mathematics and Natural Sciences</div>
            <div>Honors Eligible</div>
            <div>Some Unlisted Attribute</div>
          </td>
        </tr>
      </table>
    </div>
  </div>
  <div class="clear"></div>
  <div class="detailHeader">Course Description</div>
  <div class="detailPanel">An introduction to programming with an emphasis on problem solving.</div>
</div>
</body></html>`

func TestExtractCourseRefs(t *testing.T) {
	refs := ExtractCourseRefs(searchResultsHTML)
	if len(refs) != 3 {
		t.Fatalf("len=%d", len(refs))
	}

	if refs[0].CourseID != "11111" || refs[0].OfferNumber != "1" {
		t.Fatalf("ref0: %+v", refs[0])
	}
	if refs[0].VerificationCode == nil || *refs[0].VerificationCode != "CS" {
		t.Fatalf("ref0 code: %+v", refs[0].VerificationCode)
	}
	if refs[1].VerificationCode == nil || *refs[1].VerificationCode != "MATH" {
		t.Fatalf("ref1 code: %+v", refs[1].VerificationCode)
	}
	// Notification without a "<code>-<number>" suffix yields no code.
	if refs[2].VerificationCode != nil {
		t.Fatalf("ref2 code should be nil: %q", *refs[2].VerificationCode)
	}
}

func TestExtractCourseRefsPairsPositionally(t *testing.T) {
	// More ids than notifications: the extra candidate has no notification.
	html := `var notificationString = 'CS-9';
YAHOO.mis.student.CourseDetailPanel.showCourseDetail('1', '1', notificationString);
YAHOO.mis.student.CourseDetailPanel.showCourseDetail('2', '1', notificationString);`
	refs := ExtractCourseRefs(html)
	if len(refs) != 2 {
		t.Fatalf("len=%d", len(refs))
	}
	if refs[0].Notification == nil || refs[1].Notification != nil {
		t.Fatalf("pairing wrong: %+v", refs)
	}
}

func TestTermTokens(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Fall and Summer", "FA, SU"},
		{"Summer, Fall", "FA, SU"},
		{"Spring", "SP"},
		{"Fall, Spring, Summer, Alternate Years", "FA, SP, SU, ALT"},
		{"Alternate Years in the Fall", "FA, ALT"},
		{"", ""},
		{"Whenever", ""},
	}

	for _, tc := range cases {
		if got := TermTokens(tc.input); got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.input, got, tc.want)
		}
	}
}

func TestExtractRequisiteSegment(t *testing.T) {
	text := "Prerequisite: MATH 1300; Corequisite: MATH 1301"

	prereq := ExtractRequisiteSegment(text, "Prerequisite:")
	if prereq == nil || *prereq != "MATH 1300" {
		t.Fatalf("prereq: %v", prereq)
	}
	coreq := ExtractRequisiteSegment(text, "Corequisite:")
	if coreq == nil || *coreq != "MATH 1301" {
		t.Fatalf("coreq: %v", coreq)
	}

	// Reordered keywords still isolate each segment.
	reordered := "Corequisite: MATH 1301. Prerequisite: MATH 1300"
	prereq = ExtractRequisiteSegment(reordered, "Prerequisite:")
	if prereq == nil || *prereq != "MATH 1300" {
		t.Fatalf("reordered prereq: %v", prereq)
	}
	coreq = ExtractRequisiteSegment(reordered, "Corequisite:")
	if coreq == nil || *coreq != "MATH 1301." {
		t.Fatalf("reordered coreq: %v", coreq)
	}

	anti := ExtractRequisiteSegment(
		"Not open to students who have earned credit for CS 1104. Prerequisite: none",
		"Not open to students who have earned credit for")
	if anti == nil || *anti != "CS 1104." {
		t.Fatalf("anti: %v", anti)
	}

	if ExtractRequisiteSegment("open enrollment", "Prerequisite:") != nil {
		t.Fatal("absent anchor should yield nil")
	}
}

func TestParseCourseDetail(t *testing.T) {
	record, err := ParseCourseDetail(courseDetailHTML, "CS", "11111")
	if err != nil {
		t.Fatal(err)
	}

	if record.CourseID != "11111" || record.Subject != "CS" {
		t.Fatalf("identity: %+v", record)
	}
	if record.CatalogNumber != "1101" || record.DisplayName != "CS 1101" {
		t.Fatalf("catalog: %+v", record)
	}
	if record.LongTitle != "Programming and Problem Solving" {
		t.Fatalf("title %q", record.LongTitle)
	}
	if record.SchoolCode == nil || *record.SchoolCode != "ENGIN" {
		t.Fatalf("school %v", record.SchoolCode)
	}
	if record.UnitsEarned != "3" {
		t.Fatalf("units %q", record.UnitsEarned)
	}
	if record.ComponentCode == nil || *record.ComponentCode != "LEC" {
		t.Fatalf("component %v", record.ComponentCode)
	}
	if record.TermOffered != "FA, SU" {
		t.Fatalf("terms %q", record.TermOffered)
	}
	if record.Prerequisites == nil || *record.Prerequisites != "MATH 1300" {
		t.Fatalf("prereq %v", record.Prerequisites)
	}
	if record.Corequisites == nil || *record.Corequisites != "MATH 1301" {
		t.Fatalf("coreq %v", record.Corequisites)
	}
	if record.AntiRequisites != nil {
		t.Fatalf("anti should be nil: %v", *record.AntiRequisites)
	}
	if record.Attributes == nil || *record.Attributes != "MNS, HON" {
		t.Fatalf("attributes %v", record.Attributes)
	}
	if !strings.Contains(record.Description, "introduction to programming") {
		t.Fatalf("description %q", record.Description)
	}
}

func TestParseCourseDetailMalformedHeading(t *testing.T) {
	html := `<div id="courseDetailDialog"><h1>Special Topics</h1></div>`
	if _, err := ParseCourseDetail(html, "CS", "1"); err == nil {
		t.Fatal("expected error for heading without catalog number")
	}
}

func TestParseCourseDetailNoDescription(t *testing.T) {
	html := `<div id="courseDetailDialog"><h1>X 1101 - Title</h1></div>`
	record, err := ParseCourseDetail(html, "CS", "1")
	if err != nil {
		t.Fatal(err)
	}
	if record.Description != "" {
		t.Fatalf("description should be empty, got %q", record.Description)
	}
	if record.TermOffered != "" {
		t.Fatalf("terms should be empty, got %q", record.TermOffered)
	}
}

type fakeCatalogFetcher struct {
	searches map[string]string
	details  map[string]string
}

func (f *fakeCatalogFetcher) SearchCourses(_ context.Context, keywords string) (string, error) {
	body, ok := f.searches[keywords]
	if !ok {
		return "", fmt.Errorf("search failed for %q", keywords)
	}
	return body, nil
}

func (f *fakeCatalogFetcher) CourseDetail(_ context.Context, courseID, _ string) (string, error) {
	body, ok := f.details[courseID]
	if !ok {
		return "", fmt.Errorf("detail failed for %s", courseID)
	}
	return body, nil
}

func TestCatalogScraperFiltersByVerificationCode(t *testing.T) {
	fetch := &fakeCatalogFetcher{
		searches: map[string]string{
			"Computer Science": searchResultsHTML,
			"Mathematics":      "<html>No courses found.</html>",
		},
		details: map[string]string{"11111": courseDetailHTML},
	}

	cfg, _ := config.Load()
	subjects := []mappings.SubjectEntry{
		{Name: "Computer Science", Code: "CS"},
		{Name: "Mathematics", Code: "MATH"},
		{Name: "Physics", Code: "PHYS"}, // search fails, subject skipped
	}

	var got []internal.CourseRecord
	scraper := NewCatalogScraper(cfg, fetch, subjects)
	total, err := scraper.Run(context.Background(), func(r internal.CourseRecord) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// The MATH and codeless candidates from the CS search are dropped, the
	// MATH search hits the no-results marker, the PHYS search fails; only
	// the one CS course survives.
	if total != 1 || len(got) != 1 {
		t.Fatalf("total=%d len=%d", total, len(got))
	}
	if got[0].CourseID != "11111" || got[0].Subject != "CS" {
		t.Fatalf("record: %+v", got[0])
	}
}

func TestCatalogScraperSinkErrorIsFatal(t *testing.T) {
	fetch := &fakeCatalogFetcher{
		searches: map[string]string{"Computer Science": searchResultsHTML},
		details:  map[string]string{"11111": courseDetailHTML},
	}

	cfg, _ := config.Load()
	scraper := NewCatalogScraper(cfg, fetch, []mappings.SubjectEntry{{Name: "Computer Science", Code: "CS"}})
	_, err := scraper.Run(context.Background(), func(internal.CourseRecord) error {
		return fmt.Errorf("disk full")
	})
	if err == nil {
		t.Fatal("sink errors must abort the run")
	}
}
