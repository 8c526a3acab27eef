package internal

// ClassSectionRecord is one row of the class-section table, built from a
// single section detail page.
type ClassSectionRecord struct {
	ClassNumber   string
	DisplayName   string
	LongTitle     string
	Subject       string
	CatalogNumber string
	SectionNumber string
	SchoolCode    *string
	CareerCode    *string
	ComponentCode *string
	UnitsEarned   *float64
}

// CourseRecord is one row of the course-catalog table, built from a course
// detail page reached through a subject search.
type CourseRecord struct {
	CourseID        string
	Subject         string
	CatalogNumber   string
	DisplayName     string
	LongTitle       string
	SchoolCode      *string
	CareerCode      *string
	ComponentCode   *string
	UnitsEarned     string
	TermOffered     string
	AllRequirements *string
	Corequisites    *string
	Prerequisites   *string
	AntiRequisites  *string
	Attributes      *string
	Description     string
}

// CourseRef is a candidate course pulled from a search-results page before
// the detail fetch. VerificationCode confirms the candidate belongs to the
// subject being scanned; nil when the notification string has no code suffix.
type CourseRef struct {
	CourseID         string
	OfferNumber      string
	Notification     *string
	VerificationCode *string
}
