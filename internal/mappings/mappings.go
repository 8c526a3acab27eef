// Package mappings holds the static label-to-code tables used to normalize
// the free-text labels the portal renders into the short codes the output
// tables carry.
package mappings

import "sort"

type Category string

const (
	School    Category = "school"
	Career    Category = "career"
	Component Category = "component"
	Subject   Category = "subject"
	Attribute Category = "attribute"
)

var tables = map[Category]map[string]string{
	School:    schoolMap,
	Career:    careerMap,
	Component: componentMap,
	Subject:   subjectMap,
	Attribute: attributeMap,
}

// Lookup resolves a label to its short code. Exact, case-sensitive match
// only; an unknown label or category yields ("", false), never an error.
func Lookup(category Category, label string) (string, bool) {
	table, ok := tables[category]
	if !ok {
		return "", false
	}
	code, ok := table[label]
	return code, ok
}

// LookupPtr is Lookup for nullable record fields: unknown labels map to nil.
func LookupPtr(category Category, label string) *string {
	code, ok := Lookup(category, label)
	if !ok {
		return nil
	}
	return &code
}

type SubjectEntry struct {
	Name string
	Code string
}

// SubjectList returns the subject table as (full name, short code) pairs
// sorted by name, so a catalog scan always walks subjects in the same order.
func SubjectList() []SubjectEntry {
	out := make([]SubjectEntry, 0, len(subjectMap))
	for name, code := range subjectMap {
		out = append(out, SubjectEntry{Name: name, Code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
