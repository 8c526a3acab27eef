package mappings

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractSubjectOptions reads the portal's subject multi-select widget from a
// locally saved HTML document. Each option is an input tag carrying the full
// subject name in its title attribute and the short code in its value.
func ExtractSubjectOptions(r io.Reader) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	doc.Find("div.multiSelectOptionContainer").Each(func(_ int, container *goquery.Selection) {
		input := container.Find("input.multiSelectOption").First()
		title, hasTitle := input.Attr("title")
		value, hasValue := input.Attr("value")
		if hasTitle && hasValue && title != "" && value != "" {
			out[title] = value
		}
	})

	return out, nil
}

// WriteSubjectTable serializes a name-to-code table as Go source, sorted by
// name so regeneration is diff-stable.
func WriteSubjectTable(w io.Writer, table map[string]string) error {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("package mappings\n\n")
	b.WriteString("// Generated from the portal subject multi-select. Do not edit by hand.\n")
	b.WriteString("var subjectMap = map[string]string{\n")
	for _, name := range names {
		fmt.Fprintf(&b, "\t%q: %q,\n", name, table[name])
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
