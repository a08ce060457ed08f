package legacy

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	ulPattern      = regexp.MustCompile(`(?is)<ul\b[^>]*>(.*?)</ul>`)
	liPattern      = regexp.MustCompile(`(?is)<li\b[^>]*>(.*?)</li>`)
	h2Pattern      = regexp.MustCompile(`(?is)<h2\b[^>]*>(.*?)</h2>`)
	pPattern       = regexp.MustCompile(`(?is)<p\b[^>]*>(.*?)</p>`)
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
	spacePattern   = regexp.MustCompile(`\s+`)
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	prepHeading    = regexp.MustCompile(`(?i)preparation|zubereitung|préparation`)
	sectionEnd     = regexp.MustCompile(`(?i)<h2|</body>`)
	ingredientLine = regexp.MustCompile(`(?is)^(\d+(?:[.,]\d+)?)\s*(?:(g|kg|ml|l|tsp|tbsp|cups|cup|pieces|piece|pinch|bunch)\s+)?(.+)$`)
)

// IngredientLine is a free-text ingredient split into its parts. Quantity
// and Unit are empty when the line does not start with a number.
type IngredientLine struct {
	Quantity string
	Unit     string
	Name     string
}

// Amount parses Quantity, nil when absent or not a number.
func (l IngredientLine) Amount() *decimal.Decimal {
	return ParseQuantity(l.Quantity)
}

func stripTags(s, repl string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, repl))
}

// ExtractIngredients returns the text of every list item in every <ul>,
// dropping empty items and items carrying links.
func ExtractIngredients(content string) []string {
	var items []string
	for _, ul := range ulPattern.FindAllStringSubmatch(content, -1) {
		for _, li := range liPattern.FindAllStringSubmatch(ul[1], -1) {
			text := strings.TrimSpace(stripTags(li[1], ""))
			if text == "" || strings.Contains(text, "amzn.to") || strings.Contains(text, "http") {
				continue
			}
			items = append(items, text)
		}
	}
	return items
}

// ExtractSteps returns the paragraphs following the first preparation
// heading, up to the next <h2>. Paragraphs of 10 characters or less are
// dropped.
func ExtractSteps(content string) []string {
	var section string
	for _, loc := range h2Pattern.FindAllStringSubmatchIndex(content, -1) {
		heading := content[loc[2]:loc[3]]
		if !prepHeading.MatchString(stripTags(heading, "")) {
			continue
		}
		section = content[loc[1]:]
		if end := sectionEnd.FindStringIndex(section); end != nil {
			section = section[:end[0]]
		}
		break
	}
	if section == "" {
		return nil
	}

	var steps []string
	for _, p := range pPattern.FindAllStringSubmatch(section, -1) {
		text := strings.TrimSpace(spacePattern.ReplaceAllString(stripTags(p[1], " "), " "))
		if utf8.RuneCountInString(text) > 10 {
			steps = append(steps, text)
		}
	}
	return steps
}

// ParseIngredientLine splits "200 g Mehl" into quantity, unit and name.
// A unit only counts when whitespace follows it, so "3 Eier" keeps its
// name whole. Lines without a leading number are all name.
func ParseIngredientLine(line string) IngredientLine {
	line = strings.TrimSpace(urlPattern.ReplaceAllString(line, ""))

	m := ingredientLine.FindStringSubmatch(line)
	if m == nil {
		return IngredientLine{Name: line}
	}
	return IngredientLine{
		Quantity: strings.TrimSpace(m[1]),
		Unit:     strings.TrimSpace(m[2]),
		Name:     strings.TrimSpace(m[3]),
	}
}

// ParseQuantity reads a decimal that may use a comma separator.
func ParseQuantity(q string) *decimal.Decimal {
	q = strings.TrimSpace(strings.ReplaceAll(q, ",", "."))
	if q == "" {
		return nil
	}
	d, err := decimal.NewFromString(q)
	if err != nil {
		return nil
	}
	return &d
}

// headings returns the text of every <h2> in content.
func headings(content string) []string {
	var out []string
	for _, m := range h2Pattern.FindAllStringSubmatch(content, -1) {
		out = append(out, strings.TrimSpace(stripTags(m[1], "")))
	}
	return out
}
