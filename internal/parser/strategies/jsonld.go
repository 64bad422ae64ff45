package strategies

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobtrail-utils/pkg/utils"
)

// ldJobPosting holds the fields pulled out of a schema.org JobPosting node.
type ldJobPosting struct {
	Title    string
	Company  string
	Location string
	Salary   string
}

// extractJobPostingLD scans every JSON-LD script block for a JobPosting
// node, descending through arrays and @graph containers.
func extractJobPostingLD(doc *goquery.Document) *ldJobPosting {
	var found *ldJobPosting
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}
		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return true
		}
		if node := findJobPostingNode(payload); node != nil {
			found = ldFieldsFrom(node)
			return false
		}
		return true
	})
	return found
}

// findJobPostingNode walks a decoded JSON value depth-first looking for a
// node whose @type is (or contains) JobPosting. JSON cannot contain
// cycles, so the document's own depth bounds the recursion.
func findJobPostingNode(v any) map[string]any {
	switch node := v.(type) {
	case map[string]any:
		if ldTypeIs(node["@type"], "JobPosting") {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			if found := findJobPostingNode(graph); found != nil {
				return found
			}
		}
	case []any:
		for _, item := range node {
			if found := findJobPostingNode(item); found != nil {
				return found
			}
		}
	}
	return nil
}

func ldTypeIs(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func ldFieldsFrom(node map[string]any) *ldJobPosting {
	posting := &ldJobPosting{}

	if title, ok := node["title"].(string); ok {
		posting.Title = utils.CleanText(title)
	}

	if org, ok := node["hiringOrganization"].(map[string]any); ok {
		if name, ok := org["name"].(string); ok {
			posting.Company = utils.CleanText(name)
		}
	}

	posting.Location = ldLocation(node["jobLocation"])
	posting.Salary = ldSalary(node["baseSalary"])

	return posting
}

// ldLocation joins addressLocality and addressRegion of the first usable
// jobLocation entry.
func ldLocation(v any) string {
	var place map[string]any
	switch loc := v.(type) {
	case map[string]any:
		place = loc
	case []any:
		for _, item := range loc {
			if m, ok := item.(map[string]any); ok {
				place = m
				break
			}
		}
	}
	if place == nil {
		return ""
	}

	address, ok := place["address"].(map[string]any)
	if !ok {
		return ""
	}

	var parts []string
	if locality, ok := address["addressLocality"].(string); ok && strings.TrimSpace(locality) != "" {
		parts = append(parts, utils.CleanText(locality))
	}
	if region, ok := address["addressRegion"].(string); ok && strings.TrimSpace(region) != "" {
		parts = append(parts, utils.CleanText(region))
	}
	return strings.Join(parts, ", ")
}

// ldSalary renders the three baseSalary shapes the boards emit: a min/max
// range, a single value object, or a bare number/string value. Output is a
// $-prefixed string with the unit suffix defaulting to "per year".
func ldSalary(v any) string {
	salary, ok := v.(map[string]any)
	if !ok {
		return ""
	}

	unit := "per year"

	switch value := salary["value"].(type) {
	case map[string]any:
		if u, ok := value["unitText"].(string); ok && u != "" {
			unit = salaryUnit(u)
		}
		minVal, hasMin := ldNumber(value["minValue"])
		maxVal, hasMax := ldNumber(value["maxValue"])
		if hasMin && hasMax {
			return fmt.Sprintf("$%s - $%s %s", minVal, maxVal, unit)
		}
		if single, ok := ldNumber(value["value"]); ok {
			return fmt.Sprintf("$%s %s", single, unit)
		}
	case float64:
		return fmt.Sprintf("$%s %s", formatNumber(value), unit)
	case string:
		if strings.TrimSpace(value) != "" {
			return fmt.Sprintf("$%s %s", utils.CleanText(value), unit)
		}
	}
	return ""
}

func ldNumber(v any) (string, bool) {
	switch n := v.(type) {
	case float64:
		return formatNumber(n), true
	case string:
		if strings.TrimSpace(n) != "" {
			return utils.CleanText(n), true
		}
	}
	return "", false
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func salaryUnit(unitText string) string {
	switch strings.ToUpper(strings.TrimSpace(unitText)) {
	case "HOUR":
		return "per hour"
	case "DAY":
		return "per day"
	case "WEEK":
		return "per week"
	case "MONTH":
		return "per month"
	default:
		return "per year"
	}
}
