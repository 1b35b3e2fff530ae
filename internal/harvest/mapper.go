package harvest

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const detailURLFormat = "https://jobs.techstars.com/companies/%s/jobs/%s"

// employeeBands maps the upstream headCount code to a display label.
// Codes outside the map contribute no tag.
var employeeBands = map[int]string{
	1: "1-10 employees",
	2: "11-50 employees",
	3: "51-200 employees",
	4: "201-1000 employees",
	5: "1000-5000 employees",
	6: "5001+ employees",
}

// DetailURL builds the canonical detail-page URL for a job record. It fails
// when the record cannot yield a well-formed URL (missing organization or
// slug), in which case the job is skipped but still counted as processed.
func DetailURL(job Job) (string, error) {
	if job.Organization == nil || job.Organization.Slug == "" {
		return "", fmt.Errorf("job %q has no organization slug", job.Title)
	}
	if job.Slug == "" {
		return "", fmt.Errorf("job %q has no slug", job.Title)
	}
	return fmt.Sprintf(detailURLFormat, job.Organization.Slug, job.Slug), nil
}

// Tags derives the comma-joined descriptive tag string for a summary row:
// industry, organization industry tags, employee band, formatted stage, and
// seniority, in that order, with blank components omitted.
func Tags(industry string, job Job) string {
	var tags []string

	if strings.TrimSpace(industry) != "" {
		tags = append(tags, industry)
	}

	if org := job.Organization; org != nil {
		for _, t := range org.IndustryTags {
			if strings.TrimSpace(t) != "" {
				tags = append(tags, t)
			}
		}
		if band, ok := employeeBands[org.HeadCount]; ok {
			tags = append(tags, band)
		}
		if stage := FormatTag(org.Stage); stage != "" {
			tags = append(tags, stage)
		}
	}

	if strings.TrimSpace(job.Seniority) != "" {
		tags = append(tags, job.Seniority)
	}

	return strings.Join(tags, ", ")
}

// FormatTag turns an upstream snake_case token into a display label: a
// literal "_plus" suffix becomes "+", segments are title-cased and joined
// with single spaces. "series_a_plus" becomes "Series A+".
func FormatTag(tag string) string {
	if strings.TrimSpace(tag) == "" {
		return ""
	}
	tag = strings.ReplaceAll(tag, "_plus", "+")

	var b strings.Builder
	for _, part := range strings.Split(tag, "_") {
		if part == "" {
			continue
		}
		if part == "+" {
			b.WriteString("+")
			continue
		}
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(strings.ToLower(string(runes[1:])))
		b.WriteString(" ")
	}

	result := strings.TrimSpace(b.String())
	return strings.ReplaceAll(result, " +", "+")
}

// MapSummary builds the persisted summary row for one job record.
// countJobs is the total count the search API reported for the query that
// produced this record.
func MapSummary(industry string, job Job, countJobs int) ListingSummary {
	return ListingSummary{
		Industry:  industry,
		URL:       job.URL,
		CountJobs: countJobs,
		Tags:      Tags(industry, job),
	}
}

// MapItem builds the normalized listing item for one job record. Enrichment
// fields stay zero; the job task applies them when the detail fetch succeeds.
func MapItem(job Job, detailURL string) ListingItem {
	item := ListingItem{
		Title:     job.Title,
		URL:       detailURL,
		Locations: strings.Join(job.SearchableLocations, ", "),
	}
	if org := job.Organization; org != nil {
		item.OrganizationName = org.Name
		item.LogoURL = org.LogoURL
	}
	if job.CreatedAt > 0 {
		posted := time.Unix(job.CreatedAt, 0).UTC()
		item.PostedAt = &posted
	}
	return item
}
