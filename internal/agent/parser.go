package agent

import (
	"encoding/json"
	"strings"

	"complyapi/internal/model"
)

const (
	modifiedMarker = "MODIFIED TEXT:"
	summaryMarker  = "CHANGES SUMMARY:"
)

// wire shapes mirror the JSON the model is asked to produce. Every field is
// optional so a sloppy reply still maps onto a usable report.
type wireViolation struct {
	LineNumber *int   `json:"line_number"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Severity   string `json:"severity"`
	Category   string `json:"category"`
}

type wireReport struct {
	Status      string          `json:"status"`
	Score       *float64        `json:"score"`
	TotalIssues *int            `json:"total_issues"`
	Violations  []wireViolation `json:"violations"`
	Summary     string          `json:"summary"`
	Suggestions []string        `json:"suggestions"`
}

// firstJSONObject scans s for the first balanced top-level JSON object,
// tracking string literals and escapes so braces inside string values do not
// end the scan early.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// parseComplianceReport maps a free-form model reply onto a ComplianceReport,
// filling defaults for missing fields. Any parse failure yields the fixed
// default report instead of an error.
func parseComplianceReport(raw string) *model.ComplianceReport {
	payload := raw
	if obj, ok := firstJSONObject(raw); ok {
		payload = obj
	}

	var wr wireReport
	if err := json.Unmarshal([]byte(payload), &wr); err != nil {
		return defaultReport()
	}

	violations := make([]model.Violation, 0, len(wr.Violations))
	for _, v := range wr.Violations {
		if v.Severity == "" {
			v.Severity = "medium"
		}
		if v.Category == "" {
			v.Category = "general"
		}
		violations = append(violations, model.Violation{
			LineNumber: v.LineNumber,
			Issue:      v.Issue,
			Suggestion: v.Suggestion,
			Severity:   v.Severity,
			Category:   v.Category,
		})
	}

	status := model.ComplianceStatus(wr.Status)
	switch status {
	case model.StatusCompliant, model.StatusNonCompliant, model.StatusPartial:
	default:
		status = model.StatusPartial
	}

	score := 50.0
	if wr.Score != nil {
		score = *wr.Score
	}
	totalIssues := len(violations)
	if wr.TotalIssues != nil {
		totalIssues = *wr.TotalIssues
	}
	summary := wr.Summary
	if summary == "" {
		summary = "Compliance check completed"
	}
	suggestions := wr.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	return &model.ComplianceReport{
		Status:      status,
		Score:       score,
		TotalIssues: totalIssues,
		Violations:  violations,
		Summary:     summary,
		Suggestions: suggestions,
	}
}

func defaultReport() *model.ComplianceReport {
	return &model.ComplianceReport{
		Status:      model.StatusPartial,
		Score:       50,
		TotalIssues: 0,
		Violations:  []model.Violation{},
		Summary:     "Unable to complete full compliance analysis",
		Suggestions: []string{"Please try again or check API configuration"},
	}
}

// parseModificationResult splits a rewrite reply on the literal MODIFIED
// TEXT: / CHANGES SUMMARY: markers. When the markers are absent the whole
// reply is taken as the modified text with a fixed default summary.
// ChangesMade is filled in by the caller.
func parseModificationResult(raw string) *model.ModificationResult {
	modified := strings.TrimSpace(raw)
	summary := "Document modified for compliance"

	if i := strings.Index(raw, modifiedMarker); i >= 0 {
		rest := raw[i+len(modifiedMarker):]
		if j := strings.Index(rest, summaryMarker); j >= 0 {
			modified = strings.TrimSpace(rest[:j])
			summary = strings.TrimSpace(rest[j+len(summaryMarker):])
		} else {
			modified = strings.TrimSpace(rest)
		}
	}

	return &model.ModificationResult{
		ModifiedText: modified,
		Summary:      summary,
	}
}

// countWordChanges is the size of the symmetric difference between the
// lowercased word sets of both texts, capped at 100. A coarse lexical-diff
// metric, not an edit distance: reordering-only edits count as zero and
// punctuation-only edits can over-count.
func countWordChanges(original, modified string) int {
	origWords := wordSet(original)
	modWords := wordSet(modified)

	changes := 0
	for w := range origWords {
		if _, ok := modWords[w]; !ok {
			changes++
		}
	}
	for w := range modWords {
		if _, ok := origWords[w]; !ok {
			changes++
		}
	}
	if changes > 100 {
		changes = 100
	}
	return changes
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}
