package model

// ComplianceStatus is the overall outcome of a compliance check.
type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "compliant"
	StatusNonCompliant ComplianceStatus = "non_compliant"
	StatusPartial      ComplianceStatus = "partial"
)

// Violation is a single guideline breach found in a document.
type Violation struct {
	LineNumber *int   `json:"line_number,omitempty"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Severity   string `json:"severity"` // low, medium, high
	Category   string `json:"category"` // grammar, style, clarity, structure, ...
}

// ComplianceReport is the aggregate result of checking a document against
// guidelines. It is built fresh per request and never persisted.
type ComplianceReport struct {
	Status      ComplianceStatus `json:"status"`
	Score       float64          `json:"score"` // 0-100
	TotalIssues int              `json:"total_issues"`
	Violations  []Violation      `json:"violations"`
	Summary     string           `json:"summary"`
	Suggestions []string         `json:"suggestions"`
}

// ModificationResult is the agent-level outcome of a rewrite request.
// ChangesMade is the size of the symmetric difference between the lowercased
// word sets of the original and modified text, capped at 100. It is a coarse
// lexical metric, not an edit distance.
type ModificationResult struct {
	ModifiedText string `json:"modified_text"`
	Summary      string `json:"summary"`
	ChangesMade  int    `json:"changes_made"`
}

// CheckComplianceRequest is the body for POST /api/v1/check-compliance.
// Guidelines are optional; the agent's default set is used when omitted.
type CheckComplianceRequest struct {
	DocumentID string   `json:"document_id" validate:"required,uuid4"`
	Guidelines []string `json:"guidelines,omitempty"`
}

// CheckComplianceResponse pairs the checked document with its report.
type CheckComplianceResponse struct {
	DocumentID string            `json:"document_id"`
	Report     *ComplianceReport `json:"report"`
}

// ModifyRequest is the body for POST /api/v1/modify.
type ModifyRequest struct {
	DocumentID string   `json:"document_id" validate:"required,uuid4"`
	Guidelines []string `json:"guidelines,omitempty"`
}

// ModificationResponse describes the newly materialized document.
type ModificationResponse struct {
	DocumentID         string `json:"document_id"`
	ModifiedDocumentID string `json:"modified_document_id"`
	DownloadURL        string `json:"download_url"`
	ChangesMade        int    `json:"changes_made"`
	Summary            string `json:"summary"`
}
