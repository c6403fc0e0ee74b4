package server

import "github.com/tmarchev/beacon/internal/model"

// StartAuditRequest is the payload for both the synchronous and the job
// audit endpoints.
type StartAuditRequest struct {
	URL   string `json:"url" example:"https://example.com"`
	Depth int    `json:"depth" example:"1"`
}

// ErrorResponse is a uniform error payload returned by the API. Success is
// always false.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error" example:"not found"`
}

// AuditSummary groups the site-wide issue and content figures inside an
// AuditResponse.
type AuditSummary struct {
	CriticalIssues         int                   `json:"critical_issues"`
	ImportantIssues        int                   `json:"important_issues"`
	SuggestedImprovements  int                   `json:"suggested_improvements"`
	AccessibilityBreakdown model.TierBreakdown   `json:"accessibility_breakdown"`
	ContentAnalysis        model.ContentAnalysis `json:"content_analysis"`
}

// AuditResponse is the synchronous audit result. Partial failures show up as
// a reduced total_pages plus a non-zero errors count, never as success=false.
type AuditResponse struct {
	Success     bool               `json:"success"`
	AuditID     string             `json:"audit_id"`
	SiteScore   int                `json:"site_score"`
	TotalPages  int                `json:"total_pages"`
	Errors      int                `json:"errors"`
	Summary     AuditSummary       `json:"summary"`
	Pages       []model.PageRecord `json:"pages"`
	DownloadURL string             `json:"download_url"`
}

func newAuditResponse(r *model.SiteReport) AuditResponse {
	return AuditResponse{
		Success:    true,
		AuditID:    r.ID,
		SiteScore:  r.SiteScore,
		TotalPages: len(r.Pages),
		Errors:     len(r.Failures),
		Summary: AuditSummary{
			CriticalIssues:         r.Issues.Critical,
			ImportantIssues:        r.Issues.Important,
			SuggestedImprovements:  r.Issues.Suggested,
			AccessibilityBreakdown: r.Accessibility,
			ContentAnalysis:        r.ContentAnalysis,
		},
		Pages:       r.Pages,
		DownloadURL: "/audits/" + r.ID + "/download",
	}
}
