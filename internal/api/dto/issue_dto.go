package dto

import "github.com/resolvehub/issue-desk/internal/domain"

// SubmitIssueRequest payload for the intern submission form.
type SubmitIssueRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	College     string `json:"college"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
}

// ResolveIssueRequest payload.
type ResolveIssueRequest struct {
	ResolvedBy string `json:"resolved_by"`
	Response   string `json:"response"`
}

// IssueResponse is one row of the aggregate table.
type IssueResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	College     string              `json:"college"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Urgency     domain.IssueUrgency `json:"urgency"`
	Status      domain.IssueStatus  `json:"status"`
	Timestamp   string              `json:"timestamp"`
	ResolvedBy  string              `json:"resolved_by"`
	Response    string              `json:"response"`
}

// NewIssueResponse maps an issue for output.
func NewIssueResponse(issue domain.Issue) IssueResponse {
	return IssueResponse{
		ID:          issue.ID,
		Name:        issue.Name,
		Email:       issue.Email,
		College:     issue.College,
		Title:       issue.Title,
		Description: issue.Description,
		Urgency:     issue.Urgency,
		Status:      issue.Status,
		Timestamp:   issue.Timestamp,
		ResolvedBy:  issue.ResolvedBy,
		Response:    issue.Response,
	}
}

// NewIssueResponses maps a listing, never returning nil.
func NewIssueResponses(issues []domain.Issue) []IssueResponse {
	items := make([]IssueResponse, 0, len(issues))
	for _, issue := range issues {
		items = append(items, NewIssueResponse(issue))
	}
	return items
}

// StatsResponse holds the global counters.
type StatsResponse struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Open     int `json:"open"`
}

// ResolverCountResponse is one bar of the per-resolver chart.
type ResolverCountResponse struct {
	ResolvedBy string `json:"resolved_by"`
	Count      int    `json:"count"`
}
