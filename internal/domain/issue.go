package domain

import (
	"fmt"
	"strings"
	"time"
)

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "Open"
	IssueStatusResolved IssueStatus = "Resolved"
)

// ParseIssueStatus matches a status case-insensitively.
func ParseIssueStatus(raw string) (IssueStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open":
		return IssueStatusOpen, true
	case "resolved":
		return IssueStatusResolved, true
	}
	return "", false
}

// IssueUrgency enumerates how urgent the submitter considers the issue.
type IssueUrgency string

const (
	IssueUrgencyLow    IssueUrgency = "Low"
	IssueUrgencyMedium IssueUrgency = "Medium"
	IssueUrgencyHigh   IssueUrgency = "High"
)

// ParseIssueUrgency matches an urgency case-insensitively.
func ParseIssueUrgency(raw string) (IssueUrgency, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return IssueUrgencyLow, true
	case "medium":
		return IssueUrgencyMedium, true
	case "high":
		return IssueUrgencyHigh, true
	}
	return "", false
}

// TimestampLayout is the creation time format stored in the Timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Issue is a support ticket raised by an intern.
type Issue struct {
	ID          string
	Name        string
	Email       string
	College     string
	Title       string
	Description string
	Urgency     IssueUrgency
	Status      IssueStatus
	Timestamp   string
	ResolvedBy  string
	Response    string
}

// Resolve marks the issue resolved. ResolvedBy and Response always change together.
func (i *Issue) Resolve(resolvedBy, response string) {
	i.Status = IssueStatusResolved
	i.ResolvedBy = resolvedBy
	i.Response = response
}

// IssueID derives an identifier from t with microsecond precision: YYYYMMDDhhmmssffffff.
func IssueID(t time.Time) string {
	return t.Format("20060102150405") + fmt.Sprintf("%06d", t.Nanosecond()/int(time.Microsecond))
}

// IssueStats are the global counters shown to every signed-in user.
type IssueStats struct {
	Total    int
	Resolved int
	Open     int
}

// ResolverCount is one bar of the resolved-per-tech-lead chart.
type ResolverCount struct {
	ResolvedBy string
	Count      int
}
