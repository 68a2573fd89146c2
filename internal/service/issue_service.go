package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/domain"
	"github.com/resolvehub/issue-desk/internal/events"
	"github.com/resolvehub/issue-desk/internal/repository"
	"github.com/resolvehub/issue-desk/internal/schema"
	apperrors "github.com/resolvehub/issue-desk/pkg/util"
)

// IssueService coordinates issue submission and triage.
type IssueService struct {
	issues     repository.IssueRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	idMu   sync.Mutex
	lastAt time.Time
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	IssueRepo  repository.IssueRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// SubmitIssueInput describes the intern submission form.
type SubmitIssueInput struct {
	Name        string
	Email       string
	College     string
	Title       string
	Description string
	Urgency     string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &IssueService{
		issues:     deps.IssueRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clock,
	}
}

// Submit records a new open issue on behalf of an intern.
func (s *IssueService) Submit(ctx context.Context, session auth.Session, input SubmitIssueInput) (*domain.Issue, error) {
	if err := requireIntern(session); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"name":        strings.TrimSpace(input.Name),
		"email":       strings.TrimSpace(input.Email),
		"college":     strings.TrimSpace(input.College),
		"title":       strings.TrimSpace(input.Title),
		"description": strings.TrimSpace(input.Description),
		"urgency":     strings.TrimSpace(input.Urgency),
	}
	if missing := missingFields(fields, "name", "email", "college", "title", "description", "urgency"); len(missing) > 0 {
		return nil, apperrors.NewValidationError("please fill in all fields", map[string]any{"missing": missing})
	}
	if !domain.ValidEmail(fields["email"]) {
		return nil, apperrors.NewValidationError("email must end with "+domain.EmailSuffix, map[string]any{"email": fields["email"]})
	}
	urgency, ok := domain.ParseIssueUrgency(fields["urgency"])
	if !ok {
		return nil, apperrors.NewValidationError("urgency must be Low, Medium or High", map[string]any{"urgency": fields["urgency"]})
	}

	createdAt := s.nextCreatedAt()
	issue := &domain.Issue{
		ID:          domain.IssueID(createdAt),
		Name:        fields["name"],
		Email:       fields["email"],
		College:     fields["college"],
		Title:       fields["title"],
		Description: fields["description"],
		Urgency:     urgency,
		Status:      domain.IssueStatusOpen,
		Timestamp:   createdAt.Format(domain.TimestampLayout),
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, mapRepoError(err, "issue", map[string]any{"id": issue.ID})
	}

	s.logger.Info("issue submitted",
		zap.String("id", issue.ID),
		zap.String("submitted_by", session.Email),
		zap.String("urgency", string(issue.Urgency)))
	s.publishEvent(ctx, events.NewEvent(events.EventIssueCreated, issue.ID, sessionActor(session), events.IssueCreatedPayload{
		Title:   issue.Title,
		Urgency: issue.Urgency,
		College: issue.College,
	}))
	return issue, nil
}

// List returns issues in submission order, optionally filtered by status.
func (s *IssueService) List(ctx context.Context, session auth.Session, status *domain.IssueStatus) ([]domain.Issue, error) {
	if err := requireTechLead(session); err != nil {
		return nil, err
	}
	issues, err := s.issues.List(ctx, repository.IssueFilter{Status: status})
	if err != nil {
		return nil, mapRepoError(err, "issue", nil)
	}
	return issues, nil
}

// Get returns a single issue.
func (s *IssueService) Get(ctx context.Context, session auth.Session, id string) (*domain.Issue, error) {
	if err := requireTechLead(session); err != nil {
		return nil, err
	}
	issue, err := s.issues.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapRepoError(err, "issue", map[string]any{"id": id})
	}
	return issue, nil
}

// Resolve marks an issue resolved. An unknown id is not an error: it is logged
// and reported as (nil, false, nil). Resolving twice overwrites the first answer.
func (s *IssueService) Resolve(ctx context.Context, session auth.Session, id, resolvedBy, response string) (*domain.Issue, bool, error) {
	if err := requireTechLead(session); err != nil {
		return nil, false, err
	}

	id = strings.TrimSpace(id)
	resolvedBy = strings.TrimSpace(resolvedBy)
	if resolvedBy == "" {
		return nil, false, apperrors.NewValidationError("enter your email to resolve the issue", map[string]any{"missing": []string{"resolved_by"}})
	}

	resolved, err := s.issues.Resolve(ctx, id, resolvedBy, response)
	if err != nil {
		return nil, false, mapRepoError(err, "issue", map[string]any{"id": id})
	}
	if !resolved {
		s.logger.Warn("resolve ignored: issue not found", zap.String("id", id), zap.String("resolved_by", resolvedBy))
		return nil, false, nil
	}

	issue, err := s.issues.GetByID(ctx, id)
	if err != nil {
		return nil, false, mapRepoError(err, "issue", map[string]any{"id": id})
	}

	s.logger.Info("issue resolved", zap.String("id", id), zap.String("resolved_by", resolvedBy))
	s.publishEvent(ctx, events.NewEvent(events.EventIssueResolved, id, sessionActor(session), events.IssueResolvedPayload{
		ResolvedBy:      resolvedBy,
		ResponsePreview: preview(response, 80),
	}))
	return issue, true, nil
}

// Stats returns the global counters visible to any signed-in user.
func (s *IssueService) Stats(ctx context.Context, session auth.Session) (domain.IssueStats, error) {
	if err := requireAuthenticated(session); err != nil {
		return domain.IssueStats{}, err
	}
	issues, err := s.issues.List(ctx, repository.IssueFilter{})
	if err != nil {
		return domain.IssueStats{}, mapRepoError(err, "issue", nil)
	}

	stats := domain.IssueStats{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Status {
		case domain.IssueStatusResolved:
			stats.Resolved++
		case domain.IssueStatusOpen:
			stats.Open++
		}
	}
	return stats, nil
}

// ResolverCounts counts resolved issues per resolver, most first.
func (s *IssueService) ResolverCounts(ctx context.Context, session auth.Session) ([]domain.ResolverCount, error) {
	if err := requireTechLead(session); err != nil {
		return nil, err
	}
	resolved := domain.IssueStatusResolved
	issues, err := s.issues.List(ctx, repository.IssueFilter{Status: &resolved})
	if err != nil {
		return nil, mapRepoError(err, "issue", nil)
	}

	// Rows migrated from the legacy layout carry no resolver and are not charted.
	counts := make(map[string]int)
	for _, issue := range issues {
		if strings.TrimSpace(issue.ResolvedBy) == "" {
			continue
		}
		counts[issue.ResolvedBy]++
	}
	result := make([]domain.ResolverCount, 0, len(counts))
	for by, count := range counts {
		result = append(result, domain.ResolverCount{ResolvedBy: by, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].ResolvedBy < result[j].ResolvedBy
	})
	return result, nil
}

// Export writes every issue as canonical CSV.
func (s *IssueService) Export(ctx context.Context, session auth.Session, w io.Writer) error {
	if err := requireTechLead(session); err != nil {
		return err
	}
	issues, err := s.issues.List(ctx, repository.IssueFilter{})
	if err != nil {
		return mapRepoError(err, "issue", nil)
	}
	if err := schema.WriteTable(w, schema.IssueTable(issues)); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// nextCreatedAt returns the current time at microsecond precision, bumped past
// the previous value so ids derived from it stay unique within the process.
func (s *IssueService) nextCreatedAt() time.Time {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	at := s.now().Truncate(time.Microsecond)
	if !at.After(s.lastAt) {
		at = s.lastAt.Add(time.Microsecond)
	}
	s.lastAt = at
	return at
}

func (s *IssueService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func sessionActor(session auth.Session) events.Actor {
	return events.Actor{Email: session.Email, Role: session.Role()}
}

func preview(text string, limit int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
