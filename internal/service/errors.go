package service

import (
	"errors"

	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/repository"
	apperrors "github.com/resolvehub/issue-desk/pkg/util"
)

func mapRepoError(err error, resource string, details map[string]any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, details)
	case errors.Is(err, repository.ErrAlreadyExists):
		return apperrors.NewConflict(resource+" already exists", details)
	}
	return apperrors.NewInternalError(err)
}

func requireAuthenticated(session auth.Session) error {
	if !session.Authenticated() {
		return apperrors.NewUnauthorized("login required")
	}
	return nil
}

func requireIntern(session auth.Session) error {
	if err := requireAuthenticated(session); err != nil {
		return err
	}
	if !session.CanSubmitIssues() {
		return apperrors.NewForbidden("only developer interns can submit issues")
	}
	return nil
}

func requireTechLead(session auth.Session) error {
	if err := requireAuthenticated(session); err != nil {
		return err
	}
	if !session.CanTriageIssues() {
		return apperrors.NewForbidden("only tech leads can triage issues")
	}
	return nil
}

// missingFields returns the names whose values are blank.
func missingFields(fields map[string]string, order ...string) []string {
	var missing []string
	for _, name := range order {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
