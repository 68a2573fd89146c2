package schema

import "github.com/resolvehub/issue-desk/internal/domain"

// IssueFromRow maps a normalized issues row to a domain issue.
func IssueFromRow(row []string) domain.Issue {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return domain.Issue{
		ID:          cell(0),
		Name:        cell(1),
		Email:       cell(2),
		College:     cell(3),
		Title:       cell(4),
		Description: cell(5),
		Urgency:     domain.IssueUrgency(cell(6)),
		Status:      domain.IssueStatus(cell(7)),
		Timestamp:   cell(8),
		ResolvedBy:  cell(9),
		Response:    cell(10),
	}
}

// IssueRow maps an issue to a row in canonical column order.
func IssueRow(issue domain.Issue) []string {
	return []string{
		issue.ID,
		issue.Name,
		issue.Email,
		issue.College,
		issue.Title,
		issue.Description,
		string(issue.Urgency),
		string(issue.Status),
		issue.Timestamp,
		issue.ResolvedBy,
		issue.Response,
	}
}

// IssueTable builds a canonical issues table.
func IssueTable(issues []domain.Issue) Table {
	table := Issues.Empty()
	for _, issue := range issues {
		table.Rows = append(table.Rows, IssueRow(issue))
	}
	return table
}

// IssuesFromTable normalizes t and maps every row.
func IssuesFromTable(t Table) []domain.Issue {
	normalized := Issues.Normalize(t)
	issues := make([]domain.Issue, 0, len(normalized.Rows))
	for _, row := range normalized.Rows {
		issues = append(issues, IssueFromRow(row))
	}
	return issues
}

// AccountFromRow maps a normalized users row to an account.
func AccountFromRow(row []string) domain.Account {
	account := domain.Account{}
	if len(row) > 0 {
		account.Email = row[0]
	}
	if len(row) > 1 {
		account.Password = row[1]
	}
	if len(row) > 2 {
		account.Role = domain.Role(row[2])
	}
	return account
}

// AccountRow maps an account to a users row.
func AccountRow(account domain.Account) []string {
	return []string{account.Email, account.Password, string(account.Role)}
}

// AccountsFromTable normalizes t and maps every row.
func AccountsFromTable(t Table) []domain.Account {
	normalized := Accounts.Normalize(t)
	accounts := make([]domain.Account, 0, len(normalized.Rows))
	for _, row := range normalized.Rows {
		accounts = append(accounts, AccountFromRow(row))
	}
	return accounts
}
