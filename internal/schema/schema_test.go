package schema

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolvehub/issue-desk/internal/domain"
)

func readCSV(t *testing.T, raw string) Table {
	t.Helper()
	table, err := ReadTable(strings.NewReader(raw))
	require.NoError(t, err)
	return table
}

func TestNormalize_RenamesLegacyTitle(t *testing.T) {
	table := readCSV(t, "ID,Name,Issue,Status\n1,Alice,Login fails,Open\n")

	assert.Equal(t, IssueVersionLegacy, Issues.DetectVersion(table))

	normalized := Issues.Normalize(table)
	require.Equal(t, Issues.Columns, normalized.Header)
	require.Len(t, normalized.Rows, 1)

	issue := IssueFromRow(normalized.Rows[0])
	assert.Equal(t, "Login fails", issue.Title)
	assert.Equal(t, "Alice", issue.Name)
	assert.Equal(t, domain.IssueStatusOpen, issue.Status)
	assert.Empty(t, issue.Response)
}

func TestNormalize_RenamesLegacyResponse(t *testing.T) {
	table := readCSV(t, "ID,Title,Status,TechLeadResponse\n7,Broken build,Resolved,Rebased\n")

	normalized := Issues.Normalize(table)
	issue := IssueFromRow(normalized.Rows[0])
	assert.Equal(t, "Rebased", issue.Response)
	assert.Equal(t, "Broken build", issue.Title)
}

func TestNormalize_KeepsCurrentColumnOverLegacy(t *testing.T) {
	table := readCSV(t, "ID,Issue,Title\n1,old,new\n")

	assert.Equal(t, IssueVersionCurrent, Issues.DetectVersion(table))
	issue := IssueFromRow(Issues.Normalize(table).Rows[0])
	assert.Equal(t, "new", issue.Title)
}

func TestNormalize_BackfillsAndDropsExtras(t *testing.T) {
	table := readCSV(t, "Extra,Name,ID\nx,Bob,42\n")

	normalized := Issues.Normalize(table)
	require.Equal(t, Issues.Columns, normalized.Header)
	assert.Equal(t, []string{"42", "Bob", "", "", "", "", "", "", "", "", ""}, normalized.Rows[0])
}

func TestNormalize_Idempotent(t *testing.T) {
	table := readCSV(t, "Issue,TechLeadResponse,Name,Junk\nA,B,C,D\nE,F,G,H\n")

	once := Issues.Normalize(table)
	twice := Issues.Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	table := readCSV(t, "Issue\nA\n")

	_ = Issues.Normalize(table)
	assert.Equal(t, []string{"Issue"}, table.Header)
	assert.Equal(t, [][]string{{"A"}}, table.Rows)
}

func TestNormalize_EmptyTable(t *testing.T) {
	normalized := Issues.Normalize(Table{})
	assert.Equal(t, Issues.Columns, normalized.Header)
	assert.Empty(t, normalized.Rows)
}

func TestReadTable_PadsShortRowsAndStripsBOM(t *testing.T) {
	table := readCSV(t, "\ufeffemail,password,role\na@gmail.com,pw\n")

	require.Equal(t, []string{"email", "password", "role"}, table.Header)
	assert.Equal(t, []string{"a@gmail.com", "pw", ""}, table.Rows[0])
}

func TestWriteTable_RoundTripsQuotedCells(t *testing.T) {
	issue := domain.Issue{
		ID:          "20250101120000000001",
		Name:        "Alice",
		Description: "line one\nline \"two\", with comma",
		Urgency:     domain.IssueUrgencyHigh,
		Status:      domain.IssueStatusOpen,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, IssueTable([]domain.Issue{issue})))

	decoded, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, []domain.Issue{issue}, IssuesFromTable(decoded))
}

func TestAccountsFromTable(t *testing.T) {
	table := readCSV(t, "role,email,password\nTech Lead,lead@gmail.com,secret\n")

	accounts := AccountsFromTable(table)
	require.Len(t, accounts, 1)
	assert.Equal(t, domain.Account{Email: "lead@gmail.com", Password: "secret", Role: domain.RoleTechLead}, accounts[0])
}
