// Package schema reconciles historical flat-file layouts into the current column set.
//
// Every table has a version detected from its column signature. Normalize applies
// the migration registered for each version below the current one, then backfills
// missing columns with empty strings and projects to the canonical order. Normalize
// is idempotent, so it runs on every read and files never need an offline migration.
package schema

// Version identifies a column layout.
type Version int

// Migration upgrades a table from one version to the next in place.
type Migration func(t *Table)

// Schema describes a flat table: its canonical columns and how to reach them.
type Schema struct {
	Name       string
	Columns    []string
	Current    Version
	detect     func(t Table) Version
	migrations map[Version]Migration
}

// DetectVersion classifies t by its header.
func (s *Schema) DetectVersion(t Table) Version {
	if s.detect == nil {
		return s.Current
	}
	return s.detect(t)
}

// Normalize returns a copy of t upgraded to the current version and projected to
// exactly the canonical columns.
func (s *Schema) Normalize(t Table) Table {
	out := t.Clone()
	for v := s.DetectVersion(out); v < s.Current; v++ {
		if migrate, ok := s.migrations[v]; ok {
			migrate(&out)
		}
	}
	for _, column := range s.Columns {
		if !out.Has(column) {
			out.AddColumn(column)
		}
	}
	return out.Project(s.Columns)
}

// Empty returns a table with only the canonical header.
func (s *Schema) Empty() Table {
	return Table{Header: append([]string(nil), s.Columns...)}
}

const (
	IssueVersionLegacy  Version = 1
	IssueVersionCurrent Version = 2
)

// Issue columns in canonical order.
const (
	ColID          = "ID"
	ColName        = "Name"
	ColEmail       = "Email"
	ColCollege     = "College"
	ColTitle       = "Title"
	ColDescription = "Description"
	ColUrgency     = "Urgency"
	ColStatus      = "Status"
	ColTimestamp   = "Timestamp"
	ColResolvedBy  = "ResolvedBy"
	ColResponse    = "Response"

	legacyColTitle    = "Issue"
	legacyColResponse = "TechLeadResponse"
)

// Issues is the schema of issues.csv.
var Issues = &Schema{
	Name: "issues",
	Columns: []string{
		ColID, ColName, ColEmail, ColCollege, ColTitle, ColDescription,
		ColUrgency, ColStatus, ColTimestamp, ColResolvedBy, ColResponse,
	},
	Current: IssueVersionCurrent,
	detect:  detectIssueVersion,
	migrations: map[Version]Migration{
		IssueVersionLegacy: migrateLegacyIssueColumns,
	},
}

func detectIssueVersion(t Table) Version {
	if (t.Has(legacyColTitle) && !t.Has(ColTitle)) ||
		(t.Has(legacyColResponse) && !t.Has(ColResponse)) {
		return IssueVersionLegacy
	}
	return IssueVersionCurrent
}

func migrateLegacyIssueColumns(t *Table) {
	if !t.Has(ColTitle) {
		t.Rename(legacyColTitle, ColTitle)
	}
	if !t.Has(ColResponse) {
		t.Rename(legacyColResponse, ColResponse)
	}
}

// Account columns.
const (
	ColAccountEmail    = "email"
	ColAccountPassword = "password"
	ColAccountRole     = "role"
)

// Accounts is the schema of users.csv. It has a single version.
var Accounts = &Schema{
	Name:    "accounts",
	Columns: []string{ColAccountEmail, ColAccountPassword, ColAccountRole},
	Current: 1,
}
