package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// Organization is the owner of journals, accounts and entries.
// It is created outside this service and only read here.
type Organization struct {
	ID    uuid.UUID
	Label string
}

// FallbackOrganizations labels org ids discovered in ledger data when no
// organization table rows exist.
func FallbackOrganizations(ids []uuid.UUID) []Organization {
	orgs := make([]Organization, 0, len(ids))
	for i, id := range ids {
		orgs = append(orgs, Organization{
			ID:    id,
			Label: fmt.Sprintf("Organization %d - %s", i+1, id.String()[:8]),
		})
	}
	return orgs
}

// Journal is an org-scoped book identified by a short code such as "BQ"
type Journal struct {
	ID    uuid.UUID
	OrgID uuid.UUID
	Code  string
	Name  string
}

// Account is an org-scoped ledger account
type Account struct {
	ID    uuid.UUID
	OrgID uuid.UUID
	Code  string
	Name  string
}

// Class returns the statement class of the account
func (a *Account) Class() AccountClass {
	return ClassifyAccount(a.Code)
}
