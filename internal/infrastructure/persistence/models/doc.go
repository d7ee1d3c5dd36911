// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain types so the domain stays free of ORM
// tags; each model carries ToDomain and a FromDomain constructor.
//
// Structure:
//   - base.go: BaseModel shared by append-only ledger records
//   - accounting.go: organizations, journals, accounts, entries, lines
//   - blockchain.go: networks, tokens, transactions, links, period anchors
package models
