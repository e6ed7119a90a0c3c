// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free from
// ORM concerns.
//
// Structure:
//   - base.go: base persistence models shared by every aggregate
//   - partner.go: parties (agents and principals)
//   - trade.go: sales orders and their commission fields
//   - finance.go: chart of accounts, invoices and invoice lines
package models
