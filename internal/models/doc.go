// Package models defines the core domain models for the poker ledger.
//
// # Models
//
//   - Group: an ownership group with role-based memberships
//   - Membership: a user's role inside one group
//   - Table: a physical game session owned by a group
//   - Player: a per-table seat with its buy-in and cash-out history
//   - BuyIn / CashOut: append-only ledger events
//   - PlayerAlias: links a player name to a registered user for statistics
//   - User: a registered account
//
// # Design Principles
//
// 1. **Derived money**: totals are computed from the event history, never stored
// 2. **Cents everywhere**: all money fields are integer cents (see ledger.Amount)
// 3. **Avoid circular references**: relationships use ID strings instead of pointers
// 4. **Per-table players**: the same human is a distinct Player on every table
package models
