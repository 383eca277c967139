// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Person: a member of the group, keyed by name, with a net balance
//   - Transaction: one recorded expense, split among beneficiaries
//   - Split: how a transaction's amount is divided (equal, shares, exact)
//   - Settlement: a computed payment instruction, never stored
//   - Snapshot: the unit a storage backend loads and saves
//
// # Sign convention
//
// A positive balance means the person is owed money, a negative balance means
// the person owes money. Across the whole roster balances always sum to zero.
//
// # Design Principles
//
// 1. **Names are keys**: people have no separate ID; transactions reference them by name
// 2. **Append-only history**: transactions are never edited once recorded
// 3. **Avoid circular references**: relationships are expressed with name strings, not pointers
package models
