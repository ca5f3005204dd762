// Package models defines the core domain types for SplitPay.
//
// # Models
//
//   - User: a registered account, identified by email
//   - Member: a user as seen inside a group (ID + display name)
//   - Group: a named set of members sharing expenses
//   - Expense: a payment made by one member with a share assigned to each
//     beneficiary; a recorded settlement is an Expense tagged Settlement=true
//   - Share: one member's owed portion of an expense
//   - Transfer: a suggested payment that moves balances toward zero
//   - ManualReport: a saved run of the manual calculator
//
// # Design principles
//
//  1. Relationships are plain ID strings, never pointers, to avoid cycles.
//  2. Settlements are first-class: an is_settlement tag on the expense rather
//     than a magic description string.
//  3. The payer reference tolerates both a bare ID and a denormalized object
//     carrying the ID (see PayerRef); everything downstream of the JSON
//     boundary works on plain IDs.
package models
