// Package models defines the core domain models for tabsplit.
//
// # Models
//
//   - Bill: one uploaded receipt and its lifecycle (editing, active, complete)
//   - BillItem: a priced line item, claimed as an indivisible unit
//   - Participant: someone splitting the bill; the creator is a Participant with IsCreator set
//   - ItemClaim: one participant's claim on one item
//
// There are no user accounts. Access is granted by bearer tokens stored on
// Bill (creator and share tokens) and Participant (participant token).
//
// # Design Principles
//
//  1. Bill is the root: items, participants and claims belong to exactly one bill
//  2. Relationships use ID strings rather than pointers
//  3. Money is shopspring/decimal at full precision; rounding happens only for display
package models
