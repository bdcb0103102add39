// Package moredecimal changes the number of decimal places used to store the
// quantity of a security in a ledger.
//
// A security quantity is stored as an integer at the security's scale: with 2
// decimal places the integer 12345 means 123.45 shares. Changing the scale
// means rewriting every split transaction of every account that holds the
// security, without altering the real-world quantity.
//
// The change happens in two phases:
//   - Validation: every affected transaction, and the running balance at its
//     date, is rescaled in exact decimal arithmetic. A single remainder aborts
//     the whole change and nothing is staged.
//   - Commit: the security's new scale and every staged quantity are written
//     back to the ledger.
//
// A Session drives both phases and narrates what it checked through a
// Reporter. The Book type is an in-memory ledger with JSONL persistence; the
// sqlstore package persists the same model in SQLite.
package moredecimal
