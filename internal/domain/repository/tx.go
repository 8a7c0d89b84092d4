package repository

import "context"

// TxManager runs a function inside a single storage transaction. The
// transaction travels in the context passed to fn, so every repository call
// made with that context joins the same transaction; if fn returns an error
// every write made inside it is rolled back.
//
// The orchestrating services (sale, return, due payment) wrap each operation
// in exactly one WithinTx call, which is what makes their multi-record
// updates commit-or-abort as a unit.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
