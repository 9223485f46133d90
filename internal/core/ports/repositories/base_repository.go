package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
//
// The transaction travels in the context handed to fn; repository calls made
// with that context join it. A nested WithinTx call joins the enclosing
// transaction instead of opening a new one, so the outermost caller decides
// when to commit. Returning an error from fn rolls everything back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
