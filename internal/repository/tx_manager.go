package repository

import (
	"context"

	"gorm.io/gorm"
)

type contextKey struct{}

var txKey contextKey

// TransactionManager runs a unit of work inside one database transaction.
// The report service uses it to keep the generated-report row and its
// audit entry atomic. Repositories pick the transaction up from the
// context via GetDB, so nested calls share it transparently.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

// RunInTx opens a transaction, stores it on the context and invokes fn.
// A non-nil error from fn rolls everything back.
func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		// Already inside a transaction; join it.
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// GetDB returns the transaction bound to ctx when there is one, the root
// handle otherwise. Every repository query goes through this.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
