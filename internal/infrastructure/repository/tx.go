package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/DWRSH/point-of-sale/internal/domain/repository"
)

type txKey struct{}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the shared gorm handle
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// WithinTx opens one database transaction and threads it through the context
// passed to fn. Every repository call made with that context joins the
// transaction; any error from fn rolls the whole thing back.
func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFor resolves the connection for a repository call: the transaction from
// the context when one is in flight, otherwise the base handle.
func dbFor(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return base.WithContext(ctx)
}
