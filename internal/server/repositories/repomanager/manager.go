// Package repomanager wires the concrete repositories behind a single
// factory interface, so services can obtain repositories bound to either
// a *sql.DB or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/vkazmin/budgetvault/internal/dbx"
	"github.com/vkazmin/budgetvault/internal/server/repositories/transactions"
	"github.com/vkazmin/budgetvault/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
