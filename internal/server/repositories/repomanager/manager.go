// Package repomanager wires repositories to a database handle and runs
// schema migrations. Repositories are produced per-DBTX so services can bind
// them either to the pool or to an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"studentdesk/internal/dbx"
	"studentdesk/internal/server/repositories/audit"
	"studentdesk/internal/server/repositories/requests"
	"studentdesk/internal/server/repositories/sessions"
	"studentdesk/internal/server/repositories/students"
	"studentdesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Students(db dbx.DBTX) students.Repository
	Requests(db dbx.DBTX) requests.Repository
	Audit(db dbx.DBTX) audit.Repository
}
