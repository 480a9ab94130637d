// Package migration cria o esquema usado pelos repositórios
package migration

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
)

// Statements executados em ordem dentro de uma única transação
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS sales_datasets (
		id           VARCHAR(6)   PRIMARY KEY,
		name         VARCHAR(255) NOT NULL DEFAULT '',
		source       VARCHAR(16)  NOT NULL,
		warning      TEXT         NOT NULL DEFAULT '',
		dropped_rows INTEGER      NOT NULL DEFAULT 0,
		record_count INTEGER      NOT NULL DEFAULT 0,
		records      JSONB        NOT NULL DEFAULT '[]'::jsonb,
		created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_datasets_created_at ON sales_datasets (created_at DESC)`,
}

func Migrate(ctx context.Context, conn postgres.Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return errors.Wrapf(err, "migration: erro no passo %d", i+1)
			}
		}

		logrus.WithField("steps", len(Statements)).Info("migration: esquema atualizado")
		return nil
	})
}
