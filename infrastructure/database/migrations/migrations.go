// Package migrations aplica o schema do banco embutido no binário
package migrations

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var files embed.FS

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar migrações embutidas")
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar driver de migração")
	}

	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

// Up aplica todas as migrações pendentes
func Up(db *sql.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "erro ao aplicar migrações")
	}

	version, dirty, _ := m.Version()
	logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migrações aplicadas")

	return nil
}

// Down desfaz a quantidade informada de migrações
func Down(db *sql.DB, steps int) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if steps <= 0 {
		steps = 1
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "erro ao desfazer migrações")
	}

	return nil
}

// Files expõe os arquivos SQL para inspeção em testes e no CLI
func Files() embed.FS {
	return files
}
