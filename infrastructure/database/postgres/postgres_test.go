package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diana0617/beauty-control-api/internal/config"
)

func TestConnection_RunInTransaction(t *testing.T) {
	t.Run("Confirma a transação quando a função termina sem erro", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		conn := &Connection{DB: db}
		err = conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
			_, err := tx.Exec("UPDATE products SET stock = 1")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Desfaz a transação quando a função falha", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		fnErr := errors.New("estoque insuficiente")
		conn := &Connection{DB: db}
		err = conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
			return fnErr
		})

		assert.ErrorIs(t, err, fnErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConfigurePool(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	configurePool(db, config.Database{MaxOpenConns: 7})

	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
}
