package main

import (
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/diana0617/beauty-control-api/infrastructure/database/migrations"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/config"
)

var (
	dsnFlag   string
	stepsFlag int
	seedFlag  string
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("Falha ao executar comando")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Migrações e dados iniciais do banco",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "string de conexão; padrão vem das variáveis DATABASE_*")

	up := &cobra.Command{
		Use:   "up",
		Short: "Aplica as migrações pendentes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			return migrations.Up(conn.DB)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Desfaz migrações",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			logrus.WithField("steps", stepsFlag).Warn("Desfazendo migrações")
			return migrations.Down(conn.DB, stepsFlag)
		},
	}
	down.Flags().IntVar(&stepsFlag, "steps", 1, "quantidade de migrações a desfazer")

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Grava permissões, padrões por papel e templates de regra",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := defaultSeeds
			if seedFlag != "" {
				custom, err := os.ReadFile(seedFlag)
				if err != nil {
					return err
				}
				data = custom
			}

			seedData, err := loadSeed(data)
			if err != nil {
				return err
			}

			conn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			result, err := applySeed(
				cmd.Context(),
				repository.NewPermissionRepository(conn),
				repository.NewRuleRepository(conn),
				seedData,
			)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"permissions":       result.Permissions,
				"roles":             result.Roles,
				"templates_created": result.TemplatesCreated,
				"templates_skipped": result.TemplatesSkipped,
			}).Info("Seed concluído")
			return nil
		},
	}
	seed.Flags().StringVar(&seedFlag, "file", "", "arquivo YAML alternativo ao seed embutido")

	files := &cobra.Command{
		Use:   "files",
		Short: "Lista as migrações embutidas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := fs.ReadDir(migrations.Files(), "sql")
			if err != nil {
				return err
			}
			for _, entry := range entries {
				cmd.Println(entry.Name())
			}
			return nil
		},
	}

	root.AddCommand(up, down, seed, files)
	return root
}

func connect(ctx context.Context) (*postgres.Connection, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	dbConfig := config.Database{DSN: dsnFlag}
	if dbConfig.DSN == "" {
		cfg, err := config.NewConfig()
		if err != nil {
			return nil, err
		}
		dbConfig = cfg.Database
	}

	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		return nil, err
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn, nil
}
