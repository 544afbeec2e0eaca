package migrate

import (
	"github.com/spf13/cobra"

	"github.com/banahub/bayshore-backend-go/log"
	"github.com/banahub/bayshore-backend-go/pkg/config"
	"github.com/banahub/bayshore-backend-go/pkg/db/migrate"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "migrates the database to the current schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateDB()
		},
	}
	return cmd
}

func migrateDB() error {
	log.Info("Migrating database")
	if err := migrate.MigrateDB(config.DB); err != nil {
		log.Error("migration failed", log.ErrorField(err))
		return err
	}
	log.Info("Database migrated")
	return nil
}
