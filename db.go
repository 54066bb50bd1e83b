package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/muhammadolammi/resumeascode/internal/database"
	"github.com/muhammadolammi/resumeascode/internal/database/migrations"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "History database management commands",
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show history database migration status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		p := present(cmd)

		runner, closeDB, err := openMigrationRunner(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		applied, err := runner.AppliedVersions(ctx)
		if err != nil {
			return err
		}
		done := make(map[int64]bool, len(applied))
		for _, v := range applied {
			done[v] = true
		}

		all := migrations.All()
		rows := make([][]string, 0, len(all))
		for _, m := range all {
			state := "pending"
			if done[m.Version] {
				state = "applied"
			}
			rows = append(rows, []string{strconv.FormatInt(m.Version, 10), m.Description, state})
		}
		p.Dim("Database: " + databaseURL())
		p.Table("Migrations", []string{"Version", "Description", "Status"}, rows)
		p.Info("Applied: " + strconv.Itoa(len(applied)) + "/" + strconv.Itoa(len(all)) + " migrations")
		return nil
	},
}

var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the most recent history database migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		p := present(cmd)

		runner, closeDB, err := openMigrationRunner(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		applied, err := runner.AppliedVersions(ctx)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			p.Warning("No migrations to roll back")
			return nil
		}
		last := applied[len(applied)-1]

		if err := runner.Rollback(ctx, migrations.All()); err != nil {
			return errors.Wrap(err, "failed to roll back migration")
		}
		p.Success("Rolled back migration " + strconv.FormatInt(last, 10))
		return nil
	},
}

// openMigrationRunner opens the history database without migrating it.
func openMigrationRunner(cmd *cobra.Command) (*database.MigrationRunner, func(), error) {
	db, err := database.Open(cmd.Context(), databaseURL())
	if err != nil {
		return nil, nil, err
	}
	return database.NewMigrationRunner(db), func() { db.Close() }, nil
}

func init() {
	dbCmd.AddCommand(dbStatusCmd, dbRollbackCmd)
}
