package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/internal/storage/postgres"
)

func newPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List pools, optionally snapshotting them into Postgres",
		RunE:  runPools,
	}

	addCommonFlags(cmd)
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for pool snapshots")
	cmd.Flags().Bool("migrate", false, "create snapshot tables before writing")
	cmd.Flags().Bool("quiet", false, "print only the pool count")

	return cmd
}

func runPools(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signalContext()
	defer stop()

	pools, err := a.api.Pools(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("pools loaded", zap.Int("count", len(pools)), zap.String("api", a.cfg.APIBase))

	if a.cfg.PgDSN != "" {
		store, err := postgres.NewStore(ctx, a.cfg.PgDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := store.Migrate(ctx); err != nil {
				return err
			}
		}
		if err := store.InsertPoolSnapshots(ctx, pools); err != nil {
			return fmt.Errorf("insert pool snapshots: %w", err)
		}
		a.logger.Info("pool snapshots stored", zap.Int("count", len(pools)))
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), len(pools))
		return err
	}
	return printJSON(cmd, pools)
}
