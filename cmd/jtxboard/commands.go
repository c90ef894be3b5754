package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/SergeyKozhin/jtx-board/internal/api"
	"github.com/SergeyKozhin/jtx-board/internal/config"
	"github.com/SergeyKozhin/jtx-board/internal/pkg/jwt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := mustLogger()

		a, err := newApp(cmd.Context(), logger)
		if err != nil {
			return err
		}

		handler := api.NewApi(
			logger,
			config.Location(),
			jwt.NewManager(config.Secret(), config.TokenTTL()),
			a.list,
			a.objects,
			a.recurrence,
			a.relations,
			a.locker,
		)

		errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
		if err != nil {
			return fmt.Errorf("error initiating server logger: %w", err)
		}

		server := &http.Server{
			Addr:     ":" + config.Port(),
			Handler:  handler,
			ErrorLog: errLogger,
		}

		if interval := config.SweepInterval(); interval > 0 {
			go a.sweeper(interval).Start(cmd.Context())
		}

		logger.Infow("Started server", "port", config.Port(), "driver", config.DBDriver())
		return server.ListenAndServe()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and the local collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := mustLogger()

		if _, err := openDB(cmd.Context()); err != nil {
			return err
		}

		logger.Infow("Database migrated", "driver", config.DBDriver())
		return nil
	},
}

var reconcileAll bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [origin-id]",
	Short: "Materialize the instances of recurring objects",
	Args: func(cmd *cobra.Command, args []string) error {
		if reconcileAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := mustLogger()

		a, err := newApp(cmd.Context(), logger)
		if err != nil {
			return err
		}

		if reconcileAll {
			stats := a.sweeper(0).Sweep(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "origins %d, changed %d, failed %d\n", stats.Origins, stats.Changed, stats.Failed)
			if stats.Failed != 0 {
				return fmt.Errorf("%d origins failed", stats.Failed)
			}
			return nil
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid origin id %q", args[0])
		}

		unlock, err := a.locker.Lock(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("lock origin: %w", err)
		}
		defer unlock()

		res, err := a.recurrence.Reconcile(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %d, updated %d, deleted %d, unchanged %d, exceptions %d\n",
			res.Created, res.Updated, res.Deleted, res.Unchanged, res.Exceptions)
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileAll, "all", false, "reconcile every origin")
}

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue an API token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := jwt.NewManager(config.Secret(), config.TokenTTL()).CreateToken(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

