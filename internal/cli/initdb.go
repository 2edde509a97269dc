package cli

import (
	"fmt"

	"logistics/db/migrations"

	"github.com/spf13/cobra"
)

func NewInitDBCommand(rootOpts *RootOptions) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the database tables",
		Long: `Create the user, location, request and bid tables.

With --reset the tables are dropped first and all data is lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			if reset {
				if err := migrations.Reset(e.store.DB(), e.cfg.DB.Driver); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Initialized the database")
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop and re-create all tables")
	return cmd
}
