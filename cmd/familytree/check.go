package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/familytree/internal/database"
	"github.com/dukerupert/familytree/internal/familykey"
	"github.com/dukerupert/familytree/internal/store"
)

func newCheckCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the family registry and migrate the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			registry, err := loadRegistry(cfg, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "registry: %d members in %d generations\n", registry.Len(), len(registry.Generations()))
			for _, issue := range registry.Issues() {
				fmt.Fprintf(out, "  warning: %s\n", issue.Error())
			}

			db, err := database.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			version, err := database.Version(cmd.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "database: %s at version %d\n", cfg.DBPath, version)

			profiles, err := store.NewProfileStore(db).List()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "profiles: %d registered\n", len(profiles))

			if _, err := familykey.New(cfg.FamilyKey, cfg.FamilyKeyHash); err != nil {
				fmt.Fprintf(out, "  warning: %v\n", err)
			}
			return nil
		},
	}
}

func newHashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key KEY",
		Short: "Print a bcrypt hash of KEY for FAMILY_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := familykey.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}
