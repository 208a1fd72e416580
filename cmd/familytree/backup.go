package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/familytree/internal/backup"
	"github.com/dukerupert/familytree/internal/database"
	"github.com/dukerupert/familytree/internal/gallery"
)

func newBackupCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the database to object storage",
		Long: "Snapshot the database and upload it under FAMILYTREE_BACKUP_PREFIX in the " +
			"configured bucket. The snapshot is encrypted when FAMILYTREE_BACKUP_PASSPHRASE is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			res, err := backup.Run(cmd.Context(), db, gallery.NewPhotoStore(cfg.BackupS3()), cfg.BackupPassphrase, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%d bytes, encrypted=%t)\n", res.Key, res.Size, res.Encrypted)
			return nil
		},
	}
}

func newDecryptBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt-backup IN OUT",
		Short: "Decrypt a downloaded backup with FAMILYTREE_BACKUP_PASSPHRASE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase := os.Getenv("FAMILYTREE_BACKUP_PASSPHRASE")
			if passphrase == "" {
				return fmt.Errorf("FAMILYTREE_BACKUP_PASSPHRASE is not set")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			plain, err := backup.Open(data, passphrase)
			if err != nil {
				return err
			}
			return os.WriteFile(args[1], plain, 0600)
		},
	}
}
