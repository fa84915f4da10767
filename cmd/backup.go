/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/copyforge/apiserver/config"
	"github.com/copyforge/apiserver/internal/db"
	"github.com/copyforge/apiserver/internal/services"
	"github.com/copyforge/apiserver/internal/storage"
	"github.com/copyforge/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// backupCmd represents the backup command.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot all collections to the configured object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		ctx := cmd.Context()

		backupService, err := buildBackup(ctx, cfg)
		if err != nil {
			return err
		}

		prefix, err := backupService.Run(ctx)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Printf("backup written under %s\n", prefix)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func buildBackup(ctx context.Context, cfg config.Config) (*services.BackupService, error) {
	var backend storage.ObjectStorage
	switch cfg.Storage.Backend {
	case config.StorageBackendMinio:
		client, err := storage.NewMinioClient(cfg.Storage.Minio)
		if err != nil {
			return nil, err
		}
		backend = client
	case config.StorageBackendGCS:
		client, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
		if err != nil {
			return nil, err
		}
		backend = client
	default:
		return nil, errors.New("STORAGE_BACKEND must be minio or gcs for backup")
	}

	var (
		accounts      services.AccountRepository
		content       services.ContentRepository
		subscriptions services.SubscriptionRepository
	)
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		dbConn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		accounts = store.NewPGAccountRepository(dbConn)
		content = store.NewPGContentRepository(dbConn)
		subscriptions = store.NewPGSubscriptionRepository(dbConn)
	default:
		var err error
		if accounts, err = store.NewFileAccountRepository(cfg.DataDir); err != nil {
			return nil, err
		}
		if content, err = store.NewFileContentRepository(cfg.DataDir); err != nil {
			return nil, err
		}
		if subscriptions, err = store.NewFileSubscriptionRepository(cfg.DataDir); err != nil {
			return nil, err
		}
	}

	return services.NewBackupService(storage.NewStorage(backend), accounts, content, subscriptions), nil
}
