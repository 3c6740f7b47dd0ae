package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dhlf/dhcf-backend/internal/db"
	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/seed"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	rootCmd := &cobra.Command{
		Use:           "dhcfctl",
		Short:         "Catalog maintenance for the competency framework database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newSeedCmd(log), newRemapCmd(log))

	if err := rootCmd.Execute(); err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func newSeedCmd(log *logger.Logger) *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Clear and reload the catalog from CSV exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbService, err := db.New(log)
			if err != nil {
				return fmt.Errorf("database init: %w", err)
			}
			if err := dbService.AutoMigrateAll(); err != nil {
				return fmt.Errorf("auto migration: %w", err)
			}
			if err := seed.Load(context.Background(), dbService.DB(), log, dataDir); err != nil {
				return err
			}
			log.Info("Seeding completed", "data_dir", dataDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "data", "directory holding the catalog CSV files")
	return cmd
}

func newRemapCmd(log *logger.Logger) *cobra.Command {
	var oldDir, newDir string
	cmd := &cobra.Command{
		Use:   "remap",
		Short: "Re-key an old role_competencies.csv onto a regenerated catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := seed.Remap(log, oldDir, newDir)
			if err != nil {
				return err
			}
			log.Info("Remapping completed",
				"remapped", result.Remapped,
				"skipped", result.Skipped,
				"output", result.Output)
			return nil
		},
	}
	cmd.Flags().StringVar(&oldDir, "old", "", "directory holding the old catalog CSV files")
	cmd.Flags().StringVar(&newDir, "new", "", "directory holding the new catalog CSV files")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}
