package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cermp/anki-ptsi/internal/datasync"
)

func newExportCommand() *cobra.Command {
	var decks []string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export decks from Anki into the repository deck files and media folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := datasync.NewSelection(decks...)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			unlock, err := acquireLock(cfg.Repository.LockFile)
			if err != nil {
				return err
			}
			defer unlock()

			client := newAnkiClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			exporter := datasync.NewExporter(client, datasync.ExporterOptions{
				DecksDirectory:        cfg.Repository.DecksDirectory,
				MediaDirectory:        cfg.Repository.MediaDirectory,
				PrivateMediaDirectory: cfg.Anki.MediaDirectory,
				Format:                interchangeFormat(cfg),
			})
			summary, err := exporter.Run(cmd.Context(), selection)
			if err != nil {
				return runFailed(cmd.OutOrStdout(), "Export", summary, fmt.Errorf("exporter.Run() > %w", err))
			}
			if err := writeSummary(cmd.OutOrStdout(), "Export", summary); err != nil {
				return err
			}
			return summaryError(summary)
		},
	}
	command.Flags().StringSliceVarP(&decks, "deck", "d", nil, "Only process decks matching these glob patterns (case-insensitive)")
	return command
}
