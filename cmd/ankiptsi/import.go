package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cermp/anki-ptsi/internal/ankiconnect"
	"github.com/cermp/anki-ptsi/internal/datasync"
)

// DuplicateScopeFlag is the --duplicate-scope value.
type DuplicateScopeFlag string

func (f *DuplicateScopeFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

func (f *DuplicateScopeFlag) Set(value string) error {
	switch ankiconnect.DuplicateScope(value) {
	case ankiconnect.DuplicateScopeDeck, ankiconnect.DuplicateScopeCollection:
		*f = DuplicateScopeFlag(value)
		return nil
	default:
		return fmt.Errorf("invalid duplicate scope: %s. Valid values are: %s, %s",
			value, ankiconnect.DuplicateScopeDeck, ankiconnect.DuplicateScopeCollection)
	}
}

func (f *DuplicateScopeFlag) Type() string {
	return "DuplicateScopeFlag"
}

var _ pflag.Value = (*DuplicateScopeFlag)(nil)

func newImportCommand() *cobra.Command {
	var decks []string
	var modelName string
	duplicateScope := DuplicateScopeFlag(ankiconnect.DuplicateScopeDeck)

	command := &cobra.Command{
		Use:   "import",
		Short: "Import the repository deck files and their media into Anki",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := datasync.NewSelection(decks...)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			if modelName == "" {
				modelName = cfg.Anki.ModelName
			}

			client := newAnkiClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			importer := datasync.NewImporter(client, datasync.ImporterOptions{
				DecksDirectory: cfg.Repository.DecksDirectory,
				MediaDirectory: cfg.Repository.MediaDirectory,
				Format:         interchangeFormat(cfg),
				SearchDepth:    cfg.Media.SearchDepth,
				ModelName:      modelName,
				DuplicateScope: ankiconnect.DuplicateScope(duplicateScope),
			})
			summary, err := importer.Run(cmd.Context(), selection)
			if err != nil {
				return runFailed(cmd.OutOrStdout(), "Import", summary, fmt.Errorf("importer.Run() > %w", err))
			}
			if err := writeSummary(cmd.OutOrStdout(), "Import", summary); err != nil {
				return err
			}
			return summaryError(summary)
		},
	}
	command.Flags().StringSliceVarP(&decks, "deck", "d", nil, "Only process decks matching these glob patterns (case-insensitive)")
	command.Flags().StringVar(&modelName, "model", "", "Note model to add the cards with (defaults to anki.model_name)")
	command.Flags().Var(&duplicateScope, "duplicate-scope", "Where Anki looks for duplicates: deck or collection")
	return command
}
