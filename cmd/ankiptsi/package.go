package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cermp/anki-ptsi/internal/apkg"
	"github.com/cermp/anki-ptsi/internal/catalog"
	"github.com/cermp/anki-ptsi/internal/config"
	"github.com/cermp/anki-ptsi/internal/datasync"
)

func newPackageCommand() *cobra.Command {
	var decks []string
	var noIndex bool

	command := &cobra.Command{
		Use:   "package",
		Short: "Build .apkg packages and previews from the repository deck files",
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

			packager := datasync.NewPackager(apkg.NewWriter(packageModel(cfg)), datasync.PackagerOptions{
				DecksDirectory:        cfg.Repository.DecksDirectory,
				MediaDirectory:        cfg.Repository.MediaDirectory,
				PackagesDirectory:     cfg.Outputs.PackagesDirectory,
				PreviewsDirectory:     cfg.Outputs.PreviewsDirectory,
				PreviewMediaDirectory: cfg.Outputs.MediaDirectory,
				Format:                interchangeFormat(cfg),
				SearchDepth:           cfg.Media.SearchDepth,
			})
			summary, err := packager.Run(cmd.Context(), selection)
			if err != nil {
				return runFailed(cmd.OutOrStdout(), "Package", summary, fmt.Errorf("packager.Run() > %w", err))
			}
			if err := writeSummary(cmd.OutOrStdout(), "Package", summary); err != nil {
				return err
			}

			if !noIndex {
				listing, err := newSite(cfg).Index()
				if err != nil {
					return fmt.Errorf("site.Index() > %w", err)
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d decks in %d subjects\n",
					listing.Total(), len(listing)); err != nil {
					return err
				}
			}
			return summaryError(summary)
		},
	}
	command.Flags().StringSliceVarP(&decks, "deck", "d", nil, "Only process decks matching these glob patterns (case-insensitive)")
	command.Flags().BoolVar(&noIndex, "no-index", false, "Do not regenerate the deck listing, page and sitemap")
	return command
}

func packageModel(cfg *config.Config) apkg.Model {
	return apkg.Model{
		ID:           cfg.Packages.ModelID,
		Name:         cfg.Packages.ModelName,
		Fields:       cfg.Packages.FieldNames,
		TemplateName: apkg.DefaultModel.TemplateName,
	}
}

func newSite(cfg *config.Config) catalog.Site {
	return catalog.Site{
		PackagesDir:  cfg.Outputs.PackagesDirectory,
		BaseURL:      cfg.Site.BaseURL,
		TemplatePath: cfg.Site.Template,
	}
}
