package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIndexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Regenerate the deck listing, the download page and the sitemap from the published packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			unlock, err := acquireLock(cfg.Repository.LockFile)
			if err != nil {
				return err
			}
			defer unlock()

			listing, err := newSite(cfg).Index()
			if err != nil {
				return fmt.Errorf("site.Index() > %w", err)
			}

			rows := make([][]string, 0, listing.Total())
			for _, subject := range listing.Subjects() {
				for _, entry := range listing[subject] {
					rows = append(rows, []string{subject, entry.Name, entry.Size, entry.Date})
				}
			}
			if len(rows) > 0 {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), formatTable(listingColumns, rows)); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d decks in %d subjects\n", listing.Total(), len(listing))
			return err
		},
	}
}
