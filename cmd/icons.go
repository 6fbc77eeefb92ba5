package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var iconDir string

func init() {
	iconsCmd.Flags().StringVar(&iconDir, "dir", "", "icon directory (defaults to ICON_DIR)")
}

var iconsCmd = &cobra.Command{
	Use:   "icons SYMBOL...",
	Short: "Download coin icons that are not on disk yet",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		dir := iconDir
		if dir == "" {
			dir = s.cfg.IconDir
		}

		icons := s.gecko.FetchIcons(cmd.Context(), args, dir)

		for _, symbol := range args {
			path, ok := icons[symbol]
			if !ok {
				continue
			}
			delete(icons, symbol)

			if path == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tno icon\n", symbol)
				continue
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", symbol, path)
		}

		return nil
	},
}
