package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"noto/internal/noto/domain/entities"
)

func newWidgetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Inspect and remove home screen widget settings",
	}

	var libraryID int64
	show := &cobra.Command{
		Use:   "show [widget-id]",
		Short: "Print widget settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			widgetID, err := parseWidgetID(args[0])
			if err != nil {
				return err
			}
			w, err := c.settings.LoadWidget(cmd.Context(), widgetID, libraryID)
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), w)
			}
			return writeWidget(cmd, w)
		},
	}
	show.Flags().Int64Var(&libraryID, "library", 0, "library id for selected labels")

	remove := &cobra.Command{
		Use:   "remove [widget-id]",
		Short: "Remove every setting of a widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			widgetID, err := parseWidgetID(args[0])
			if err != nil {
				return err
			}
			return c.settings.RemoveWidget(cmd.Context(), widgetID)
		},
	}

	cmd.AddCommand(show, remove)
	return cmd
}

func parseWidgetID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid widget id %q", raw)
	}
	return id, nil
}

func writeWidget(cmd *cobra.Command, w entities.WidgetSettings) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(),
		"widget %d\ncreated: %t\nheader: %t\nedit button: %t\napp icon: %t\nnew item button: %t\nnotes count: %t\nradius: %d\nlibrary: %d\nlabels: %v\n",
		w.WidgetID, w.IsCreated, w.IsHeaderEnabled, w.IsEditButtonEnabled, w.IsAppIconEnabled,
		w.IsNewItemButtonEnabled, w.IsNotesCountEnabled, w.Radius, w.LibraryID, w.SelectedLabelIDs)
	return err
}
