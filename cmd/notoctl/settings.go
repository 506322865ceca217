package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"noto/internal/noto/app"
)

func newSettingsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and write named settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all named settings with their current values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				values, err := c.settings.List(cmd.Context())
				if err != nil {
					return err
				}
				if c.asJSON {
					return writeJSON(cmd.OutOrStdout(), values)
				}
				return writeTable(cmd.OutOrStdout(), values)
			},
		},
		&cobra.Command{
			Use:   "get [name]",
			Short: "Print the value of a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := c.settings.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if c.asJSON {
					return writeJSON(cmd.OutOrStdout(), value)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), formatValue(value.Value))
				return err
			},
		},
		&cobra.Command{
			Use:   "set [name] [value]",
			Short: "Validate and store a setting value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.settings.Set(cmd.Context(), args[0], args[1])
			},
		},
	)
	return cmd
}

func writeTable(w io.Writer, values []app.NamedValue) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, v := range values {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", v.Name, formatValue(v.Value)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatValue печатает строки без кавычек, а отсутствующие значения как пустую строку.
func formatValue(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}
