package main

import (
	"fmt"

	"github.com/rgonek/richtext-styles/editor"
	"github.com/spf13/cobra"
)

type applyFlags struct {
	selFrom int
	selTo   int
	dryRun  bool
}

func newApplyCmd(global *globalFlags) *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <file> <command> [args...]",
		Short: "Run a style command over a selection and print the document",
		Long: `Loads the document, selects [--sel-from, --sel-to) (the whole document by
default) and runs a registered command such as setLineHeight or unsetFontSize.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(global.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ed, inputFormat, err := newEditor(global, args[0], logger)
			if err != nil {
				return err
			}
			outputFormat, err := resolveOutputFormat(global.to, inputFormat)
			if err != nil {
				return err
			}

			selection := resolveSelection(cmd, flags, ed.State().Doc.ContentSize())
			if err := ed.SetSelection(selection); err != nil {
				return err
			}

			name, commandArgs := args[1], args[2:]
			if flags.dryRun {
				ok, err := ed.CanExec(name, commandArgs...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: applicable=%t\n", name, ok)
				return nil
			}

			ok, err := ed.Exec(name, commandArgs...)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("command %q did not apply", name)
			}

			out, err := encodeDocument(ed.Schema(), outputFormat, ed.State().Doc)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.selFrom, "sel-from", 0, "Selection start position")
	cmd.Flags().IntVar(&flags.selTo, "sel-to", -1, "Selection end position (default: end of document)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Only report whether the command would apply")
	return cmd
}

func resolveSelection(cmd *cobra.Command, flags *applyFlags, size int) editor.Selection {
	selection := editor.Selection{From: 0, To: size}
	if cmd.Flags().Changed("sel-from") {
		selection.From = flags.selFrom
	}
	if cmd.Flags().Changed("sel-to") && flags.selTo >= 0 {
		selection.To = flags.selTo
	}
	return selection
}
