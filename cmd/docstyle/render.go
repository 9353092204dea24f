package main

import (
	"fmt"

	"github.com/rgonek/richtext-styles/editor"
	"github.com/spf13/cobra"
)

func newRenderCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Convert a document between formats without changing it",
		Args:  cobra.ExactArgs(1),
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

			out, err := encodeDocument(ed.Schema(), outputFormat, ed.State().Doc)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newCommandsCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands registered by the configured extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exts, err := loadExtensions(global.configPath)
			if err != nil {
				return err
			}

			ed, err := editor.New(editor.Config{}, exts...)
			if err != nil {
				return fmt.Errorf("invalid editor config: %w", err)
			}
			for _, name := range ed.Commands() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
