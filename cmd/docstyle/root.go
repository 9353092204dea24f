package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgonek/richtext-styles/editor"
	"github.com/rgonek/richtext-styles/extensions"
	"github.com/rgonek/richtext-styles/htmlcodec"
	"github.com/rgonek/richtext-styles/mdimport"
	"github.com/rgonek/richtext-styles/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	formatJSON     = "json"
	formatHTML     = "html"
	formatMarkdown = "markdown"
)

type globalFlags struct {
	configPath string
	verbose    bool
	from       string
	to         string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "docstyle",
		Short:         "Apply style attributes to rich-text documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML file with extension options")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log registration and dispatch details to stderr")
	root.PersistentFlags().StringVar(&flags.from, "from", "", "Input format: json|html|markdown (default: by file extension)")
	root.PersistentFlags().StringVar(&flags.to, "to", "", "Output format: json|html (default: html for html input, json otherwise)")

	root.AddCommand(newApplyCmd(flags))
	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newCommandsCmd(flags))
	return root
}

func resolveInputFormat(format, path string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		return formatJSON, nil
	case formatHTML:
		return formatHTML, nil
	case formatMarkdown, "md":
		return formatMarkdown, nil
	case "":
	default:
		return "", fmt.Errorf("unknown input format %q (allowed: json, html, markdown)", format)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".html", ".htm":
		return formatHTML, nil
	case ".md", ".markdown":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("cannot infer input format of %q; use --from", path)
	}
}

func resolveOutputFormat(format, input string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		return formatJSON, nil
	case formatHTML:
		return formatHTML, nil
	case "":
		if input == formatHTML {
			return formatHTML, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (allowed: json, html)", format)
	}
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.Sugar(), nil
}

func loadExtensions(path string) ([]editor.Extension, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	opts, err := extensions.LoadOptions(data)
	if err != nil {
		return nil, err
	}
	return opts.Build()
}

// newEditor builds an editor with the configured extensions and loads the
// input document into it.
func newEditor(flags *globalFlags, path string, logger *zap.SugaredLogger) (*editor.Editor, string, error) {
	inputFormat, err := resolveInputFormat(flags.from, path)
	if err != nil {
		return nil, "", err
	}

	exts, err := loadExtensions(flags.configPath)
	if err != nil {
		return nil, "", err
	}

	ed, err := editor.New(editor.Config{Logger: logger}, exts...)
	if err != nil {
		return nil, "", fmt.Errorf("invalid editor config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read input: %w", err)
	}

	doc, err := decodeDocument(ed.Schema(), inputFormat, data, logger)
	if err != nil {
		return nil, "", err
	}
	if err := ed.SetContent(doc); err != nil {
		return nil, "", err
	}
	return ed, inputFormat, nil
}

func decodeDocument(schema *editor.Schema, format string, data []byte, logger *zap.SugaredLogger) (model.Doc, error) {
	switch format {
	case formatJSON:
		return model.Parse(data)
	case formatHTML:
		return htmlcodec.Parse(schema, string(data))
	case formatMarkdown:
		result := mdimport.Convert(string(data))
		for _, warning := range result.Warnings {
			logger.Warnw("markdown import", "type", warning.Type, "node", warning.NodeType, "message", warning.Message)
		}
		return result.Doc, nil
	default:
		return model.Doc{}, fmt.Errorf("unsupported input format %q", format)
	}
}

func encodeDocument(schema *editor.Schema, format string, doc model.Doc) (string, error) {
	switch format {
	case formatHTML:
		out, err := htmlcodec.Render(schema, doc)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	case formatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to format document JSON: %w", err)
		}
		return string(out) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}
