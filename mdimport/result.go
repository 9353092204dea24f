package mdimport

import "github.com/rgonek/richtext-styles/model"

// Result holds the output of a Markdown import.
type Result struct {
	Doc      model.Doc `json:"doc"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes import warnings.
type WarningType string

const (
	WarningUnknownNode    WarningType = "unknown_node"
	WarningDroppedFeature WarningType = "dropped_feature"
)

// Warning represents a non-fatal issue encountered during import.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
