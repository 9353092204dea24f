package editor

import (
	"fmt"
	"sort"

	"github.com/rgonek/richtext-styles/model"
	"go.uber.org/zap"
)

// Extension contributes global attributes and named commands to an editor.
type Extension interface {
	Name() string
	GlobalAttributes() []GlobalAttributes
	Commands() map[string]CommandFactory
}

// Editor owns a document state and runs commands against it.
// An Editor is not safe for concurrent use.
type Editor struct {
	schema   *Schema
	state    State
	commands map[string]CommandFactory
	logger   *zap.SugaredLogger
}

// New creates an editor, registering the schema attributes and commands of
// every extension in order.
func New(config Config, extensions ...Extension) (*Editor, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Editor{
		schema:   NewSchema(cfg.Logger),
		commands: make(map[string]CommandFactory),
		logger:   cfg.Logger,
	}

	for _, ext := range extensions {
		if err := e.register(ext); err != nil {
			return nil, err
		}
	}

	e.state = State{
		Doc:       e.schema.Normalize(cfg.Content),
		Selection: *cfg.Selection,
	}
	return e, nil
}

func (e *Editor) register(ext Extension) error {
	for _, global := range ext.GlobalAttributes() {
		if err := e.schema.AddGlobalAttributes(global); err != nil {
			return fmt.Errorf("extension %q: %w", ext.Name(), err)
		}
	}

	for name, factory := range ext.Commands() {
		if _, exists := e.commands[name]; exists {
			return fmt.Errorf("extension %q: command %q already registered", ext.Name(), name)
		}
		e.commands[name] = factory
	}

	e.logger.Debugw("registered extension", "extension", ext.Name())
	return nil
}

// Schema returns the editor schema.
func (e *Editor) Schema() *Schema {
	return e.schema
}

// State returns the current state.
func (e *Editor) State() State {
	return e.state
}

// Commands returns the registered command names, sorted.
func (e *Editor) Commands() []string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetSelection moves the selection without touching the document.
func (e *Editor) SetSelection(selection Selection) error {
	if err := selection.validate(e.state.Doc); err != nil {
		return err
	}
	e.state.Selection = selection
	e.state.StoredMarks = nil
	return nil
}

// SetContent replaces the document and places the cursor at its start.
func (e *Editor) SetContent(doc model.Doc) error {
	if doc.Type == "" {
		doc.Type = "doc"
	}
	if doc.Type != "doc" {
		return fmt.Errorf("invalid content root type %q", doc.Type)
	}

	e.state = State{
		Doc:       e.schema.Normalize(doc),
		Selection: startCursor(doc),
	}
	return nil
}

// Run executes cmd and commits its transaction if it applies.
func (e *Editor) Run(cmd Command) (bool, error) {
	tr := newTransaction(e.state)
	ok := cmd(CommandProps{
		Tr:       tr,
		State:    e.state,
		Schema:   e.schema,
		Dispatch: func(*Transaction) {},
	})
	if !ok {
		return false, nil
	}
	if err := e.commit(tr); err != nil {
		return false, err
	}
	return true, nil
}

// Can reports whether cmd would apply, without changing the editor state.
func (e *Editor) Can(cmd Command) bool {
	return cmd(CommandProps{
		Tr:     newTransaction(e.state),
		State:  e.state,
		Schema: e.schema,
	})
}

// Exec runs a registered command by name.
func (e *Editor) Exec(name string, args ...string) (bool, error) {
	cmd, err := e.lookup(name, args)
	if err != nil {
		return false, err
	}
	return e.Run(cmd)
}

// CanExec probes a registered command by name.
func (e *Editor) CanExec(name string, args ...string) (bool, error) {
	cmd, err := e.lookup(name, args)
	if err != nil {
		return false, err
	}
	return e.Can(cmd), nil
}

// Chain starts a chain of commands committed as one transaction. The chain
// starts from the editor state at the time it runs, so it can be run again.
func (e *Editor) Chain() *Chain {
	return &Chain{
		current: e.State,
		schema:  e.schema,
		commit:  e.commit,
	}
}

func (e *Editor) lookup(name string, args []string) (Command, error) {
	factory, ok := e.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	cmd, err := factory(args...)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", name, err)
	}
	return cmd, nil
}

func (e *Editor) commit(tr *Transaction) error {
	if tr.dispatched {
		return ErrAlreadyDispatched
	}

	next, err := e.state.Apply(tr)
	if err != nil {
		e.logger.Errorw("transaction rejected", "steps", len(tr.steps), "error", err)
		return fmt.Errorf("failed to apply transaction: %w", err)
	}

	tr.dispatched = true
	e.state = next
	e.logger.Debugw("dispatched transaction", "steps", len(tr.steps), "from", next.Selection.From, "to", next.Selection.To)
	return nil
}
