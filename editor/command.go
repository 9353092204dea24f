package editor

import "errors"

// ErrUnknownCommand is returned when a command name is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// Command mutates the transaction in props and reports whether it applies.
// Commands never fail with an error: a command that cannot apply returns false.
type Command func(props CommandProps) bool

// CommandFactory builds a command from its string arguments. It is the entry
// the command registry stores under each command name.
type CommandFactory func(args ...string) (Command, error)

// CommandProps is what a command receives when it runs.
type CommandProps struct {
	// Tr is the transaction shared by every command of the current invocation.
	Tr *Transaction
	// State is the state the invocation started from. The pending document is Tr.Doc().
	State State
	// Schema is the editor schema.
	Schema *Schema
	// Dispatch is nil during a capability probe. Commands call it to ask for Tr
	// to be committed; the runner commits at most once, after the invocation.
	Dispatch func(tr *Transaction)
}

// Chain returns a chain that adds its steps to props.Tr and forwards dispatch
// to the surrounding invocation instead of committing on its own.
func (p CommandProps) Chain() *Chain {
	return &Chain{
		tr:       p.Tr,
		state:    p.State,
		schema:   p.Schema,
		dispatch: p.Dispatch,
	}
}

// Chain runs several commands over one transaction.
type Chain struct {
	tr       *Transaction
	state    State
	current  func() State
	schema   *Schema
	dispatch func(tr *Transaction)
	commit   func(tr *Transaction) error
	commands []Command
}

// Command appends cmd to the chain.
func (c *Chain) Command(cmd Command) *Chain {
	c.commands = append(c.commands, cmd)
	return c
}

// SetMark appends SetMark(markType, attrs).
func (c *Chain) SetMark(markType string, attrs map[string]interface{}) *Chain {
	return c.Command(SetMark(markType, attrs))
}

// RemoveEmptyMark appends RemoveEmptyMark(markType).
func (c *Chain) RemoveEmptyMark(markType string) *Chain {
	return c.Command(RemoveEmptyMark(markType))
}

// Run executes the chained commands. Every command runs even when an earlier
// one did not apply; the transaction is dispatched only if all of them did.
// A chain obtained from CommandProps never commits itself, it hands the
// transaction to the surrounding dispatch.
func (c *Chain) Run() (bool, error) {
	state := c.source()
	tr := c.tr
	if tr == nil {
		tr = newTransaction(state)
	}

	topLevel := c.commit != nil
	props := CommandProps{Tr: tr, State: state, Schema: c.schema}
	if topLevel || c.dispatch != nil {
		props.Dispatch = func(*Transaction) {}
	}

	if !runAll(c.commands, props) {
		return false, nil
	}
	if topLevel {
		if err := c.commit(tr); err != nil {
			return false, err
		}
		return true, nil
	}
	if c.dispatch != nil {
		c.dispatch(tr)
	}
	return true, nil
}

// Can runs the chained commands as a capability probe on a scratch
// transaction. Nothing is dispatched.
func (c *Chain) Can() bool {
	state := c.source()
	if c.tr != nil {
		doc, err := c.tr.Doc()
		if err != nil {
			return false
		}
		state = State{Doc: doc, Selection: c.tr.Selection(), StoredMarks: c.tr.StoredMarks()}
	}

	return runAll(c.commands, CommandProps{
		Tr:     newTransaction(state),
		State:  state,
		Schema: c.schema,
	})
}

// source returns the state the chain starts from. Chains created by an editor
// read its state when they run, not when they were built.
func (c *Chain) source() State {
	if c.current != nil {
		return c.current()
	}
	return c.state
}

func runAll(commands []Command, props CommandProps) bool {
	ok := true
	for _, cmd := range commands {
		if !cmd(props) {
			ok = false
		}
	}
	return ok
}
