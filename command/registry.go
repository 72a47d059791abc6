package command

import (
	"fmt"
	"strings"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/lexer"
	"monogrammedchalk.com/samctl/transcript"
)

// Context is the per-invocation view of engine state a handler needs to
// do its work (spec §4.7: "(editor, window?, command, stream,
// selection?, range)"). executor binds its engine/window/selection state
// to an implementation of this interface; command never imports
// executor, text, or view.
type Context interface {
	// Range is the range this invocation resolved to (from the command's
	// own address, or its CommandDef.AddrDefault).
	Range() address.Range

	// Stream is the token stream positioned immediately after this
	// command's own arguments, for handlers that keep reading raw text
	// (SHELL already consumes to EOL, but nested CMD bodies read past
	// here during their own parse).
	Stream() *lexer.TokenStream

	// Transcript is the transcript to enqueue changes against for the
	// file this invocation targets.
	Transcript() *transcript.Transcript

	// Selection is this invocation's bound selection, if any.
	Selection() (transcript.SelectionID, bool)

	// Window is this invocation's bound window.
	Window() transcript.WindowID

	// Pipe runs argv with input as stdin, per the Process collaborator
	// (spec §6); stdout/stderr are streamed to the given sinks as they
	// arrive. There is no interrupt: the call returns when the process
	// exits.
	Pipe(argv []string, input []byte, stdout, stderr func([]byte)) (exitCode int, err error)

	// Info surfaces a status-line message through the UI collaborator.
	Info(format string, args ...any)
}

// HandlerFunc is a command body, invoked by the executor once per
// selection (or once total, for ONCE commands), per spec §4.7.
type HandlerFunc func(ctx Context, cmd *Command) error

// CommandDef is the static description of a command: its name, its
// argument shape and execution-control flags, its default range, and the
// function that runs it (spec §3's CommandDef).
type CommandDef struct {
	Name        string
	Help        string
	Flags       Flag
	AddrDefault AddrDefault
	Handler     HandlerFunc
}

// Registry holds the builtin table and the user-registered table
// separately, per spec §4.4, so Unregister can never touch a builtin.
type Registry struct {
	builtins map[string]*CommandDef
	user     map[string]*CommandDef
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builtins: map[string]*CommandDef{}, user: map[string]*CommandDef{}}
}

// RegisterBuiltin adds def to the builtin table, overwriting any existing
// entry of the same name. Intended to be called once at startup by the
// handlers package; not exposed to user scripts.
func (r *Registry) RegisterBuiltin(def *CommandDef) {
	r.builtins[def.Name] = def
}

// Register adds a user command, visible to Lookup and the help printer,
// per spec §4.4. It fails if name collides with a builtin.
func (r *Registry) Register(def *CommandDef) error {
	if _, exists := r.builtins[def.Name]; exists {
		return fmt.Errorf("%q is a builtin command", def.Name)
	}
	r.user[def.Name] = def
	return nil
}

// Unregister removes a user command. Builtins can never be unregistered;
// the two tables are never touched partially (spec §4.4: "atomically or
// not at all").
func (r *Registry) Unregister(name string) error {
	if _, ok := r.user[name]; !ok {
		return fmt.Errorf("no such user command %q", name)
	}
	delete(r.user, name)
	return nil
}

// Help returns the builtin and user CommandDefs, for the help printer.
// The order is not defined; callers that list them sort by name.
func (r *Registry) Help() []*CommandDef {
	var all []*CommandDef
	for _, def := range r.builtins {
		all = append(all, def)
	}
	for _, def := range r.user {
		all = append(all, def)
	}
	return all
}

// Lookup resolves name to a CommandDef using closest-unique-prefix
// matching, per spec §4.4: an exact match (user commands shadow builtins
// of the same name) always wins; failing that, name must be an unambiguous
// prefix of exactly one registered command.
func (r *Registry) Lookup(name string) (*CommandDef, error) {
	if def, ok := r.user[name]; ok {
		return def, nil
	}
	if def, ok := r.builtins[name]; ok {
		return def, nil
	}

	var match *CommandDef
	count := 0
	for n, def := range r.user {
		if strings.HasPrefix(n, name) {
			match, count = def, count+1
		}
	}
	for n, def := range r.builtins {
		if strings.HasPrefix(n, name) {
			match, count = def, count+1
		}
	}
	switch count {
	case 0:
		return nil, fmt.Errorf("unknown command %q", name)
	case 1:
		return match, nil
	default:
		return nil, fmt.Errorf("ambiguous command %q", name)
	}
}
