package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"monogrammedchalk.com/samctl/executor"
	"monogrammedchalk.com/samctl/process"
	"monogrammedchalk.com/samctl/uiiface"
	"monogrammedchalk.com/samctl/view"
)

// optionKind is one of Bool, Number, String, per spec §4.8's `(names[],
// kind, flags, handler?, context)` option description.
type optionKind int

const (
	optBool optionKind = iota
	optNumber
	optString
)

// optionDef is one entry of the `set` command's OptionTable. set(iv,
// value, raw) applies a parsed value to the engine/window; get reads an
// optBool option's current state back, so a bang-toggle (`foo!`/`!foo`)
// can flip it rather than force it on. get is nil for non-bool kinds.
type optionDef struct {
	name string
	kind optionKind
	get  func(iv *executor.Invocation) bool
	set  func(iv *executor.Invocation, value bool, raw string) error
}

func optionTable() []optionDef {
	return []optionDef{
		{name: "shell", kind: optString, set: func(iv *executor.Invocation, _ bool, raw string) error {
			iv.Engine().Runner = process.New(raw)
			iv.Engine().Shell = raw
			return nil
		}},
		{name: "tabwidth", kind: optNumber, set: func(iv *executor.Invocation, _ bool, raw string) error {
			_, err := strconv.Atoi(raw)
			return err
		}},
		{
			name: "statusbar", kind: optBool,
			get: func(iv *executor.Invocation) bool { return getWindowOpt(iv, view.OptStatusBar) },
			set: func(iv *executor.Invocation, value bool, _ string) error {
				return setWindowOpt(iv, view.OptStatusBar, value)
			},
		},
		{
			name: "numbers", kind: optBool,
			get: func(iv *executor.Invocation) bool { return getWindowOpt(iv, view.OptNumbers) },
			set: func(iv *executor.Invocation, value bool, _ string) error {
				return setWindowOpt(iv, view.OptNumbers, value)
			},
		},
		{name: "layout", kind: optString, set: func(iv *executor.Invocation, _ bool, raw string) error {
			iv.Engine().UI.Arrange(uiiface.Layout(raw))
			return nil
		}},
		{name: "savemethod", kind: optString, set: func(iv *executor.Invocation, _ bool, raw string) error {
			iv.Info("savemethod: %s", raw)
			return nil
		}},
		{name: "loadmethod", kind: optString, set: func(iv *executor.Invocation, _ bool, raw string) error {
			iv.Info("loadmethod: %s", raw)
			return nil
		}},
		{name: "breakat", kind: optString, set: func(iv *executor.Invocation, _ bool, raw string) error {
			iv.Info("breakat: %s", raw)
			return nil
		}},
		{name: "wrapcolumn", kind: optNumber, set: func(iv *executor.Invocation, _ bool, raw string) error {
			_, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			return setWindowOpt(iv, view.OptWrap, true)
		}},
	}
}

func getWindowOpt(iv *executor.Invocation, bit view.Options) bool {
	return iv.Win().Options.Has(bit)
}

func setWindowOpt(iv *executor.Invocation, bit view.Options, on bool) error {
	w := iv.Win()
	if on {
		w.Options |= bit
	} else {
		w.Options &^= bit
	}
	return nil
}

// parseBool implements spec §4.8's bool literal set:
// 1/0/true/false/yes/no/on/off, case-insensitive.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("set: invalid boolean %q", s)
}

// lookupOption resolves name to an optionDef using the same
// closest-unique-prefix rule as the command registry (spec §4.8: "name
// via closest-prefix lookup").
func lookupOption(name string) (*optionDef, error) {
	table := optionTable()
	for i := range table {
		if table[i].name == name {
			return &table[i], nil
		}
	}
	var match *optionDef
	count := 0
	for i := range table {
		if strings.HasPrefix(table[i].name, name) {
			match, count = &table[i], count+1
		}
	}
	switch count {
	case 0:
		return nil, fmt.Errorf("set: unknown option %q", name)
	case 1:
		return match, nil
	default:
		return nil, fmt.Errorf("set: ambiguous option %q", name)
	}
}

// applyOption parses one `set` argv per spec §4.8: an optional leading
// `!`, the option name, an optional trailing `!` (either toggles), then
// a value token for non-bool options (bool options with no value and no
// `!` are treated as a query, reported via Info rather than mutated).
func applyOption(iv *executor.Invocation, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("set: missing option name")
	}

	tok := argv[0]
	toggle := false
	if strings.HasPrefix(tok, "!") {
		toggle = true
		tok = tok[1:]
	}
	if strings.HasSuffix(tok, "!") {
		toggle = true
		tok = tok[:len(tok)-1]
	}

	def, err := lookupOption(tok)
	if err != nil {
		return err
	}

	rest := argv[1:]
	switch def.kind {
	case optBool:
		if len(rest) == 0 {
			if !toggle {
				iv.Info("%s", def.name)
				return nil
			}
			return def.set(iv, !def.get(iv), "")
		}
		v, err := parseBool(rest[0])
		if err != nil {
			return err
		}
		return def.set(iv, v, "")

	case optNumber:
		if len(rest) == 0 {
			return fmt.Errorf("set: %s requires a numeric value", def.name)
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 0 || n > 1<<31-1 {
			return fmt.Errorf("set: %s: invalid number %q", def.name, rest[0])
		}
		return def.set(iv, toggle, rest[0])

	default: // optString
		return def.set(iv, toggle, strings.Join(rest, " "))
	}
}
