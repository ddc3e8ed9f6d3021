package docgen

import (
	"fmt"
	"slices"
	"strings"
	"text/template"
	"text/template/parse"
)

// checkSlots compares the view fields a template reads with the slots its
// catalog entry declares. Both lists must match exactly.
func checkSlots(e Entry, t *template.Template) error {
	used := make(map[string]bool)
	for _, tt := range t.Templates() {
		if tt.Tree != nil {
			collectFields(tt.Tree.Root, true, used)
		}
	}

	declared := make(map[string]bool, len(e.Slots))
	for _, s := range e.Slots {
		declared[slotFields[s]] = true
	}

	var undeclared, unused []string
	for field := range used {
		if !declared[field] {
			undeclared = append(undeclared, field)
		}
	}
	for _, s := range e.Slots {
		if !used[slotFields[s]] {
			unused = append(unused, s)
		}
	}
	slices.Sort(undeclared)

	switch {
	case len(undeclared) > 0:
		return fmt.Errorf("reads undeclared fields %s", strings.Join(undeclared, ", "))
	case len(unused) > 0:
		return fmt.Errorf("declares unused slots %s", strings.Join(unused, ", "))
	}
	return nil
}

// collectFields records the top-level view fields reached from n. Inside a
// range or with body dot is the element, so only $-rooted references count
// there.
func collectFields(n parse.Node, top bool, used map[string]bool) {
	switch n := n.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			collectFields(c, top, used)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, top, used)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, c := range n.Cmds {
			collectFields(c, top, used)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectFields(arg, top, used)
		}
	case *parse.ChainNode:
		collectFields(n.Node, top, used)
	case *parse.FieldNode:
		if top {
			used[n.Ident[0]] = true
		}
	case *parse.VariableNode:
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			used[n.Ident[1]] = true
		}
	case *parse.IfNode:
		collectFields(n.Pipe, top, used)
		collectFields(n.List, top, used)
		collectFields(n.ElseList, top, used)
	case *parse.RangeNode:
		collectFields(n.Pipe, top, used)
		collectFields(n.List, false, used)
		collectFields(n.ElseList, top, used)
	case *parse.WithNode:
		collectFields(n.Pipe, top, used)
		collectFields(n.List, false, used)
		collectFields(n.ElseList, top, used)
	case *parse.TemplateNode:
		collectFields(n.Pipe, top, used)
	}
}
