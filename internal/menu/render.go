package menu

import (
	"strings"
)

// Labels carries the localized fixed strings the renderer needs.
type Labels struct {
	Back  string
	Empty string
}

// Render builds the menu text for a branch position: the node prompt, the
// numbered children in order, then the back line unless suppressed.
// Terminal nodes are not rendered here; their actions produce the text.
func Render(p *Position, labels Labels) string {
	n := p.Node()

	var b strings.Builder
	if n.Prompt != nil {
		b.WriteString(n.Prompt(p.Ctx))
	}

	children, err := n.children(p.Ctx)
	if err != nil || (len(children) == 0 && (n.Generate != nil || len(n.Children) == 0)) {
		empty := labels.Empty
		if n.Empty != nil {
			empty = n.Empty(p.Ctx)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(empty)
	}

	for _, ch := range children {
		b.WriteString("\n")
		b.WriteString(ch.Token)
		b.WriteString(". ")
		b.WriteString(ch.Label)
	}

	if !n.HideBack {
		b.WriteString("\n0. ")
		b.WriteString(labels.Back)
	}

	return b.String()
}
