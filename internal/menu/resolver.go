package menu

import (
	"fmt"
	"strings"
)

// ErrorKind classifies an expected resolution failure. Both kinds recover
// locally by re-rendering the deepest reached node with an error banner.
type ErrorKind int

const (
	// KindUnknownSelection means a token matched no child at its level.
	KindUnknownSelection ErrorKind = iota
	// KindPathTooDeep means tokens remained after reaching a terminal.
	KindPathTooDeep
)

// ResolveError carries the failure kind, the offending token and the
// deepest successfully resolved position, which the engine re-renders with
// an inline error annotation instead of jumping back to the root.
type ResolveError struct {
	Kind     ErrorKind
	Token    string
	Position *Position
}

func (e *ResolveError) Error() string {
	switch e.Kind {
	case KindPathTooDeep:
		return fmt.Sprintf("path too deep at token %q", e.Token)
	default:
		return fmt.Sprintf("unknown selection %q at node %s", e.Token, e.Position.Node().ID)
	}
}

// Position is a resolved location in the tree: the stack of nodes walked
// from the root plus the accumulated context.
type Position struct {
	stack []*Node
	Ctx   *Context
}

// Node returns the node the position stands on.
func (p *Position) Node() *Node {
	return p.stack[len(p.stack)-1]
}

// Depth returns the number of levels below the root.
func (p *Position) Depth() int {
	return len(p.stack) - 1
}

func (p *Position) push(n *Node) {
	p.stack = append(p.stack, n)
}

// pop moves one level toward the root; at the root it stays put.
func (p *Position) pop() {
	if len(p.stack) > 1 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// ParsePath splits the transport's cumulative text into selection tokens.
// An empty string is zero tokens (the session-start signal).
func ParsePath(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	tokens := strings.Split(text, Delimiter)
	for i, t := range tokens {
		tokens[i] = strings.TrimSpace(t)
	}
	return tokens
}

// Resolve walks the tree from root, consuming one token per level. The
// back token pops a level (a no-op at the root). Dynamic branches are
// materialized before lookup; a child's Enter hook runs before the walk
// descends into it. A redirect child hands resolution to its target
// without consuming another token.
func Resolve(root *Node, tokens []string, ctx *Context) (*Position, *ResolveError) {
	p := &Position{stack: []*Node{root}, Ctx: ctx}

	for _, tok := range tokens {
		if tok == BackToken {
			p.pop()
			continue
		}

		cur := p.Node()
		if cur.IsTerminal() {
			p.pop()
			return nil, &ResolveError{Kind: KindPathTooDeep, Token: tok, Position: p}
		}

		children, err := cur.children(ctx)
		if err != nil || len(children) == 0 {
			// Unresolved catalog data renders as a "nothing available"
			// leaf; any token but back is an unknown selection there.
			return nil, &ResolveError{Kind: KindUnknownSelection, Token: tok, Position: p}
		}

		child, ok := findChild(children, tok)
		if !ok {
			return nil, &ResolveError{Kind: KindUnknownSelection, Token: tok, Position: p}
		}

		if child.Node.Enter != nil {
			child.Node.Enter(ctx.Session, ctx)
		}
		if child.Node.Redirect != nil {
			target := child.Node.Redirect()
			if p.Node() != target {
				p.push(target)
			}
			continue
		}
		p.push(child.Node)
	}

	return p, nil
}

func findChild(children []Child, token string) (Child, bool) {
	for _, ch := range children {
		if ch.Token == token {
			return ch, true
		}
	}
	return Child{}, false
}
