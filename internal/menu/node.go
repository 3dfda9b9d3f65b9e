// Package menu provides the declarative dialog tree and the resolver that
// walks a cumulative USSD selection path down to a tree position.
package menu

import (
	"github.com/temberanawe/ussd/internal/domain"
)

// Delimiter separates selection tokens in the cumulative path.
const Delimiter = "*"

// BackToken navigates one level toward the root. It is reserved and must
// never name a meaningful child.
const BackToken = "0"

// Context accumulates per-resolution state: the render language, the
// borrowed session, and contributions made by ancestor selections that
// descendant generators may depend on.
type Context struct {
	Lang    domain.Language
	Session *domain.Session
	values  map[string]string
}

// NewContext builds a resolution context for one turn.
func NewContext(lang domain.Language, sess *domain.Session) *Context {
	return &Context{Lang: lang, Session: sess, values: make(map[string]string)}
}

// Set records a context contribution under a key.
func (c *Context) Set(key, value string) {
	c.values[key] = value
}

// Get returns a previously contributed value, or "".
func (c *Context) Get(key string) string {
	return c.values[key]
}

// Child binds a selection token to a node, with the label shown in the
// parent's menu. Order of children defines render order.
type Child struct {
	Token string
	Label string
	Node  *Node
}

// Result is what a terminal action produces for the current turn.
type Result struct {
	Text string
	End  bool
	// SMS, when non-empty, is handed to the notification dispatcher
	// addressed to the caller. Never awaited.
	SMS string
	// StartWizard names a wizard flow to begin instead of completing the
	// turn as a plain terminal.
	StartWizard string
}

// PromptFunc renders a node's prompt line(s) for the context language.
type PromptFunc func(c *Context) string

// GenerateFunc materializes the ordered children of a dynamic branch.
type GenerateFunc func(c *Context) ([]Child, error)

// ActionFunc executes a terminal node against the borrowed session.
type ActionFunc func(s *domain.Session, c *Context) (Result, error)

// EnterFunc applies a child's context contribution when it is stepped into.
type EnterFunc func(s *domain.Session, c *Context)

// Node is one position in the menu tree: a static branch (Children), a
// dynamic branch (Generate), or a terminal (Action). Enter runs before the
// walk descends into the node. Redirect turns the node into an alias: after
// Enter runs, resolution continues at the target instead (used for the
// language toggle, which must land back on the main menu).
type Node struct {
	ID       string
	Prompt   PromptFunc
	Children []Child
	Generate GenerateFunc
	Action   ActionFunc
	Enter    EnterFunc
	Redirect func() *Node
	// Empty overrides the generic "nothing available" line rendered when a
	// dynamic branch materializes no children.
	Empty PromptFunc
	// HideBack suppresses the trailing back line (root only).
	HideBack bool
}

// IsTerminal reports whether the node carries a terminal action.
func (n *Node) IsTerminal() bool {
	return n.Action != nil
}

// children returns the node's materialized child list.
func (n *Node) children(c *Context) ([]Child, error) {
	if n.Generate != nil {
		return n.Generate(c)
	}
	return n.Children, nil
}
