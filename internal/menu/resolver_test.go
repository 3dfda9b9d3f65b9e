package menu

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/temberanawe/ussd/internal/domain"
)

func staticPrompt(s string) PromptFunc {
	return func(*Context) string { return s }
}

// testTree builds a small tree: root -> fruits (static) -> apple (terminal),
// plus a dynamic branch and an alias that redirects back to fruits.
func testTree() *Node {
	apple := &Node{
		ID: "apple",
		Action: func(s *domain.Session, c *Context) (Result, error) {
			return Result{Text: "You chose apple", End: true}, nil
		},
	}
	fruits := &Node{
		ID:     "fruits",
		Prompt: staticPrompt("Pick a fruit"),
		Children: []Child{
			{Token: "1", Label: "Apple", Node: apple},
		},
	}
	dynamic := &Node{
		ID:     "dynamic",
		Prompt: staticPrompt("Pick one"),
		Generate: func(c *Context) ([]Child, error) {
			if c.Get("fail") != "" {
				return nil, errors.New("generator failed")
			}
			return []Child{{Token: "1", Label: "Only", Node: apple}}, nil
		},
	}
	alias := &Node{
		ID:       "alias",
		Redirect: func() *Node { return fruits },
		Enter: func(s *domain.Session, c *Context) {
			c.Set("entered", "yes")
		},
	}
	return &Node{
		ID:     "root",
		Prompt: staticPrompt("Welcome"),
		Children: []Child{
			{Token: "1", Label: "Fruits", Node: fruits},
			{Token: "2", Label: "Dynamic", Node: dynamic},
			{Token: "3", Label: "Alias", Node: alias},
		},
		HideBack: true,
	}
}

func newTestContext() *Context {
	sess := domain.NewSession("+250700000001", time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC))
	return NewContext(domain.LangEnglish, sess)
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"1", []string{"1"}},
		{"1*2*0", []string{"1", "2", "0"}},
		{" 1 * 2 ", []string{"1", "2"}},
	}

	for _, tt := range tests {
		got := ParsePath(tt.text)
		if len(got) != len(tt.want) {
			t.Errorf("ParsePath(%q): expected %v, got %v", tt.text, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParsePath(%q): expected %v, got %v", tt.text, tt.want, got)
			}
		}
	}
}

func TestResolve_EmptyPathIsRoot(t *testing.T) {
	p, rerr := Resolve(testTree(), nil, newTestContext())
	if rerr != nil {
		t.Fatalf("Expected no error, got %v", rerr)
	}
	if p.Node().ID != "root" || p.Depth() != 0 {
		t.Errorf("Expected root at depth 0, got %s at %d", p.Node().ID, p.Depth())
	}
}

func TestResolve_WalkToTerminal(t *testing.T) {
	p, rerr := Resolve(testTree(), []string{"1", "1"}, newTestContext())
	if rerr != nil {
		t.Fatalf("Expected no error, got %v", rerr)
	}
	if p.Node().ID != "apple" {
		t.Errorf("Expected apple, got %s", p.Node().ID)
	}
	if !p.Node().IsTerminal() {
		t.Error("Expected terminal node")
	}
}

func TestResolve_BackTokenPops(t *testing.T) {
	p, rerr := Resolve(testTree(), []string{"1", "0"}, newTestContext())
	if rerr != nil {
		t.Fatalf("Expected no error, got %v", rerr)
	}
	if p.Node().ID != "root" {
		t.Errorf("Expected back at root, got %s", p.Node().ID)
	}
}

func TestResolve_BackAtRootStaysPut(t *testing.T) {
	p, rerr := Resolve(testTree(), []string{"0", "0", "1"}, newTestContext())
	if rerr != nil {
		t.Fatalf("Expected no error, got %v", rerr)
	}
	if p.Node().ID != "fruits" {
		t.Errorf("Expected fruits, got %s", p.Node().ID)
	}
}

func TestResolve_UnknownSelection(t *testing.T) {
	_, rerr := Resolve(testTree(), []string{"1", "9"}, newTestContext())
	if rerr == nil {
		t.Fatal("Expected resolve error, got nil")
	}
	if rerr.Kind != KindUnknownSelection {
		t.Errorf("Expected unknown selection, got %v", rerr.Kind)
	}
	if rerr.Token != "9" {
		t.Errorf("Expected token 9, got %q", rerr.Token)
	}
	if rerr.Position.Node().ID != "fruits" {
		t.Errorf("Expected deepest position fruits, got %s", rerr.Position.Node().ID)
	}
}

func TestResolve_PathBeyondTerminal(t *testing.T) {
	_, rerr := Resolve(testTree(), []string{"1", "1", "1"}, newTestContext())
	if rerr == nil {
		t.Fatal("Expected resolve error, got nil")
	}
	if rerr.Kind != KindPathTooDeep {
		t.Errorf("Expected path too deep, got %v", rerr.Kind)
	}
	if rerr.Position.Node().ID != "fruits" {
		t.Errorf("Expected recovery at fruits, got %s", rerr.Position.Node().ID)
	}
}

func TestResolve_BackFromTerminalReturnsToParent(t *testing.T) {
	// Informational terminals that answer with CON stay on the path; the
	// caller's next back token must land on the parent branch.
	p, rerr := Resolve(testTree(), []string{"1", "1", "0"}, newTestContext())
	if rerr != nil {
		t.Fatalf("Expected no error, got %v", rerr)
	}
	if p.Node().ID != "fruits" {
		t.Errorf("Expected fruits after back, got %s", p.Node().ID)
	}
}

func TestResolve_GeneratorError(t *testing.T) {
	ctx := newTestContext()
	ctx.Set("fail", "1")

	_, rerr := Resolve(testTree(), []string{"2", "1"}, ctx)
	if rerr == nil {
		t.Fatal("Expected resolve error, got nil")
	}
	if rerr.Kind != KindUnknownSelection {
		t.Errorf("Expected unknown selection, got %v", rerr.Kind)
	}
}

func TestResolve_RedirectRunsEnterAndLandsOnTarget(t *testing.T) {
	ctx := newTestContext()
	p, rerr := Resolve(testTree(), []string{"3"}, ctx)
	if rerr != nil {
		t.Fatalf("Expected no error, got %v", rerr)
	}
	if p.Node().ID != "fruits" {
		t.Errorf("Expected redirect target fruits, got %s", p.Node().ID)
	}
	if ctx.Get("entered") != "yes" {
		t.Error("Expected enter hook to have run before redirect")
	}
}

func TestResolve_RedirectDoesNotStackRepeats(t *testing.T) {
	// Re-selecting the alias from its own target must not grow the stack,
	// otherwise back navigation would need two pops per toggle.
	p, rerr := Resolve(testTree(), []string{"3", "0"}, newTestContext())
	if rerr != nil {
		t.Fatalf("Expected no error, got %v", rerr)
	}
	if p.Node().ID != "root" {
		t.Errorf("Expected root after single back, got %s", p.Node().ID)
	}
}

func TestRender_StaticBranch(t *testing.T) {
	p, _ := Resolve(testTree(), []string{"1"}, newTestContext())
	got := Render(p, Labels{Back: "Back", Empty: "Nothing here"})

	want := "Pick a fruit\n1. Apple\n0. Back"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRender_RootHidesBack(t *testing.T) {
	p, _ := Resolve(testTree(), nil, newTestContext())
	got := Render(p, Labels{Back: "Back", Empty: "Nothing here"})

	if strings.Contains(got, "0. Back") {
		t.Errorf("Expected no back line at root, got %q", got)
	}
}

func TestRender_EmptyDynamicBranch(t *testing.T) {
	empty := &Node{
		ID:     "empty",
		Prompt: staticPrompt("Places"),
		Generate: func(c *Context) ([]Child, error) {
			return nil, nil
		},
	}
	p := &Position{stack: []*Node{empty}, Ctx: newTestContext()}
	got := Render(p, Labels{Back: "Back", Empty: "Nothing here"})

	want := "Places\nNothing here\n0. Back"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRender_EmptyOverride(t *testing.T) {
	empty := &Node{
		ID:     "empty",
		Prompt: staticPrompt("Places"),
		Generate: func(c *Context) ([]Child, error) {
			return nil, nil
		},
		Empty: staticPrompt("No places in this district yet"),
	}
	p := &Position{stack: []*Node{empty}, Ctx: newTestContext()}
	got := Render(p, Labels{Back: "Back", Empty: "Nothing here"})

	if !strings.Contains(got, "No places in this district yet") {
		t.Errorf("Expected empty override, got %q", got)
	}
}
