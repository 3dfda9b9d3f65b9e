// Package dialog implements the turn-based USSD dialog engine: it decodes
// the cumulative selection path, resolves the caller's menu position,
// executes terminal actions against the session, and renders the reply.
package dialog

import (
	"context"
	"log/slog"
	"time"

	"github.com/temberanawe/ussd/internal/catalog"
	"github.com/temberanawe/ussd/internal/domain"
	"github.com/temberanawe/ussd/internal/menu"
	"github.com/temberanawe/ussd/internal/notify"
	"github.com/temberanawe/ussd/internal/session"
)

const (
	defaultBookingLeadDays = 7
	defaultSupportPhone    = "+250 788 123 456"
	dateDisplayLayout      = "Jan 2, 2006"
)

// Options configure an Engine. Zero values select the defaults.
type Options struct {
	IDs             IDGenerator
	Clock           func() time.Time
	BookingLeadDays int
	SupportPhone    string
}

// Engine orchestrates one dialog turn per call.
type Engine struct {
	store        session.Store
	cat          *catalog.Catalog
	dispatcher   notify.Dispatcher
	ids          IDGenerator
	clock        func() time.Time
	leadDays     int
	supportPhone string

	root *menu.Node
	main *menu.Node
}

// NewEngine wires the engine and builds the menu tree over the catalog.
func NewEngine(store session.Store, cat *catalog.Catalog, dispatcher notify.Dispatcher, opts Options) *Engine {
	e := &Engine{
		store:        store,
		cat:          cat,
		dispatcher:   dispatcher,
		ids:          opts.IDs,
		clock:        opts.Clock,
		leadDays:     opts.BookingLeadDays,
		supportPhone: opts.SupportPhone,
	}
	if e.ids == nil {
		e.ids = NewRandomIDs()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.leadDays <= 0 {
		e.leadDays = defaultBookingLeadDays
	}
	if e.supportPhone == "" {
		e.supportPhone = defaultSupportPhone
	}
	e.buildTree()
	return e
}

// Reply is one turn's response. The transport prepends the protocol's
// continuation or termination marker.
type Reply struct {
	Text string
	End  bool
}

// Turn processes one request from the transport.
func (e *Engine) Turn(ctx context.Context, callerID, text string) Reply {
	tokens := menu.ParsePath(text)

	var reply Reply
	err := e.store.WithSession(ctx, callerID, func(s *domain.Session) error {
		reply = e.turn(s, tokens)
		return nil
	})
	if err != nil {
		slog.Error("turn failed", "caller", callerID, "error", err)
		return Reply{Text: messages[domain.LangEnglish].apology, End: true}
	}
	return reply
}

func (e *Engine) turn(s *domain.Session, tokens []string) Reply {
	if s.Wizard != nil {
		// A fresh empty input always restarts at the root, even
		// mid-wizard.
		if len(tokens) == 0 {
			s.Wizard = nil
			return e.renderRoot(s)
		}
		return e.wizardStep(s, tokens[len(tokens)-1])
	}

	if len(tokens) == 0 {
		return e.renderRoot(s)
	}

	ctx := menu.NewContext(displayLang(s), s)
	pos, rerr := menu.Resolve(e.root, tokens, ctx)
	if rerr != nil {
		cs := text(ctx.Lang)
		return Reply{Text: cs.invalid + "\n" + menu.Render(rerr.Position, e.labels(ctx.Lang))}
	}

	node := pos.Node()
	if !node.IsTerminal() {
		return Reply{Text: menu.Render(pos, e.labels(ctx.Lang))}
	}

	res, err := node.Action(s, ctx)
	if err != nil {
		slog.Error("menu action failed", "caller", s.CallerID, "node", node.ID, "error", err)
		return Reply{Text: text(ctx.Lang).apology, End: true}
	}
	if res.StartWizard != "" {
		return e.startWizard(s, ctx, res.StartWizard, tokens)
	}
	return e.finish(s, res)
}

// finish dispatches any requested notification and shapes the reply.
func (e *Engine) finish(s *domain.Session, res menu.Result) Reply {
	if res.SMS != "" {
		e.dispatcher.Dispatch(notify.Message{To: s.CallerID, Text: res.SMS})
	}
	return Reply{Text: res.Text, End: res.End}
}

func (e *Engine) renderRoot(s *domain.Session) Reply {
	ctx := menu.NewContext(displayLang(s), s)
	pos, _ := menu.Resolve(e.root, nil, ctx)
	return Reply{Text: menu.Render(pos, e.labels(ctx.Lang))}
}

// renderAt re-renders the menu at a previously resolved token path,
// falling back to the root if the path no longer resolves.
func (e *Engine) renderAt(s *domain.Session, tokens []string) Reply {
	ctx := menu.NewContext(displayLang(s), s)
	pos, rerr := menu.Resolve(e.root, tokens, ctx)
	if rerr != nil || pos.Node().IsTerminal() {
		return e.renderRoot(s)
	}
	return Reply{Text: menu.Render(pos, e.labels(ctx.Lang))}
}

func (e *Engine) labels(lang domain.Language) menu.Labels {
	cs := text(lang)
	return menu.Labels{Back: cs.back, Empty: cs.nothing}
}

// withBack appends the back line to a continuation response produced by a
// terminal action (informational displays keep the session going).
func (e *Engine) withBack(lang domain.Language, body string) string {
	return body + "\n0. " + text(lang).back
}

func displayLang(s *domain.Session) domain.Language {
	if s.Language.Valid() {
		return s.Language
	}
	return domain.LangEnglish
}
