package dialog

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/temberanawe/ussd/internal/catalog"
	"github.com/temberanawe/ussd/internal/domain"
	"github.com/temberanawe/ussd/internal/menu"
)

const (
	flowSave = "save"
	flowGoal = "goal"
)

const maxGoalTitleLen = 40

// wizardSlot is one typed field captured over a turn.
type wizardSlot struct {
	name     string
	prompt   func(cs copyset) string
	invalid  func(cs copyset) string
	validate func(raw string) (string, bool)
}

// wizardFlow is an ordered sequence of slots plus the completion step that
// materializes the target entity.
type wizardFlow struct {
	slots    []wizardSlot
	complete func(e *Engine, s *domain.Session, w *domain.WizardState) menu.Result
}

var wizardFlows = map[string]*wizardFlow{
	flowSave: {
		slots: []wizardSlot{{
			name:     "amount",
			prompt:   func(cs copyset) string { return cs.depositPrompt },
			invalid:  func(cs copyset) string { return cs.depositInvalid },
			validate: validatePositiveInt,
		}},
		complete: func(e *Engine, s *domain.Session, w *domain.WizardState) menu.Result {
			amount, _ := strconv.Atoi(w.Value("amount"))
			points := s.ApplySave(amount, e.clock())

			lang := displayLang(s)
			cs := text(lang)
			return menu.Result{
				Text: fmt.Sprintf(cs.depositDone,
					catalog.PriceLabel(amount, lang),
					catalog.PriceLabel(s.SavingsTotal, lang),
					s.Streak, points),
				End: true,
			}
		},
	},
	flowGoal: {
		slots: []wizardSlot{
			{
				name:     "title",
				prompt:   func(cs copyset) string { return cs.goalTitlePrompt },
				invalid:  func(cs copyset) string { return cs.goalTitleInvalid },
				validate: validateGoalTitle,
			},
			{
				name:     "amount",
				prompt:   func(cs copyset) string { return cs.goalAmountPrompt },
				invalid:  func(cs copyset) string { return cs.depositInvalid },
				validate: validatePositiveInt,
			},
			{
				name:     "days",
				prompt:   func(cs copyset) string { return cs.goalDaysPrompt },
				invalid:  func(cs copyset) string { return cs.goalDaysInvalid },
				validate: validatePositiveInt,
			},
		},
		complete: func(e *Engine, s *domain.Session, w *domain.WizardState) menu.Result {
			target, _ := strconv.Atoi(w.Value("amount"))
			days, _ := strconv.Atoi(w.Value("days"))
			goal := domain.Goal{
				ID:       e.ids.NewID(),
				OwnerID:  s.CallerID,
				Title:    w.Value("title"),
				Target:   target,
				Deadline: e.clock().AddDate(0, 0, days),
				Status:   domain.GoalActive,
			}
			s.Goals = append(s.Goals, goal)

			lang := displayLang(s)
			cs := text(lang)
			deadline := goal.Deadline.Format(dateDisplayLayout)
			targetLabel := catalog.PriceLabel(target, lang)
			return menu.Result{
				Text: fmt.Sprintf(cs.goalCreated, goal.Title, targetLabel, deadline),
				End:  true,
				SMS:  fmt.Sprintf(cs.smsGoal, goal.ID, goal.Title, targetLabel, deadline),
			}
		},
	},
}

// startWizard attaches a fresh WizardState and prompts the first slot.
// The return path is the menu position that existed before the wizard
// began, used when the caller cancels with the back token.
func (e *Engine) startWizard(s *domain.Session, ctx *menu.Context, flowID string, tokens []string) Reply {
	flow := wizardFlows[flowID]
	if flow == nil {
		slog.Error("unknown wizard flow", "caller", s.CallerID, "flow", flowID)
		return Reply{Text: text(ctx.Lang).apology, End: true}
	}
	s.Wizard = &domain.WizardState{
		Flow:       flowID,
		ReturnPath: append([]string(nil), tokens[:len(tokens)-1]...),
	}
	return Reply{Text: flow.slots[0].prompt(text(ctx.Lang))}
}

// wizardStep interprets the newest token as raw input for the next
// unfilled slot.
func (e *Engine) wizardStep(s *domain.Session, raw string) Reply {
	w := s.Wizard
	cs := text(displayLang(s))

	flow := wizardFlows[w.Flow]
	if flow == nil || w.Slot >= len(flow.slots) {
		slog.Error("invalid wizard state", "caller", s.CallerID, "flow", w.Flow, "slot", w.Slot)
		s.Wizard = nil
		return Reply{Text: cs.apology, End: true}
	}

	if raw == menu.BackToken {
		returnPath := w.ReturnPath
		s.Wizard = nil
		return e.renderAt(s, returnPath)
	}

	slot := flow.slots[w.Slot]
	value, ok := slot.validate(strings.TrimSpace(raw))
	if !ok {
		// Slot pointer stays put; the caller retries the same slot.
		return Reply{Text: slot.invalid(cs) + "\n" + slot.prompt(cs)}
	}

	w.Fields = append(w.Fields, domain.WizardField{Name: slot.name, Value: value})
	w.Slot++
	if w.Slot < len(flow.slots) {
		return Reply{Text: flow.slots[w.Slot].prompt(cs)}
	}

	res := flow.complete(e, s, w)
	s.Wizard = nil
	return e.finish(s, res)
}

func validatePositiveInt(raw string) (string, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return "", false
	}
	return strconv.Itoa(n), true
}

func validateGoalTitle(raw string) (string, bool) {
	title := strings.TrimSpace(raw)
	if title == "" || utf8.RuneCountInString(title) > maxGoalTitleLen {
		return "", false
	}
	return title, true
}
