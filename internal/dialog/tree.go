package dialog

import (
	"fmt"
	"strconv"

	"github.com/temberanawe/ussd/internal/catalog"
	"github.com/temberanawe/ussd/internal/domain"
	"github.com/temberanawe/ussd/internal/menu"
)

// buildTree constructs the menu tree over the catalog snapshot. Nodes that
// depend only on immutable catalog data are built once; branches that
// depend on session state (favorites, bookings, goals) or on the render
// language generate their children per resolution.
func (e *Engine) buildTree() {
	e.main = &menu.Node{
		ID:       "main",
		Prompt:   func(c *menu.Context) string { return text(c.Lang).mainTitle },
		Generate: e.mainChildren,
	}

	e.root = &menu.Node{
		ID:       "root",
		Prompt:   func(c *menu.Context) string { return rootPrompt },
		HideBack: true,
		Children: []menu.Child{
			{Token: "1", Label: "Kinyarwanda", Node: e.languageNode(domain.LangKinyarwanda)},
			{Token: "2", Label: "English", Node: e.languageNode(domain.LangEnglish)},
		},
	}
}

// languageNode sets the session language and lands on the main menu.
func (e *Engine) languageNode(lang domain.Language) *menu.Node {
	return &menu.Node{
		ID: "lang-" + string(lang),
		Enter: func(s *domain.Session, c *menu.Context) {
			s.Language = lang
			c.Lang = lang
		},
		Redirect: func() *menu.Node { return e.main },
	}
}

// mainChildren lists the catalog regions first, then the feature entries,
// numbered continuously after them.
func (e *Engine) mainChildren(c *menu.Context) ([]menu.Child, error) {
	cs := text(c.Lang)
	regions := e.cat.Regions()

	children := make([]menu.Child, 0, len(regions)+6)
	for i, r := range regions {
		children = append(children, menu.Child{
			Token: strconv.Itoa(i + 1),
			Label: r.Name(c.Lang),
			Node:  e.regionNode(r),
		})
	}

	next := len(regions) + 1
	add := func(label string, n *menu.Node) {
		children = append(children, menu.Child{Token: strconv.Itoa(next), Label: label, Node: n})
		next++
	}
	add(cs.favoritesLabel, e.favoritesNode())
	add(cs.bookingsLabel, e.bookingsNode())
	add(cs.savingsLabel, e.savingsNode())
	add(cs.helpLabel, e.helpNode())
	add(cs.changeLangLabel, e.toggleLanguageNode())
	add(cs.exitLabel, e.exitNode())
	return children, nil
}

func (e *Engine) regionNode(r catalog.Region) *menu.Node {
	return &menu.Node{
		ID: "region-" + strconv.Itoa(r.ID),
		Prompt: func(c *menu.Context) string {
			return fmt.Sprintf(text(c.Lang).districtTitle, r.Name(c.Lang))
		},
		Children: e.districtChildren(r),
	}
}

// districtChildren is static: district names are not localized.
func (e *Engine) districtChildren(r catalog.Region) []menu.Child {
	children := make([]menu.Child, 0, len(r.Districts))
	for i, d := range r.Districts {
		children = append(children, menu.Child{
			Token: strconv.Itoa(i + 1),
			Label: d.Name,
			Node:  e.districtNode(d),
		})
	}
	return children
}

func (e *Engine) districtNode(d catalog.District) *menu.Node {
	return &menu.Node{
		ID: "district-" + d.Slug,
		Prompt: func(c *menu.Context) string {
			return fmt.Sprintf(text(c.Lang).placesTitle, d.Name)
		},
		Empty: func(c *menu.Context) string { return text(c.Lang).noPlaces },
		Generate: func(c *menu.Context) ([]menu.Child, error) {
			children := make([]menu.Child, 0, len(d.Places))
			for i, p := range d.Places {
				label := fmt.Sprintf("%s\n   💰 %s\n   %s",
					p.Name(c.Lang),
					catalog.PriceLabel(p.Price, c.Lang),
					catalog.RatingStars(p.Rating))
				children = append(children, menu.Child{
					Token: strconv.Itoa(i + 1),
					Label: label,
					Node:  e.placeNode(p),
				})
			}
			return children, nil
		},
	}
}

func (e *Engine) placeNode(p catalog.Place) *menu.Node {
	return &menu.Node{
		ID: "place-" + p.ID,
		Prompt: func(c *menu.Context) string {
			return fmt.Sprintf("%s\n💰 %s\n%s\n",
				p.Name(c.Lang),
				catalog.PriceLabel(p.Price, c.Lang),
				catalog.RatingStars(p.Rating))
		},
		Generate: func(c *menu.Context) ([]menu.Child, error) {
			cs := text(c.Lang)
			return []menu.Child{
				{Token: "1", Label: cs.detailDetails, Node: e.placeDetailsNode(p)},
				{Token: "2", Label: cs.detailFavorite, Node: e.addFavoriteNode(p)},
				{Token: "3", Label: cs.detailBook, Node: e.bookVisitNode(p)},
				{Token: "4", Label: cs.detailHelp, Node: e.helpNode()},
			}, nil
		},
	}
}

func (e *Engine) placeDetailsNode(p catalog.Place) *menu.Node {
	return &menu.Node{
		ID: "details-" + p.ID,
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			cs := text(c.Lang)
			sms := fmt.Sprintf(cs.smsDetails,
				p.Name(c.Lang),
				catalog.PriceLabel(p.Price, c.Lang),
				catalog.RatingStars(p.Rating),
				e.supportPhone)
			return menu.Result{Text: cs.detailsSent, End: true, SMS: sms}, nil
		},
	}
}

func (e *Engine) addFavoriteNode(p catalog.Place) *menu.Node {
	return &menu.Node{
		ID: "favorite-" + p.ID,
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			s.Favorites = append(s.Favorites, domain.PlaceRef{
				PlaceID: p.ID,
				Name:    p.Name(c.Lang),
				Price:   p.Price,
				Rating:  p.Rating,
			})
			return menu.Result{Text: text(c.Lang).favoriteAdded, End: true}, nil
		},
	}
}

func (e *Engine) bookVisitNode(p catalog.Place) *menu.Node {
	return &menu.Node{
		ID: "book-" + p.ID,
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			booking := domain.Booking{
				ID: e.ids.NewID(),
				Place: domain.PlaceRef{
					PlaceID: p.ID,
					Name:    p.Name(c.Lang),
					Price:   p.Price,
					Rating:  p.Rating,
				},
				Date: e.clock().AddDate(0, 0, e.leadDays),
			}
			s.Bookings = append(s.Bookings, booking)

			cs := text(c.Lang)
			sms := fmt.Sprintf(cs.smsBooking,
				booking.ID,
				booking.Place.Name,
				booking.Date.Format(dateDisplayLayout),
				catalog.PriceLabel(p.Price, c.Lang),
				e.supportPhone)
			return menu.Result{Text: cs.bookingConfirmed, End: true, SMS: sms}, nil
		},
	}
}

func (e *Engine) favoritesNode() *menu.Node {
	return &menu.Node{
		ID:     "favorites",
		Prompt: func(c *menu.Context) string { return text(c.Lang).favoritesTitle },
		Empty:  func(c *menu.Context) string { return text(c.Lang).noFavorites },
		Generate: func(c *menu.Context) ([]menu.Child, error) {
			children := make([]menu.Child, 0, len(c.Session.Favorites))
			for i, fav := range c.Session.Favorites {
				children = append(children, menu.Child{
					Token: strconv.Itoa(i + 1),
					Label: fav.Name,
					Node:  e.placeRefNode("favorite-entry", i, fav),
				})
			}
			return children, nil
		},
	}
}

func (e *Engine) bookingsNode() *menu.Node {
	return &menu.Node{
		ID:     "bookings",
		Prompt: func(c *menu.Context) string { return text(c.Lang).bookingsTitle },
		Empty:  func(c *menu.Context) string { return text(c.Lang).noBookings },
		Generate: func(c *menu.Context) ([]menu.Child, error) {
			children := make([]menu.Child, 0, len(c.Session.Bookings))
			for i, b := range c.Session.Bookings {
				label := b.Place.Name + " - " + b.Date.Format(dateDisplayLayout)
				booking := b
				children = append(children, menu.Child{
					Token: strconv.Itoa(i + 1),
					Label: label,
					Node: &menu.Node{
						ID: "booking-entry-" + strconv.Itoa(i+1),
						Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
							body := fmt.Sprintf("🎫 %s\n📍 %s\n📅 %s\n💰 %s",
								booking.ID,
								booking.Place.Name,
								booking.Date.Format(dateDisplayLayout),
								catalog.PriceLabel(booking.Place.Price, c.Lang))
							return menu.Result{Text: e.withBack(c.Lang, body)}, nil
						},
					},
				})
			}
			return children, nil
		},
	}
}

// placeRefNode renders a stored place reference as an informational
// continuation leaf.
func (e *Engine) placeRefNode(kind string, index int, ref domain.PlaceRef) *menu.Node {
	return &menu.Node{
		ID: kind + "-" + strconv.Itoa(index+1),
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			body := fmt.Sprintf("%s\n💰 %s\n%s",
				ref.Name,
				catalog.PriceLabel(ref.Price, c.Lang),
				catalog.RatingStars(ref.Rating))
			return menu.Result{Text: e.withBack(c.Lang, body)}, nil
		},
	}
}

func (e *Engine) savingsNode() *menu.Node {
	return &menu.Node{
		ID:     "savings",
		Prompt: func(c *menu.Context) string { return text(c.Lang).savingsTitle },
		Generate: func(c *menu.Context) ([]menu.Child, error) {
			cs := text(c.Lang)
			return []menu.Child{
				{Token: "1", Label: cs.depositLabel, Node: e.depositNode()},
				{Token: "2", Label: cs.balanceLabel, Node: e.balanceNode()},
				{Token: "3", Label: cs.goalsLabel, Node: e.goalsNode()},
			}, nil
		},
	}
}

func (e *Engine) depositNode() *menu.Node {
	return &menu.Node{
		ID: "deposit",
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			return menu.Result{StartWizard: flowSave}, nil
		},
	}
}

func (e *Engine) balanceNode() *menu.Node {
	return &menu.Node{
		ID: "balance",
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			cs := text(c.Lang)
			body := fmt.Sprintf(cs.balanceText,
				catalog.PriceLabel(s.SavingsTotal, c.Lang), s.Streak, s.Points)
			return menu.Result{Text: e.withBack(c.Lang, body)}, nil
		},
	}
}

func (e *Engine) goalsNode() *menu.Node {
	return &menu.Node{
		ID:     "goals",
		Prompt: func(c *menu.Context) string { return text(c.Lang).goalsTitle },
		Generate: func(c *menu.Context) ([]menu.Child, error) {
			cs := text(c.Lang)
			children := []menu.Child{
				{Token: "1", Label: cs.createGoalLabel, Node: e.createGoalNode()},
			}
			for i, g := range c.Session.Goals {
				goal := g
				children = append(children, menu.Child{
					Token: strconv.Itoa(i + 2),
					Label: goal.Title,
					Node: &menu.Node{
						ID: "goal-entry-" + strconv.Itoa(i+1),
						Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
							cs := text(c.Lang)
							body := fmt.Sprintf(cs.goalDetail,
								goal.Title,
								catalog.PriceLabel(goal.Target, c.Lang),
								catalog.PriceLabel(goal.Saved, c.Lang),
								goal.Deadline.Format(dateDisplayLayout),
								statusLabel(cs, goal.Status))
							return menu.Result{Text: e.withBack(c.Lang, body)}, nil
						},
					},
				})
			}
			return children, nil
		},
	}
}

func (e *Engine) createGoalNode() *menu.Node {
	return &menu.Node{
		ID: "create-goal",
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			return menu.Result{StartWizard: flowGoal}, nil
		},
	}
}

func (e *Engine) helpNode() *menu.Node {
	return &menu.Node{
		ID: "help",
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			cs := text(c.Lang)
			return menu.Result{Text: e.withBack(c.Lang, fmt.Sprintf(cs.helpText, e.supportPhone))}, nil
		},
	}
}

// toggleLanguageNode flips the stored language and lands back on the main
// menu so deeper tokens on the same path keep resolving.
func (e *Engine) toggleLanguageNode() *menu.Node {
	return &menu.Node{
		ID: "toggle-language",
		Enter: func(s *domain.Session, c *menu.Context) {
			s.Language = displayLang(s).Toggle()
			c.Lang = s.Language
		},
		Redirect: func() *menu.Node { return e.main },
	}
}

func (e *Engine) exitNode() *menu.Node {
	return &menu.Node{
		ID: "exit",
		Action: func(s *domain.Session, c *menu.Context) (menu.Result, error) {
			return menu.Result{Text: text(c.Lang).exitText, End: true}, nil
		},
	}
}
