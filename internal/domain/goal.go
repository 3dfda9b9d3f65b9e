package domain

import "time"

// GoalStatus enumerates the lifecycle states of a savings goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

// Goal is a multi-step savings target created by the goal wizard.
type Goal struct {
	ID       string     `json:"id"`
	OwnerID  string     `json:"owner_id"`
	Title    string     `json:"title"`
	Target   int        `json:"target"`
	Saved    int        `json:"saved"`
	Deadline time.Time  `json:"deadline"`
	Status   GoalStatus `json:"status"`
}

// Credit applies an amount toward the goal and completes it once the
// target is reached. Deposits recorded via Session.ApplySave do not call
// this; the two ledgers are linked by the caller, not here.
func (g *Goal) Credit(amount int) {
	if g.Status != GoalActive {
		return
	}
	g.Saved += amount
	if g.Saved >= g.Target {
		g.Status = GoalCompleted
	}
}
