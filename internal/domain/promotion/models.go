package promotion

import "hrpay/internal/domain/employee"

// Outcome names what a state-machine call did. The "nothing" outcomes are
// reported results, not errors, and leave the record untouched.
type Outcome string

const (
	OutcomeProposed         Outcome = "proposed"
	OutcomeConfirmed        Outcome = "confirmed"
	OutcomeRejected         Outcome = "rejected"
	OutcomeNothingToConfirm Outcome = "nothing_to_confirm"
	OutcomeNothingToReject  Outcome = "nothing_to_reject"
)

type Result struct {
	Outcome  Outcome           `json:"outcome"`
	Employee employee.Employee `json:"employee"`
	// Restored is set by a reject that reverted the position.
	Restored *employee.Position `json:"restored,omitempty"`
}

const (
	actionPropose = "promotion.propose"
	actionConfirm = "promotion.confirm"
	actionReject  = "promotion.reject"
)
