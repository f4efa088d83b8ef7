package permissions

import (
	"context"
	"rental/shared/constant"
	"rental/shared/failure"
	"slices"
)

// Action is an operation guarded by the ownership predicate.
type Action string

const (
	ActionViewUnit       Action = "unit.view"
	ActionManageUnit     Action = "unit.manage"
	ActionCreateBooking  Action = "booking.create"
	ActionUpdateBooking  Action = "booking.update"
	ActionCancelBooking  Action = "booking.cancel"
	ActionManagePricing  Action = "pricing.manage"
	ActionManageHoliday  Action = "holiday.manage"
	ActionManageExpense  Action = "expense.manage"
	ActionManageProfit   Action = "profit.manage"
	ActionManageDocument Action = "document.manage"
	ActionViewReport     Action = "report.view"
)

var staffRoles = []string{constant.RoleSuperAdmin, constant.RoleAdmin}

// Actor is the authenticated principal performing an action.
type Actor struct {
	ID          string
	Role        string
	DisplayName string
}

func (a Actor) IsStaff() bool {
	return slices.Contains(staffRoles, a.Role)
}

// Owns reports whether the actor is the given owner. An empty owner never matches.
func (a Actor) Owns(ownerID string) bool {
	return ownerID != constant.Empty && a.ID != constant.Empty && ownerID == a.ID
}

// Resource carries the ownership facts of the object an action targets.
type Resource struct {
	OwnerID      string
	CreatedBy    string
	CustomerName string
}

// ActorFromContext builds the actor from the values set by the auth middleware.
func ActorFromContext(ctx context.Context) Actor {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	name, _ := ctx.Value(constant.ContextKeyUserName).(string)

	return Actor{ID: id, Role: role, DisplayName: name}
}

// Authorize is the single allow/deny predicate for ownership scoped actions.
func Authorize(actor Actor, action Action, resource Resource) bool {
	if actor.IsStaff() {
		return true
	}

	switch action {
	case ActionViewUnit, ActionCreateBooking, ActionUpdateBooking:
		return actor.Owns(resource.OwnerID)
	case ActionCancelBooking:
		if actor.Owns(resource.OwnerID) {
			return true
		}

		if resource.CreatedBy != constant.Empty && resource.CreatedBy == actor.ID {
			return true
		}

		// display name match is exact, case sensitive
		return actor.DisplayName != constant.Empty && actor.DisplayName == resource.CustomerName
	default:
		return false
	}
}

// Check returns an authorization failure when the predicate denies the action.
func Check(actor Actor, action Action, resource Resource) error {
	if Authorize(actor, action, resource) {
		return nil
	}

	return failure.Forbidden("you are not allowed to perform " + string(action)) //nolint:wrapcheck
}
