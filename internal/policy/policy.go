// Package policy decides which staff members may use the admin API.
package policy

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/open-policy-agent/opa/rego"
)

type Action string

const (
	ActionViewOccupancy Action = "view_occupancy"
	ActionListBookings  Action = "list_bookings"
	ActionCancelBooking Action = "cancel_booking"
)

//go:embed admin.rego
var adminPolicy string

type Authorizer interface {
	Allowed(ctx context.Context, user *domain.User, action Action) (bool, error)
}

// RegoAuthorizer evaluates the embedded admin policy.
type RegoAuthorizer struct {
	query rego.PreparedEvalQuery
}

func NewRegoAuthorizer(ctx context.Context) (*RegoAuthorizer, error) {
	query, err := rego.New(
		rego.Query("data.bus.admin.allow"),
		rego.Module("admin.rego", adminPolicy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare admin policy: %w", err)
	}

	return &RegoAuthorizer{query: query}, nil
}

func (a *RegoAuthorizer) Allowed(ctx context.Context, user *domain.User, action Action) (bool, error) {
	if user == nil {
		return false, nil
	}

	input := map[string]any{
		"user": map[string]any{
			"id":     user.ID,
			"role":   string(user.Role),
			"active": user.IsActive,
		},
		"action": string(action),
	}

	rs, err := a.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate admin policy: %w", err)
	}

	return rs.Allowed(), nil
}
