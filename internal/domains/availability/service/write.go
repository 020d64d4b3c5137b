package service

import (
	"context"
	"errors"

	"litrato/infras/postgres"
	"litrato/internal/domains/availability/schedule"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
)

// MapWriteError turns a lost race on the calendar into the same 409 a
// detected overlap produces. Other errors pass through.
func MapWriteError(err error) error {
	if errors.Is(err, postgres.ErrWriteContention) {
		return schedule.NewConflictError(nil)
	}

	return err
}

// Actor returns the caller id and role the auth middleware put on ctx.
func Actor(ctx context.Context) (id, role string) {
	id, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return id, role
}

// OwnedBy narrows filter to rows whose ownerField matches the caller when
// the caller is a customer. Staff and admins see everything.
func OwnedBy(ctx context.Context, filter gDto.FilterGroup, ownerField, table string) gDto.FilterGroup {
	user, role := Actor(ctx)
	if role != constant.RoleCustomer {
		return filter
	}

	own := gDto.Filter{ArgName: "owner_id", Field: ownerField, Operator: gDto.FilterOperatorEq, Value: user, Table: table}
	if len(filter.Filters) == 0 {
		return gDto.FilterGroup{Filters: []any{own}}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{filter, own},
	}
}
