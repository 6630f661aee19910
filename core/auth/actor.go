package auth

import (
	entity "github.com/ghogue02/leora-admin-portal-sub016/model/entity"
)

// Actor is the acting identity resolved by the auth middleware: tenant,
// scope and the assigned-customer set used for per-customer authorization.
type Actor struct {
	ID          uint
	TenantID    string
	Scope       string
	CustomerIDs []uint
}

// Elevated reports whether the actor may act on any customer's orders.
func (a *Actor) Elevated() bool {
	return a.Scope == entity.ScopeManager || a.Scope == entity.ScopeAdmin
}

// HasCustomer reports whether the customer is in the actor's assigned set.
func (a *Actor) HasCustomer(customerID uint) bool {
	for _, id := range a.CustomerIDs {
		if id == customerID {
			return true
		}
	}
	return false
}

// SystemActor returns an elevated actor for service-to-service calls
// (static key or basic auth) and background jobs like the expiry sweep.
func SystemActor(tenantID string) *Actor {
	return &Actor{ID: 0, TenantID: tenantID, Scope: entity.ScopeAdmin}
}
