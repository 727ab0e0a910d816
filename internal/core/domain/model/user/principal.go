package user

import (
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID    kernel.UUID
	Email     string
	Role      Role
	StoreID   *kernel.UUID
	CourierID *kernel.UUID
}

func (p Principal) IsStore() bool {
	return p.Role == RoleStore
}

// ScopeStoreID narrows a requested store filter for store-role principals: they only
// ever see their own store. Other roles keep the requested filter.
func (p Principal) ScopeStoreID(requested *kernel.UUID) (*kernel.UUID, error) {
	if !p.IsStore() {
		return requested, nil
	}
	if p.StoreID == nil {
		return nil, errs.NewUnauthorizedError("store user has no store")
	}
	return p.StoreID, nil
}
