package queries

import (
	"context"
	"errors"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/store"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrListStoresQueryIsNotConstructed = errors.New("ListStoresQuery must be created via NewListStoresQuery constructor")
	ErrGetStoreQueryIsNotConstructed   = errors.New("GetStoreQuery must be created via NewGetStoreQuery constructor")
)

const storeColumns = `id, name, tax_id, phone, address, neighborhood, city, postal_code,
	contact_name, email, platform_fee, status`

type storeRow struct {
	ID           uuid.UUID
	Name         string
	TaxID        string
	Phone        string
	Address      string
	Neighborhood string
	City         string
	PostalCode   string
	ContactName  string
	Email        string
	PlatformFee  decimal.Decimal
	Status       string
}

func (r storeRow) view() StoreView {
	return StoreView{
		ID:           r.ID,
		Name:         r.Name,
		TaxID:        r.TaxID,
		Phone:        r.Phone,
		Address:      r.Address,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		PostalCode:   r.PostalCode,
		ContactName:  r.ContactName,
		Email:        r.Email,
		PlatformFee:  moneyString(r.PlatformFee),
		Status:       r.Status,
	}
}

// ListStoresQuery lists active stores by name.
type ListStoresQuery struct {
	guard guard.ConstructorGuard
}

func NewListStoresQuery() ListStoresQuery {
	return ListStoresQuery{guard: guard.NewConstructorGuard()}
}

func (q ListStoresQuery) Validate() error {
	return q.guard.Validate(ErrListStoresQueryIsNotConstructed)
}

type ListStoresQueryHandler struct {
	db *gorm.DB
}

func NewListStoresQueryHandler(db *gorm.DB) ListStoresQueryHandler {
	return ListStoresQueryHandler{db: db}
}

func (h ListStoresQueryHandler) Handle(ctx context.Context, query ListStoresQuery) ([]StoreView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+storeColumns+`
		FROM stores
		WHERE status = ?
		ORDER BY name
	`, string(store.Active)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]StoreView, 0)
	for rows.Next() {
		var r storeRow
		if err = h.db.ScanRows(rows, &r); err != nil {
			return nil, err
		}
		stores = append(stores, r.view())
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

type GetStoreQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetStoreQuery(id kernel.UUID) (GetStoreQuery, error) {
	if err := id.Validate(); err != nil {
		return GetStoreQuery{}, err
	}
	return GetStoreQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStoreQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreQueryIsNotConstructed)
}

type GetStoreQueryHandler struct {
	db *gorm.DB
}

func NewGetStoreQueryHandler(db *gorm.DB) GetStoreQueryHandler {
	return GetStoreQueryHandler{db: db}
}

func (h GetStoreQueryHandler) Handle(ctx context.Context, query GetStoreQuery) (StoreView, error) {
	if err := query.Validate(); err != nil {
		return StoreView{}, err
	}

	var rows []storeRow
	err := h.db.WithContext(ctx).
		Raw("SELECT "+storeColumns+" FROM stores WHERE id = ?", query.id.Bytes()).
		Scan(&rows).Error
	if err != nil {
		return StoreView{}, err
	}
	if len(rows) == 0 {
		return StoreView{}, errs.NewObjectNotFoundError("store", query.id.String())
	}
	return rows[0].view(), nil
}
