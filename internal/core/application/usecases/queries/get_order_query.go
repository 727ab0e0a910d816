package queries

import (
	"context"
	"errors"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

type GetOrderQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetOrderQuery(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ID() kernel.UUID {
	return q.id
}

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Raw("SELECT "+orderColumns+" FROM orders WHERE id = ?", query.ID().Bytes()).
		Scan(&rows).Error
	if err != nil {
		return OrderView{}, err
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.ID().String())
	}
	return rows[0].view(), nil
}
