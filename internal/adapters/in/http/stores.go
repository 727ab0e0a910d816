package http

import (
	"net/http"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/store"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ListStores handles GET /api/stores - active stores ordered by name.
func (s *Server) ListStores(c echo.Context) error {
	stores, err := s.qry.ListStores.Handle(c.Request().Context(), queries.NewListStoresQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}

// GetStore handles GET /api/stores/:id.
func (s *Server) GetStore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetStoreQuery(id)
	if err != nil {
		return err
	}
	view, err := s.qry.GetStore.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// CreateStore handles POST /api/stores. A missing platform fee uses the default.
func (s *Server) CreateStore(c echo.Context) error {
	var req CreateStoreRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	fee := kernel.ZeroMoney()
	if req.PlatformFee != nil {
		var err error
		if fee, err = kernel.NewMoney(*req.PlatformFee); err != nil {
			return err
		}
	}

	cmd, err := commands.NewCreateStoreCommand(kernel.NewUUID(), store.Profile{
		Name:         req.Name,
		TaxID:        req.TaxID,
		Phone:        req.Phone,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		PostalCode:   req.PostalCode,
		ContactName:  req.ContactName,
		Email:        req.Email,
	}, fee)
	if err != nil {
		return err
	}
	created, err := s.cmd.CreateStore.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, queries.NewStoreView(created))
}

// UpdateStore handles PUT /api/stores/:id - applies the fields present in the body.
func (s *Server) UpdateStore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateStoreRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	if err = ensureOwnsStore(c, id); err != nil {
		return err
	}

	patch := store.Patch{
		Name:         req.Name,
		TaxID:        req.TaxID,
		Phone:        req.Phone,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		PostalCode:   req.PostalCode,
		ContactName:  req.ContactName,
		Email:        req.Email,
	}
	if patch.PlatformFee, err = optionalMoney(req.PlatformFee); err != nil {
		return err
	}
	if req.Status != nil {
		status, parseErr := store.ParseStatus(*req.Status)
		if parseErr != nil {
			return parseErr
		}
		patch.Status = &status
	}

	cmd, err := commands.NewUpdateStoreCommand(id, patch)
	if err != nil {
		return err
	}
	updated, err := s.cmd.UpdateStore.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries.NewStoreView(updated))
}

func optionalMoney(d *decimal.Decimal) (*kernel.Money, error) {
	if d == nil {
		return nil, nil //nolint:nilnil // absent value
	}
	m, err := kernel.NewMoney(*d)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
