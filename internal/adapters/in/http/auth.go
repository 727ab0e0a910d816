package http

import (
	"net/http"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/user"
	"montarota/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var (
	errAdminRegistrationForbidden  = errs.NewUnauthorizedError("only admins may register admin users")
	errLinkedRegistrationForbidden = errs.NewUnauthorizedError("only admins may link users to a store or courier")
)

// Login handles POST /api/auth/login - exchanges credentials for a bearer token.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return err
	}
	res, err := s.cmd.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      newUserView(res.User),
	})
}

// Register handles POST /api/auth/register - creates a user account.
// Admin accounts, and accounts linked to a store or courier, can only be
// created by an authenticated admin.
func (s *Server) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, ok := principalFrom(c)
	callerIsAdmin := ok && p.Role == user.RoleAdmin
	switch {
	case user.Role(req.Role) == user.RoleAdmin && !callerIsAdmin:
		return errAdminRegistrationForbidden
	case (req.StoreID != nil || req.CourierID != nil) && !callerIsAdmin:
		return errLinkedRegistrationForbidden
	}

	storeID, err := optionalID(req.StoreID)
	if err != nil {
		return err
	}
	courierID, err := optionalID(req.CourierID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), req.Name, req.Email, req.Password, req.Role,
		storeID, courierID)
	if err != nil {
		return err
	}
	created, err := s.cmd.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: created.ID().Bytes()})
}
