package echoapi

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

type accountAPI struct {
	store    portal.Store
	validate *validator.Validate
}

func registerAccountAPI(g *echo.Group, store portal.Store, validate *validator.Validate) {
	api := accountAPI{store: store, validate: validate}

	g.GET("/accounts", api.list)
	g.POST("/accounts", api.create)
	g.PUT("/accounts/:email", api.update)
}

func (api *accountAPI) list(ctx echo.Context) error {
	accounts, err := api.store.Accounts(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing accounts")
	}
	if accounts == nil {
		accounts = []portal.Account{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "accounts": accounts})
}

func (api *accountAPI) create(ctx echo.Context) error {
	var data portal.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	acc, err := api.store.CreateAccount(ctx.Request().Context(), data.Account())
	if err != nil {
		// a duplicate email is a normal failure result, not an HTTP fault
		if errors.Cause(err) == portal.ErrEmailExists {
			return ctx.JSON(http.StatusOK, errorResponse{Error: portal.ErrEmailExists.Error()})
		}
		return errors.Wrap(err, "creating account")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "account": acc})
}

func (api *accountAPI) update(ctx echo.Context) error {
	var patch portal.Patch
	if err := ctx.Bind(&patch); err != nil {
		return errors.Wrap(err, "binding to Patch")
	}

	email, err := url.PathUnescape(ctx.Param("email"))
	if err != nil {
		email = ctx.Param("email")
	}
	acc, err := api.store.UpdateAccount(ctx.Request().Context(), email, patch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "account": acc})
}
