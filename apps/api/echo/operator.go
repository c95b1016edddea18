package echoapi

import (
	"net/http"
	"sort"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

var errOpNotFoundInCtx = errors.New("operator object not found in echo.Context")

type operatorApi struct {
	conf       *core.Config
	svc        *operator.Service
	store      *document.Store
	validate   *validator.Validate
	translator ut.Translator
}

func registerOperatorAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := operatorApi{
		conf:       opts.Conf,
		svc:        opts.OperatorSvc,
		store:      opts.Store,
		validate:   opts.Validate,
		translator: opts.Translator,
	}

	og := g.Group("/operators")

	// un-authed endpoints
	og.POST("/login", api.login)
	og.POST("/register", api.create)

	// authed endpoints
	ag := og.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.POST("/logout", api.logout)
	ag.GET("/me", api.me)
	ag.GET("", api.query, adminMiddleware())
	ag.DELETE("", api.destroyMultiple, adminMiddleware())
	ag.GET("/roles", api.queryRoles)

	// detail endpoints
	dg := ag.Group("/:id", ctxOperatorOrAdminMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy, adminMiddleware())
}

// Handlers

func (api *operatorApi) create(ctx echo.Context) error {
	var data operator.NewOperator
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewOperator")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	op, err := api.svc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering operator")
	}

	return ctx.JSON(http.StatusCreated, op)
}

func (api *operatorApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(data.Email, data.Password, api.conf, api.svc)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}

	// the document keeps a profile snapshot of whoever uses this device
	if op, err := api.svc.GetByID(claims.Subject); err == nil {
		profile := document.ProfileOf(op)
		if _, err = api.store.SetProfile(&profile); err != nil {
			return errors.Wrap(err, "storing profile snapshot")
		}
	}

	token, err := GenerateToken(api.conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

// logout clears the session identity slot only; the document stays put.
func (api *operatorApi) logout(ctx echo.Context) error {
	if err := api.svc.EndSession(); err != nil {
		return errors.Wrap(err, "ending session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *operatorApi) me(ctx echo.Context) error {
	op, err := getContextOperator(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context operator")
	}
	return ctx.JSON(http.StatusOK, op)
}

func (api *operatorApi) query(ctx echo.Context) error {
	ops, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying operators")
	}
	if ops == nil {
		ops = []operator.Operator{}
	}
	return ctx.JSON(http.StatusOK, ops)
}

func (api *operatorApi) retrieve(ctx echo.Context) error {
	op, ok := ctx.Get("object").(operator.Operator)
	if !ok {
		return errors.Wrap(errOpNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, op)
}

func (api *operatorApi) update(ctx echo.Context) error {
	op, ok := ctx.Get("object").(operator.Operator)
	if !ok {
		return errors.Wrap(errOpNotFoundInCtx, "retrieving object from context")
	}

	var data operator.UpdateOperator
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateOperator")
	}

	ctxOp, err := getContextOperator(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context operator")
	}
	if !ctxOp.IsAdmin() {
		// role and class assignments can only be changed by admin
		if data.Role != "" && data.Role != op.Role {
			return errHttpForbidden
		}
		if data.Classes != nil {
			return errHttpForbidden
		}
	}

	if err := data.Validate(api.validate, op, api.svc); err != nil {
		return err
	}

	op, err = api.svc.Update(op.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating operator")
	}

	return ctx.JSON(http.StatusOK, op)
}

func (api *operatorApi) destroy(ctx echo.Context) error {
	op, ok := ctx.Get("object").(operator.Operator)
	if !ok {
		return errors.Wrap(errOpNotFoundInCtx, "retrieving object from context")
	}

	// Say No to Suicide! ctxOperator cannot delete themselves
	ctxOp, err := getContextOperator(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context operator")
	}
	if op.ID == ctxOp.ID {
		return errHttpForbidden
	}

	if err := api.svc.Delete(op.ID); err != nil {
		return errors.Wrap(err, "deleting operator")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *operatorApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	// Say No to Suicide! ctxOperator cannot delete themselves
	ctxOp, err := getContextOperator(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context operator")
	}
	sort.Strings(query.IDs)
	if i := sort.SearchStrings(query.IDs, ctxOp.ID); i < len(query.IDs) {
		if match := query.IDs[i]; ctxOp.ID == match {
			return errHttpForbidden
		}
	}

	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting operators")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *operatorApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, operator.AllRoles)
}

func (api *operatorApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.conf, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func ctxOperatorOrAdminMiddleware(svc *operator.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctxOp, err := getContextOperator(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context operator")
			}

			if ctx.Param("id") == ctxOp.ID || ctxOp.IsAdmin() {
				if op, err := svc.GetByID(ctx.Param("id")); err == nil {
					ctx.Set("object", op)
					return next(ctx)
				} else if errors.Cause(err) != operator.ErrNotFound {
					return errors.Wrap(err, "finding operator by ID")
				}
			}
			return errHttpNotFound
		}
	}
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
