package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

const (
	jwtContextKey      = "operatorToken"
	contextOperatorKey = "operator"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64    `json:"oriat,omitempty"`
	FullName     string   `json:"fullName,omitempty"`
	Email        string   `json:"email,omitempty"`
	Role         string   `json:"role,omitempty"`
	Classes      []string `json:"classes,omitempty"`
	IsAdmin      bool     `json:"is_admin,omitempty"`   // -> full visibility
	IsMusyrif    bool     `json:"is_musyrif,omitempty"` // -> assigned classes
	IsGuru       bool     `json:"is_guru,omitempty"`    // -> scheduled classes
}

// Scope translates the claims into the roster viewpoint used by analytics.
func (c Claims) Scope() roster.Scope {
	return roster.Scope{Role: c.Role, OperatorName: c.FullName, AssignedClasses: c.Classes}
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    conf.SecretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    jwtContextKey,
		Claims:        new(Claims),
	}
}

func GetOperatorClaims(conf *core.Config, op operator.Operator, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   op.ID,
			Audience:  "Mahasina",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		FullName:     op.FullName,
		Email:        op.Email,
		Role:         op.Role,
		Classes:      op.Classes,
		IsAdmin:      op.IsAdmin(),
		IsMusyrif:    op.IsMusyrif(),
		IsGuru:       op.IsGuru(),
	}
}

func authenticate(email, pwd string, conf *core.Config, svc *operator.Service) (*Claims, error) {
	op, err := svc.GetByEmail(email)
	if err != nil {
		if err == operator.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "finding operator by email")
	}
	if err = op.CheckPassword(pwd); err != nil {
		return nil, errAuthenticationFailed
	}
	op, err = svc.SetLastLogin(op)
	if err != nil {
		return nil, errors.Wrap(err, "setting lastLogin")
	}
	if err = svc.StartSession(op); err != nil {
		return nil, errors.Wrap(err, "starting session")
	}
	return GetOperatorClaims(conf, op), nil
}

// GenerateToken generates a signed JWT token string representing the operator Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(conf.SecretKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(jwtContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextOperator(ctx echo.Context, svc *operator.Service, clms ...Claims) (operator.Operator, error) {
	if op, ok := ctx.Get(contextOperatorKey).(operator.Operator); ok {
		return op, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return operator.Operator{}, errors.Wrap(err, "getting context claims")
		}
	}

	op, err := svc.GetByID(claims.Subject)
	if err != nil {
		return operator.Operator{}, errors.Wrap(err, "finding operator by ID")
	}
	ctx.Set(contextOperatorKey, op)
	return op, nil
}

func refreshToken(ctx echo.Context, conf *core.Config, svc *operator.Service) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	op, err := getContextOperator(ctx, svc, claims)
	if err != nil {
		return "", errors.Wrap(err, "getting context operator")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetOperatorClaims(conf, op, claims.OrigIssuedAt)
	token, err := GenerateToken(conf, newClaims)
	return token, errors.Wrap(err, "generating token")
}
