package middleware

import (
	"context"
	"errors"
	"net/http"
	"rental/config"
	"rental/infras/jwt"
	"rental/infras/otel"
	"rental/permissions"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// internalCall marks requests authenticated with the service API key.
type internalCall struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole resolves who is calling and whether the route lets them in.
type AuthRole interface {
	Auth
	Role
}

type guard struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &guard{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func isInternal(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCall{}).(bool)

	return internal
}

// route finds the permission entry for the chi pattern the request resolves to.
func (g *guard) route(r *http.Request) (string, permissions.Permission) {
	pattern := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.Routes != nil {
		pattern = rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)
	}

	if g.permission == nil {
		return pattern, permissions.Permission{}
	}

	return pattern, g.permission.FindPermissions(pattern, r.Method)
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	default:
		return "Token validation failed"
	}
}

// Auth turns a bearer access token into the caller identity on the request context.
// Internal calls and public routes pass through without one.
func (g *guard) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := g.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		pattern, permission := g.route(r)
		if isInternal(ctx) || permission.Skip {
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.route":      pattern,
			"http.method":     r.Method,
		})

		header := r.Header.Get(constant.RequestHeaderAuthorization)
		if header == constant.Empty {
			g.reject(w, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		token, err := jwt.ExtractTokenFromHeader(header)
		if err != nil {
			g.reject(w, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := g.jwtService.ValidateToken(ctx, token, jwt.AccessToken)
		if err != nil {
			g.reject(w, scope, failure.Unauthorized(tokenMessage(err)))

			return
		}

		if claims.UserID == constant.Empty || claims.Role == constant.Empty {
			log.Warn().Str("user_id", claims.UserID).Msg("access token without subject or role")
			g.reject(w, scope, failure.Unauthorized(tokenMessage(jwt.ErrInvalidClaim)))

			return
		}

		for key, value := range map[any]string{
			constant.ContextKeyUserID:    claims.UserID,
			constant.ContextKeyUserEmail: claims.Email,
			constant.ContextKeyUserRole:  claims.Role,
			constant.ContextKeyUserName:  claims.Name,
			constant.ContextKeyTokenID:   claims.TokenID,
		} {
			ctx = context.WithValue(ctx, key, value)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RBAC checks the caller role against the roles listed for the route. Unlisted routes only need a login.
func (g *guard) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := g.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if isInternal(ctx) {
			next.ServeHTTP(w, r)

			return
		}

		if g.permission == nil {
			g.reject(w, scope, failure.ForbiddenError)

			return
		}

		_, permission := g.route(r)
		if g.permission.Skip || permission.Skip {
			next.ServeHTTP(w, r)

			return
		}

		actor := permissions.ActorFromContext(ctx)
		if !permission.Allows(actor.Role) {
			scope.SetAttributes(map[string]any{
				"user.role":     actor.Role,
				"allowed_roles": permission.Permissions,
			})
			g.reject(w, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// APIKey lets other services through with the shared key. A wrong key is refused outright.
func (g *guard) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, scope := g.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := r.Header.Get(constant.RequestHeaderAPIKey)
		if key == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if g.cfg.App.APIKey == constant.Empty || key != g.cfg.App.APIKey {
			g.reject(w, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), internalCall{}, true)))
	})
}

func (g *guard) reject(w http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(w, err)
}
