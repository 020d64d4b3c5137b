package middleware

import (
	"context"
	"errors"
	"net/http"

	"litrato/config"
	"litrato/infras/jwt"
	"litrato/infras/otel"
	"litrato/permissions"
	"litrato/shared/constant"
	"litrato/shared/failure"
	"litrato/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string
type PermissionsKey string

const (
	skipAuthKey    = SkipAuthKey("skip")
	permissionsKey = PermissionsKey("permission")
)

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole guards the versioned API. APIKey runs first and lets internal
// callers through, Auth turns the bearer token into caller identity on the
// context, and RBAC matches the caller's role against permissions.json.
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// resolve returns the route pattern of the request and its permission entry.
// The entry is cached on the context so RBAC does not walk the routes again.
func (m *authRoleImpl) resolve(request *http.Request) (string, permissions.Permission) {
	if cached, ok := request.Context().Value(permissionsKey).(permissions.Permission); ok {
		return cached.Path, cached
	}

	rctx := chi.RouteContext(request.Context())
	if rctx == nil || m.permission == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	permission := m.permission.FindPermissions(path, request.Method)
	permission.Path = path

	return path, permission
}

func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(skipAuthKey).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path, permission := m.resolve(request)
		ctx = context.WithValue(ctx, permissionsKey, permission)

		// public catalog and calendar
		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		reject := func(err error) {
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			reject(failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			reject(failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				reject(failure.Unauthorized("Token has expired"))
			case errors.Is(err, jwt.ErrInvalidClaim):
				reject(failure.Unauthorized("Invalid token claims"))
			default:
				reject(failure.Unauthorized("Invalid token"))
			}

			return
		}

		if claims.Role == "" {
			log.Error().Str("user_id", claims.UserID).Msg("access token carries no role")
			reject(failure.Unauthorized("Invalid token claims"))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC must run after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skip, _ := ctx.Value(skipAuthKey).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		_, permission := m.resolve(request)
		if m.permission.Skip || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !permission.Allows(role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey marks requests from internal services that present the shared key.
// They act as admin under the system identity.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, skipAuthKey, false)))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, skipAuthKey, true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
