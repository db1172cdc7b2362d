package server

const (
	RouteSessions        = "/api/sessions"
	RouteSessionsRefresh = "/api/sessions/refresh"
	RouteUsers           = "/api/users"
	RouteUsersMe         = "/api/users/me"
	RouteVerifyUser      = "/api/users/verify/{userID}/{verificationCode}"
	RouteForgotPassword  = "/api/users/forgotpassword"
	RouteResetPassword   = "/api/users/resetpassword/{userID}/{passwordResetCode}"
	RouteHealthz         = "/healthz"
)

func (s *Server) initRoutes() {
	// Sessions
	s.registerRouteFunc("POST "+RouteSessions, ChainMiddleware(s.CreateSessionHandler(), s.apiMiddleware()...))
	s.registerRouteFunc("POST "+RouteSessionsRefresh, ChainMiddleware(s.RefreshSessionHandler(), s.apiMiddleware()...))
	s.registerRouteFunc("DELETE "+RouteSessions, ChainMiddleware(s.DeleteSessionHandler(), s.protectedMiddleware()...))

	// Users
	s.registerRouteFunc("POST "+RouteUsers, ChainMiddleware(s.CreateUserHandler(), s.apiMiddleware()...))
	s.registerRouteFunc("POST "+RouteVerifyUser, ChainMiddleware(s.VerifyUserHandler(), s.apiMiddleware()...))
	s.registerRouteFunc("POST "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordHandler(), s.apiMiddleware()...))
	s.registerRouteFunc("POST "+RouteResetPassword, ChainMiddleware(s.ResetPasswordHandler(), s.apiMiddleware()...))
	s.registerRouteFunc("GET "+RouteUsersMe, ChainMiddleware(s.CurrentUserHandler(), s.protectedMiddleware()...))

	s.registerRouteFunc("GET "+RouteHealthz, s.HealthHandler())
}
