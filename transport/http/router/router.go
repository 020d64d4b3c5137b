package router

import (
	"litrato/internal/handlers/auth"
	"litrato/internal/handlers/availability"
	"litrato/internal/handlers/booking"
	"litrato/internal/handlers/bookingrequest"
	"litrato/internal/handlers/packages"
	"litrato/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth           auth.Handler
	User           user.Handler
	Package        packages.Handler
	Availability   availability.Handler
	BookingRequest bookingrequest.Handler
	Booking        booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Package.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.BookingRequest.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
