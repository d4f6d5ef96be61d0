package router

import (
	"cowork/internal/handlers/auth"
	"cowork/internal/handlers/booking"
	"cowork/internal/handlers/cafeteria"
	"cowork/internal/handlers/invoice"
	"cowork/internal/handlers/kyc"
	"cowork/internal/handlers/meetingroom"
	"cowork/internal/handlers/space"
	"cowork/internal/handlers/teammember"
	"cowork/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Space       space.Handler
	Booking     booking.Handler
	Kyc         kyc.Handler
	TeamMember  teammember.Handler
	MeetingRoom meetingroom.Handler
	Cafeteria   cafeteria.Handler
	Invoice     invoice.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Space.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Kyc.Router(routerGroup)
		r.DomainHandlers.TeamMember.Router(routerGroup)
		r.DomainHandlers.MeetingRoom.Router(routerGroup)
		r.DomainHandlers.Cafeteria.Router(routerGroup)
		r.DomainHandlers.Invoice.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
