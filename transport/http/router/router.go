package router

import (
	"github.com/go-chi/chi/v5"

	"lakeside/internal/handlers/auth"
	"lakeside/internal/handlers/booking"
	"lakeside/internal/handlers/feedback"
	"lakeside/internal/handlers/gallery"
	"lakeside/internal/handlers/room"
	"lakeside/internal/handlers/user"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Room     room.Handler
	Booking  booking.Handler
	Gallery  gallery.Handler
	Feedback feedback.Handler
	User     user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Feedback.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
