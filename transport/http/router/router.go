package router

import (
	"rental/internal/handlers/auth"
	"rental/internal/handlers/booking"
	"rental/internal/handlers/document"
	"rental/internal/handlers/expense"
	"rental/internal/handlers/gallery"
	"rental/internal/handlers/pricing"
	"rental/internal/handlers/profit"
	"rental/internal/handlers/report"
	"rental/internal/handlers/unit"
	"rental/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Unit     unit.Handler
	Gallery  gallery.Handler
	Pricing  pricing.Handler
	Booking  booking.Handler
	Expense  expense.Handler
	Profit   profit.Handler
	Report   report.Handler
	Document document.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Unit.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Expense.Router(routerGroup)
		r.DomainHandlers.Profit.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.Document.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
