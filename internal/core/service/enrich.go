package service

import (
	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

// Directory resolves appointment references against fetched collections.
// A nil user index means user references are not resolved at all (the
// user-scoped listing only needs services).
type Directory struct {
	services map[string]domain.Service
	users    map[string]domain.User
	log      zerolog.Logger
}

func NewDirectory(services []domain.Service, users []domain.User, log zerolog.Logger) *Directory {
	d := &Directory{
		services: make(map[string]domain.Service, len(services)),
		log:      log,
	}
	for _, s := range services {
		d.services[s.ID] = s
	}
	if users != nil {
		d.users = make(map[string]domain.User, len(users))
		for _, u := range users {
			d.users[u.ID] = u
		}
	}
	return d
}

// Enrich joins every appointment. It never fails: dangling references become
// placeholders and the rest of the list is unaffected.
func (d *Directory) Enrich(appts []domain.Appointment) []domain.AppointmentView {
	out := make([]domain.AppointmentView, 0, len(appts))
	for _, a := range appts {
		v := domain.AppointmentView{
			Appointment: a,
			Cancellable: a.Status.Cancellable(),
		}

		if svc, ok := d.services[a.ServiceRef]; ok && a.ServiceRef != "" {
			v.Service, v.ServiceResolved = svc, true
		} else {
			v.Service = domain.PlaceholderService(a.ServiceRef)
			d.log.Debug().Str("appointment_id", a.ID).Str("service_ref", a.ServiceRef).Msg("enrichment gap: service")
		}

		if d.users != nil {
			if u, ok := d.users[a.UserRef]; ok && a.UserRef != "" {
				v.User, v.UserResolved = u, true
			} else {
				v.User = domain.PlaceholderUser(a.UserRef)
				d.log.Debug().Str("appointment_id", a.ID).Str("user_ref", a.UserRef).Msg("enrichment gap: user")
			}
		}

		out = append(out, v)
	}
	return out
}
