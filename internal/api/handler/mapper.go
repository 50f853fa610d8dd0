package handler

import (
	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// --- Request → Service input ---

func toRegistration(req registerRequest) ports.Registration {
	return ports.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	}
}

func toUserUpdate(req updateUserRequest) ports.UserUpdate {
	return ports.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      domain.Role(req.Role),
		Password:  req.Password,
	}
}

func toAppointmentEdit(req updateAppointmentRequest) ports.AppointmentEdit {
	return ports.AppointmentEdit{
		Date:       req.Date,
		Clock:      req.Time,
		Status:     domain.AppointmentStatus(req.Status),
		Notes:      req.Notes,
		UserRef:    req.UserID,
		ServiceRef: req.ServiceID,
	}
}

func toServiceUpdate(req updateServiceRequest) ports.ServiceUpdate {
	return ports.ServiceUpdate{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
	}
}

// --- Service output → Response ---

func toSessionResponse(sess domain.Session, menu ports.Menu) sessionResponse {
	resp := sessionResponse{Authenticated: sess.Authenticated(), Menu: menu}
	if sess.Authenticated() && sess.User != nil {
		u := *sess.User
		resp.User = &u
	}
	return resp
}
