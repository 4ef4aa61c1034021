package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/api/responses"
	"github.com/agrisetu/agrisetu-backend/api/validators"
	"github.com/agrisetu/agrisetu-backend/internal/bookings"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	pkgerrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
)

type createLabourRequest struct {
	UserID        uuid.UUID  `json:"user_id" validate:"required"`
	Skill         string     `json:"skill" validate:"required"`
	Workers       int        `json:"workers" validate:"required,min=1"`
	WorkDate      *time.Time `json:"work_date,omitempty"`
	Total         string     `json:"total" validate:"required"`
	PaymentMethod string     `json:"payment_method" validate:"required"`
}

type labourBookingResponse struct {
	ID                uuid.UUID  `json:"id"`
	BookingNumber     string     `json:"booking_number"`
	UserID            uuid.UUID  `json:"user_id"`
	PartnerID         *uuid.UUID `json:"partner_id,omitempty"`
	Skill             string     `json:"skill"`
	Workers           int        `json:"workers"`
	Total             string     `json:"total"`
	PaymentMethod     string     `json:"payment_method"`
	PaymentStatus     string     `json:"payment_status"`
	RefundAmount      string     `json:"refund_amount"`
	Status            string     `json:"status"`
	SettlementApplied bool       `json:"settlement_applied"`
}

func newLabourBookingResponse(booking *models.LabourBooking) labourBookingResponse {
	return labourBookingResponse{
		ID:                booking.ID,
		BookingNumber:     booking.BookingNumber,
		UserID:            booking.UserID,
		PartnerID:         booking.PartnerID,
		Skill:             booking.Skill,
		Workers:           booking.Workers,
		Total:             booking.Total.StringFixed(2),
		PaymentMethod:     string(booking.PaymentMethod),
		PaymentStatus:     string(booking.PaymentStatus),
		RefundAmount:      booking.RefundAmount.StringFixed(2),
		Status:            string(booking.Status),
		SettlementApplied: booking.SettlementApplied,
	}
}

// CreateLabourBooking books farm labour. Wallet payments debit the requester
// at booking time.
func CreateLabourBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		var payload createLabourRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		total, method, err := parseBookingPayment(payload.Total, payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.CreateLabour(r.Context(), bookings.CreateLabourInput{
			UserID:        payload.UserID,
			Skill:         payload.Skill,
			Workers:       payload.Workers,
			WorkDate:      payload.WorkDate,
			Total:         total,
			PaymentMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newLabourBookingResponse(booking))
	}
}

// GetLabourBooking reads one labour booking.
func GetLabourBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		id, err := uuidParam(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.GetLabourByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newLabourBookingResponse(booking))
	}
}

type createTransportRequest struct {
	UserID        uuid.UUID  `json:"user_id" validate:"required"`
	VehicleType   string     `json:"vehicle_type" validate:"required"`
	DistanceKM    string     `json:"distance_km" validate:"required"`
	PickupDate    *time.Time `json:"pickup_date,omitempty"`
	Total         string     `json:"total" validate:"required"`
	PaymentMethod string     `json:"payment_method" validate:"required"`
}

type transportBookingResponse struct {
	ID                uuid.UUID  `json:"id"`
	BookingNumber     string     `json:"booking_number"`
	UserID            uuid.UUID  `json:"user_id"`
	PartnerID         *uuid.UUID `json:"partner_id,omitempty"`
	VehicleType       string     `json:"vehicle_type"`
	DistanceKM        string     `json:"distance_km"`
	Total             string     `json:"total"`
	PaymentMethod     string     `json:"payment_method"`
	PaymentStatus     string     `json:"payment_status"`
	RefundAmount      string     `json:"refund_amount"`
	Status            string     `json:"status"`
	SettlementApplied bool       `json:"settlement_applied"`
}

func newTransportBookingResponse(booking *models.TransportBooking) transportBookingResponse {
	return transportBookingResponse{
		ID:                booking.ID,
		BookingNumber:     booking.BookingNumber,
		UserID:            booking.UserID,
		PartnerID:         booking.PartnerID,
		VehicleType:       booking.VehicleType,
		DistanceKM:        booking.DistanceKM.StringFixed(2),
		Total:             booking.Total.StringFixed(2),
		PaymentMethod:     string(booking.PaymentMethod),
		PaymentStatus:     string(booking.PaymentStatus),
		RefundAmount:      booking.RefundAmount.StringFixed(2),
		Status:            string(booking.Status),
		SettlementApplied: booking.SettlementApplied,
	}
}

// CreateTransportBooking books goods transport.
func CreateTransportBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		var payload createTransportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		total, method, err := parseBookingPayment(payload.Total, payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		distance, err := decimal.NewFromString(payload.DistanceKM)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "distance_km must be a decimal string"))
			return
		}

		booking, err := svc.CreateTransport(r.Context(), bookings.CreateTransportInput{
			UserID:        payload.UserID,
			VehicleType:   payload.VehicleType,
			DistanceKM:    distance,
			PickupDate:    payload.PickupDate,
			Total:         total,
			PaymentMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newTransportBookingResponse(booking))
	}
}

// GetTransportBooking reads one transport booking.
func GetTransportBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		id, err := uuidParam(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.GetTransportByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newTransportBookingResponse(booking))
	}
}

func parseBookingPayment(total, method string) (decimal.Decimal, enums.PaymentMethod, error) {
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, "", pkgerrors.New(pkgerrors.CodeValidation, "total must be a decimal string")
	}
	parsed, err := enums.ParsePaymentMethod(method)
	if err != nil {
		return decimal.Zero, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	return amount, parsed, nil
}
