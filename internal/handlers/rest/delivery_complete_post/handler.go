package delivery_complete_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/service/assignment"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

type completeRequest struct {
	OrderID   string `json:"order_ID"`
	CompanyID int64  `json:"company_ID"`
}

type completeResponse struct {
	OrderID         string  `json:"order_ID"`
	DriverID        int64   `json:"driver_ID"`
	DriverStatus    string  `json:"driver_status"`
	PromotedOrderID *string `json:"promoted_order_ID,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var completeDTO completeRequest
	err := json.NewDecoder(r.Body).Decode(&completeDTO)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	completion, err := h.service.CompleteDelivery(r.Context(), completeDTO.OrderID, completeDTO.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, assignment.ErrInvalidOrderID),
			errors.Is(err, assignment.ErrInvalidCompanyID):
			h.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, assignment.ErrOrderNotFound):
			h.writeError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, assignment.ErrInvalidOrderState):
			h.writeError(w, http.StatusConflict, "conflict", err.Error())
		default:
			h.writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}

	response := completeResponse{
		OrderID:         completion.OrderID,
		DriverID:        completion.DriverID,
		DriverStatus:    completion.DriverStatus.String(),
		PromotedOrderID: completion.PromotedOrderID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(errorResponse{Code: code, Message: message})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON error response")
	}
}
