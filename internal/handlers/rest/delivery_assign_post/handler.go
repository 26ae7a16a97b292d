package delivery_assign_post

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

type assignRequest struct {
	OrderID   string `json:"order_ID"`
	DriverID  int64  `json:"driver_ID"`
	CompanyID int64  `json:"company_ID"`
}

type assignResponse struct {
	OrderID       string `json:"order_ID"`
	DriverID      int64  `json:"driver_ID"`
	DriverName    string `json:"driver_name"`
	Status        string `json:"status"`
	QueuePosition *int32 `json:"queue_position,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var assignDTO assignRequest
	err := json.NewDecoder(r.Body).Decode(&assignDTO)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	result, err := h.service.AssignOrder(r.Context(), assignDTO.OrderID, assignDTO.DriverID, assignDTO.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, assignment.ErrInvalidOrderID),
			errors.Is(err, assignment.ErrInvalidDriverID),
			errors.Is(err, assignment.ErrInvalidCompanyID):
			h.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, assignment.ErrOrderNotFound),
			errors.Is(err, assignment.ErrDriverNotFound):
			h.writeError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, assignment.ErrDriverInactive),
			errors.Is(err, assignment.ErrInvalidOrderState):
			h.writeError(w, http.StatusConflict, "conflict", err.Error())
		default:
			h.writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}

	response := assignResponse{
		OrderID:       result.OrderID,
		DriverID:      result.DriverID,
		DriverName:    result.DriverName,
		Status:        string(result.Status),
		QueuePosition: result.QueuePosition,
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
