package route_build_post

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/service/route"
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

type routeOrderDTO struct {
	OrderID string `json:"order_ID"`
	Address string `json:"address"`
}

type positionDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type buildRequest struct {
	DriverPosition positionDTO     `json:"driver_position"`
	Orders         []routeOrderDTO `json:"orders"`
}

type stopDTO struct {
	OrderID string  `json:"order_ID"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type buildResponse struct {
	Stops            []stopDTO `json:"stops"`
	ExcludedOrderIDs []string  `json:"excluded_order_IDs"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buildDTO buildRequest
	err := json.NewDecoder(r.Body).Decode(&buildDTO)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	if len(buildDTO.Orders) == 0 {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "orders list is empty")
		return
	}

	orders := make([]route.OrderAddress, 0, len(buildDTO.Orders))
	for _, order := range buildDTO.Orders {
		orders = append(orders, route.OrderAddress{
			OrderID: order.OrderID,
			Address: order.Address,
		})
	}

	driverPosition := entities.Coordinates{
		Lat: buildDTO.DriverPosition.Lat,
		Lng: buildDTO.DriverPosition.Lng,
	}

	builtRoute, err := h.service.BuildRoute(r.Context(), driverPosition, orders)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	response := buildResponse{
		Stops:            make([]stopDTO, 0, builtRoute.Len()),
		ExcludedOrderIDs: builtRoute.Excluded,
	}
	if response.ExcludedOrderIDs == nil {
		response.ExcludedOrderIDs = []string{}
	}
	for _, stop := range builtRoute.Stops {
		response.Stops = append(response.Stops, stopDTO{
			OrderID: stop.OrderID,
			Lat:     stop.Coordinates.Lat,
			Lng:     stop.Coordinates.Lng,
		})
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
