package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/roadhaul/fleet-sim/internal/engine"
	"github.com/roadhaul/fleet-sim/internal/models"
)

// FleetHandler exposes the simulation engine over HTTP. Every mutation maps
// onto one engine operation; invalid transitions come back as 409s with the
// engine's reason, never as crashes.
type FleetHandler struct {
	engine *engine.Engine
}

// NewFleetHandler creates a handler around the engine.
func NewFleetHandler(e *engine.Engine) *FleetHandler {
	return &FleetHandler{engine: e}
}

// StartRequest is the payload of POST /api/routes.
type StartRequest struct {
	VehicleID   string  `json:"vehicle_id"`
	DriverID    string  `json:"driver_id"`
	CoDriverID  string  `json:"co_driver_id,omitempty"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance_km"`
}

// DriverRequest is the payload of POST /api/drivers.
type DriverRequest struct {
	ID  string `json:"id"`
	Fit bool   `json:"fit"`
}

// RegisterVehicle handles POST /api/vehicles.
func (h *FleetHandler) RegisterVehicle(w http.ResponseWriter, r *http.Request) {
	var specs models.VehicleSpecs
	if err := json.NewDecoder(r.Body).Decode(&specs); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if specs.ID == "" {
		http.Error(w, "Vehicle id is required", http.StatusBadRequest)
		return
	}
	if err := h.engine.RegisterVehicle(specs, time.Now()); err != nil {
		writeEngineError(w, err)
		return
	}
	log.WithFields(log.Fields{
		"vehicle_id": specs.ID,
		"class":      specs.Class,
		"grade":      specs.Reliability,
	}).Info("Vehicle registered")
	writeJSON(w, http.StatusCreated, map[string]string{"id": specs.ID})
}

// ListVehicles handles GET /api/vehicles.
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Vehicles())
}

// GetVehicle handles GET /api/vehicles/{id}.
func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.VehicleState(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// RegisterDriver handles POST /api/drivers.
func (h *FleetHandler) RegisterDriver(w http.ResponseWriter, r *http.Request) {
	var req DriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "Driver id is required", http.StatusBadRequest)
		return
	}
	if err := h.engine.RegisterDriver(req.ID, req.Fit); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": req.ID})
}

// GetDriver handles GET /api/drivers/{id}.
func (h *FleetHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.DriverState(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// StartDriving handles POST /api/routes.
func (h *FleetHandler) StartDriving(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.VehicleID == "" || req.DriverID == "" || req.DistanceKm <= 0 {
		http.Error(w, "vehicle_id, driver_id and a positive distance_km are required", http.StatusBadRequest)
		return
	}
	err := h.engine.StartDriving(req.VehicleID, req.DriverID, req.CoDriverID,
		req.Origin, req.Destination, req.DistanceKm, time.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "driving"})
}

// StopDriving handles DELETE /api/routes/{vehicleID}.
func (h *FleetHandler) StopDriving(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.StopDriving(r.PathValue("vehicleID")); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "idle"})
}

// RequestRest handles POST /api/drivers/{id}/rest.
func (h *FleetHandler) RequestRest(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.RequestRest(r.PathValue("id"), time.Now()); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "resting"})
}

// EndRest handles DELETE /api/drivers/{id}/rest.
func (h *FleetHandler) EndRest(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.EndRest(r.PathValue("id"), time.Now()); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "available"})
}

// EstimateMaintenance handles GET /api/vehicles/{id}/maintenance.
func (h *FleetHandler) EstimateMaintenance(w http.ResponseWriter, r *http.Request) {
	est, err := h.engine.EstimateMaintenance(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// PerformMaintenance handles POST /api/vehicles/{id}/maintenance.
func (h *FleetHandler) PerformMaintenance(w http.ResponseWriter, r *http.Request) {
	est, err := h.engine.PerformMaintenance(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusConflict
	switch {
	case errors.Is(err, engine.ErrVehicleNotFound), errors.Is(err, engine.ErrDriverNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrVehicleExists), errors.Is(err, engine.ErrDriverExists):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}
