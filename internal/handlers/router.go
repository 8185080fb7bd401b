package handlers

import (
	"net/http"

	"github.com/roadhaul/fleet-sim/internal/middleware"
)

// NewRouter wires the ops API. Reads are open to any authenticated operator;
// mutations additionally require a dispatch-capable role.
func NewRouter(fleet *FleetHandler, authH *AuthHandler, authMW *middleware.AuthMiddleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("POST /api/auth/token", authH.Token)

	mux.HandleFunc("GET /api/vehicles", fleet.ListVehicles)
	mux.HandleFunc("GET /api/vehicles/{id}", fleet.GetVehicle)
	mux.HandleFunc("GET /api/vehicles/{id}/maintenance", fleet.EstimateMaintenance)
	mux.HandleFunc("GET /api/drivers/{id}", fleet.GetDriver)

	dispatch := func(h http.HandlerFunc) http.Handler {
		return authMW.RequireDispatch(h)
	}
	mux.Handle("POST /api/vehicles", dispatch(fleet.RegisterVehicle))
	mux.Handle("POST /api/vehicles/{id}/maintenance", dispatch(fleet.PerformMaintenance))
	mux.Handle("POST /api/drivers", dispatch(fleet.RegisterDriver))
	mux.Handle("POST /api/routes", dispatch(fleet.StartDriving))
	mux.Handle("DELETE /api/routes/{vehicleID}", dispatch(fleet.StopDriving))
	mux.Handle("POST /api/drivers/{id}/rest", dispatch(fleet.RequestRest))
	mux.Handle("DELETE /api/drivers/{id}/rest", dispatch(fleet.EndRest))

	return authMW.Authenticate(mux)
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
