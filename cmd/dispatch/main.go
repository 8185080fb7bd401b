package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// dispatch seeds a running simd with a fleet and keeps starting randomized
// routes through the ops API. It is a load generator for manual testing, not
// part of the game.

var cityPairs = []struct {
	From, To string
	Km       float64
}{
	{"Hamburg", "Munich", 780},
	{"Rotterdam", "Warsaw", 1230},
	{"Lyon", "Barcelona", 640},
	{"Prague", "Vienna", 330},
	{"Antwerp", "Milan", 1020},
	{"Gdansk", "Berlin", 500},
	{"Madrid", "Lisbon", 630},
	{"Cologne", "Paris", 500},
}

var classes = []struct {
	Class       string
	Consumption float64
	MaxFuel     float64
	Speed       float64
	Price       float64
}{
	{"light", 12, 80, 100, 45000},
	{"medium", 22, 200, 90, 90000},
	{"heavy", 34, 400, 80, 160000},
}

var grades = []string{"A", "B", "C"}

type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *apiClient) post(path string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	return nil
}

func (c *apiClient) login(username, password string) error {
	data, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := c.http.Post(c.baseURL+"/api/auth/token", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

func main() {
	_ = godotenv.Load()

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8081"
	}
	fleetSize := 10
	if v := os.Getenv("FLEET_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			fleetSize = n
		}
	}

	client := newAPIClient(apiURL)
	if user := os.Getenv("OPS_USER"); user != "" {
		if err := client.login(user, os.Getenv("OPS_PASSWORD")); err != nil {
			log.WithError(err).Fatal("Login failed")
		}
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"api_url":    apiURL,
	}).Info("Seeding fleet")

	for i := 0; i < fleetSize; i++ {
		cls := classes[rand.Intn(len(classes))]
		vehicleID := fmt.Sprintf("truck-%03d", i+1)
		vehicle := map[string]interface{}{
			"id":                vehicleID,
			"class":             cls.Class,
			"price":             cls.Price,
			"consumption_l100":  cls.Consumption,
			"max_fuel":          cls.MaxFuel,
			"reliability":       grades[rand.Intn(len(grades))],
			"durability":        1 + rand.Intn(10),
			"maintenance_group": 1 + rand.Intn(3),
			"cruise_speed_kmh":  cls.Speed,
		}
		if err := client.post("/api/vehicles", vehicle); err != nil {
			log.WithError(err).WithField("vehicle_id", vehicleID).Error("Failed to register vehicle")
			continue
		}

		driverID := fmt.Sprintf("driver-%03d", i+1)
		driver := map[string]interface{}{"id": driverID, "fit": rand.Float64() > 0.1}
		if err := client.post("/api/drivers", driver); err != nil {
			log.WithError(err).WithField("driver_id", driverID).Error("Failed to register driver")
			continue
		}

		pair := cityPairs[rand.Intn(len(cityPairs))]
		route := map[string]interface{}{
			"vehicle_id":  vehicleID,
			"driver_id":   driverID,
			"origin":      pair.From,
			"destination": pair.To,
			"distance_km": pair.Km,
		}
		if err := client.post("/api/routes", route); err != nil {
			log.WithError(err).WithField("vehicle_id", vehicleID).Error("Failed to start route")
			continue
		}
		log.WithFields(log.Fields{
			"vehicle_id":  vehicleID,
			"driver_id":   driverID,
			"origin":      pair.From,
			"destination": pair.To,
		}).Info("Route dispatched")
	}

	log.Info("Fleet seeded")
}
