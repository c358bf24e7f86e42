// smoke drives the whole appointment lifecycle against a running api-server:
// book -> confirm -> consultation -> notification checks. It reads one doctor
// and one patient straight from the database and mints bearer tokens for them.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/carelane/healthcare-appointments/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	baseURL := getenv("API_BASE_URL", "http://127.0.0.1:8080")
	dsn := os.Getenv("POSTGRES_DSN")
	secret := os.Getenv("JWT_SECRET")
	if dsn == "" || secret == "" {
		log.Fatal("POSTGRES_DSN and JWT_SECRET are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	var doctorID, doctorUser, patientUser uuid.UUID
	if err := pool.QueryRow(ctx, `SELECT id, user_id FROM doctors LIMIT 1`).Scan(&doctorID, &doctorUser); err != nil {
		log.Fatalf("load doctor: %v (run cmd/seed first)", err)
	}
	if err := pool.QueryRow(ctx, `SELECT user_id FROM patients LIMIT 1`).Scan(&patientUser); err != nil {
		log.Fatalf("load patient: %v (run cmd/seed first)", err)
	}

	doctorToken := mintToken(secret, doctorUser)
	patientToken := mintToken(secret, patientUser)

	client := &smokeClient{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}

	// Book as the patient.
	var appt struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
	}
	client.do(ctx, "POST", "/appointments", patientToken, map[string]any{
		"doctor_id": doctorID.String(),
		"date":      time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
		"time_slot": "09:00",
		"reason":    "smoke checkup",
	}, &appt)
	log.Printf("booked appointment %s status=%s", appt.ID, appt.Status)
	expect(appt.Status == "Waiting", "new appointment must start Waiting")

	// Confirm as the doctor.
	client.do(ctx, "PATCH", "/doctor/appointments/"+appt.ID.String()+"/status", doctorToken,
		map[string]any{"status": "Booked"}, &appt)
	log.Printf("appointment status=%s", appt.Status)
	expect(appt.Status == "Booked", "status update to Booked failed")

	// Record the consultation as the doctor.
	var cons struct {
		ID uuid.UUID `json:"id"`
	}
	client.do(ctx, "POST", "/doctor/appointments/"+appt.ID.String()+"/consultation", doctorToken, map[string]any{
		"symptoms":    "none",
		"description": "smoke test consultation",
		"status":      "stable",
	}, &cons)
	log.Printf("created consultation %s", cons.ID)

	client.do(ctx, "GET", "/appointments/upcoming", patientToken, nil, nil)

	var notifications []struct {
		Message string `json:"message"`
	}
	client.do(ctx, "GET", "/notifications", patientToken, nil, &notifications)
	log.Printf("patient has %d unread notifications", len(notifications))
	expect(len(notifications) >= 2, "patient should have confirm + consultation notifications")

	log.Println("smoke passed")
}

type smokeClient struct {
	baseURL string
	http    *http.Client
}

func (c *smokeClient) do(ctx context.Context, method, path, token string, body, out any) {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("%s %s: marshal body: %v", method, path, err)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		log.Fatalf("%s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			log.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
}

func mintToken(secret string, userID uuid.UUID) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	return signed
}

func expect(ok bool, msg string) {
	if !ok {
		log.Fatalf("smoke failed: %s", msg)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
