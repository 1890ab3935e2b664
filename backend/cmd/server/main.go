// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/cipherpost/cipherpost/backend/crypto"
	"github.com/cipherpost/cipherpost/backend/handlers"
	"github.com/cipherpost/cipherpost/backend/middleware"
	"github.com/cipherpost/cipherpost/backend/service"
	"github.com/cipherpost/cipherpost/backend/storage/postgres"
)

func main() {
	// Database connection
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://localhost/cipherpost?sslmode=disable"
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// Redis connection (public key cache)
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	// Initialize storage
	store := postgres.NewStore(db, rdb)

	// Run migrations
	if err := store.Migrate(); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Wire the messaging service: explicit store and cipher handles,
	// no ambient singletons.
	svc := service.NewMessagingService(store, store, crypto.Cipher{})

	keyHandler := handlers.NewKeyHandler(svc)
	messageHandler := handlers.NewMessageHandler(svc)

	// Get JWT configuration from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logrus.Fatal("JWT_SECRET environment variable is required")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "cipherpost"
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtSecret, jwtIssuer)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.CORS)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)

	// Key management endpoints
	api.HandleFunc("/crypto/generate-keys", keyHandler.GenerateKeys).Methods("POST")
	api.HandleFunc("/crypto/public-key/{userId}", keyHandler.GetPublicKey).Methods("GET")
	api.HandleFunc("/crypto/encrypt", keyHandler.Encrypt).Methods("POST")
	api.HandleFunc("/crypto/decrypt", keyHandler.Decrypt).Methods("POST")

	// Message endpoints
	api.HandleFunc("/messages/send", messageHandler.Send).Methods("POST")
	api.HandleFunc("/messages/receive", messageHandler.Receive).Methods("GET")
	api.HandleFunc("/messages/unread", messageHandler.Unread).Methods("GET")
	api.HandleFunc("/messages/history/{userId}", messageHandler.History).Methods("GET")
	api.HandleFunc("/messages/read/{messageId}", messageHandler.MarkRead).Methods("PATCH")

	// Health check (no auth required)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithFields(logrus.Fields{
		"port":   port,
		"issuer": jwtIssuer,
	}).Info("Messaging server starting")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		logrus.WithError(err).Fatal("Server failed to start")
	}
}
