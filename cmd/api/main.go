package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"pet-rescue-registry/internal/adapters/ai/openai"
	"pet-rescue-registry/internal/adapters/auth/firebaseauth"
	"pet-rescue-registry/internal/adapters/geo/ipapi"
	"pet-rescue-registry/internal/adapters/payments/stripegw"
	fsrepo "pet-rescue-registry/internal/adapters/storage/firestore"
	"pet-rescue-registry/internal/platform/logger"
	"pet-rescue-registry/internal/router"
)

// Config por env. Cada integración es opcional: sin su variable, la feature
// correspondiente degrada a "no configurada" y el resto del API sigue vivo.
//
//	PORT                    puerto HTTP (default 8080)
//	FIREBASE_PROJECT_ID     habilita verificación de tokens + Firestore
//	DB_DSN                  Postgres como storage alternativo
//	STRIPE_SECRET_KEY       habilita checkout
//	STRIPE_WEBHOOK_SECRET   habilita el webhook de pagos
//	STRIPE_PREMIUM_PRICE_ID precio que otorga plan premium
//	OPENAI_API_KEY          habilita asesor IA (premium)
func main() {
	ctx := context.Background()
	logg := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	opts := router.Options{
		PremiumPriceID: os.Getenv("STRIPE_PREMIUM_PRICE_ID"),
		Log:            logg,
	}

	if projectID := os.Getenv("FIREBASE_PROJECT_ID"); projectID != "" {
		verifier, err := firebaseauth.NewVerifier(ctx, firebaseauth.Config{ProjectID: projectID})
		if err != nil {
			log.Fatalf("firebase auth: %v", err)
		}
		opts.AuthVerifier = verifier

		fsClient, err := fsrepo.Open(ctx, projectID)
		if err != nil {
			log.Fatalf("firestore: %v", err)
		}
		defer fsClient.Close()
		opts.Firestore = fsClient
	} else {
		logg.Warn("FIREBASE_PROJECT_ID not set: dev mode (X-Debug-User-ID)", nil)
	}

	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		gateway, err := stripegw.NewGateway(stripegw.Config{
			SecretKey:     key,
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		})
		if err != nil {
			log.Fatalf("stripe: %v", err)
		}
		opts.Gateway = gateway
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		completer, err := openai.NewClient(openai.Config{APIKey: key})
		if err != nil {
			log.Fatalf("openai: %v", err)
		}
		opts.Completer = completer
	}

	locator, err := ipapi.NewLocator(ipapi.Config{})
	if err != nil {
		log.Fatalf("ipapi: %v", err)
	}
	opts.Locator = locator

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // el asesor IA puede tardar
	}

	log.Printf("starting server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
