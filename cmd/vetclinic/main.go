package main

import (
	"fmt"
	"os"

	"vetclinic/internal/booking"
	"vetclinic/internal/cli"
	"vetclinic/internal/config"
	"vetclinic/internal/db"
	"vetclinic/internal/registration"
	"vetclinic/internal/runtime"
	"vetclinic/internal/storage"
)

func main() {
	config.Load()

	logger := runtime.NewLogger("vetclinic", runtime.ParseLevel(config.String("CLINIC_LOG_LEVEL", "info")))

	ctx, stop := runtime.SignalContext()
	defer stop()

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		fmt.Fprintln(os.Stderr, "cannot reach the clinic database:", err)
		os.Exit(1)
	}
	defer pool.Close()

	owners := storage.NewOwnerRepository(pool)
	patients := storage.NewPatientRepository(pool)
	doctors := storage.NewDoctorRepository(pool)
	appts := storage.NewAppointmentRepository(pool)

	bookingSvc := booking.New(pool, appts, patients, doctors, logger)
	registrySvc := registration.New(pool, owners, patients, logger)

	menu := cli.New(bookingSvc, registrySvc, logger)
	if err := menu.Run(ctx); err != nil {
		logger.Error("menu terminated", "err", err)
		os.Exit(1)
	}
}
