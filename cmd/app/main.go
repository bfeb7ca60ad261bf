package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/travelpro/config"
	"github.com/Domenick1991/travelpro/internal/bootstrap"
	"github.com/Domenick1991/travelpro/internal/kafka"
	"github.com/Domenick1991/travelpro/internal/service/booking"
	"github.com/Domenick1991/travelpro/internal/service/contacts"
	"github.com/Domenick1991/travelpro/internal/service/drafts"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config %s not found, using defaults", cfgPath)
		cfg = config.Default()
	} else if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeStorage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer closeStorage()

	st, err := store.Open(ctx, kv)
	if err != nil {
		log.Fatalf("load data: %v", err)
	}

	bookingOpts := []booking.BookingServiceOption{
		booking.WithDefaultCurrency(cfg.Booking.DefaultCurrency),
		booking.WithStrictReturnDate(cfg.Booking.StrictReturnDate),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("WARNING: kafka is unreachable, events will be dropped: %v", err)
		}
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	bookingService := booking.NewBookingService(st, bookingOpts...)
	contactsService := contacts.NewContactsService(st)

	drafter, closeDrafter := bootstrap.NewDrafter(ctx, cfg, st)
	defer closeDrafter()

	svc := bootstrap.Services{
		Bookings: bookingService,
		Contacts: contactsService,
		Backup:   st,
		Drafts:   drafts.NewSession(drafter),
	}
	if err := bootstrap.Run(ctx, cfg, svc); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
