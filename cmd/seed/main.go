// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"daygrid/internal/config"
	"daygrid/internal/database"
	"daygrid/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	calendarsPerUser := flag.Int("calendars", 2, "Calendars per user")
	eventsPerCalendar := flag.Int("events", 8, "Events per calendar")
	holidaysOnly := flag.Bool("holidays-only", false, "Only refresh the holiday table")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *holidaysOnly {
		if err := seed.Holidays(db, "US", 0); err != nil {
			log.Fatalf("Holiday seeding failed: %v", err)
		}
		log.Println("Holiday table refreshed")
		return
	}

	opts := seed.DefaultOptions()
	opts.Users = *numUsers
	opts.CalendarsPerUser = *calendarsPerUser
	opts.EventsPerCalendar = *eventsPerCalendar

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
