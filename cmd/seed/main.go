package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"gigboard/internal/clock"
	"gigboard/internal/config"
	"gigboard/internal/database"
	"gigboard/internal/domain"
	"gigboard/internal/modules/booking"
	"gigboard/internal/repository"
)

// Seeds a local database with two artists, three venues, and a negotiation
// scenario: competing offers on one date plus an approved hold.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	artistRepo := repository.NewArtistRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	entryRepo := repository.NewDateEntryRepository(db)

	artists := []*domain.Artist{
		{Name: "The Midnight Freight", Hometown: "Asheville, NC", Genre: "americana"},
		{Name: "Glass Copper", Hometown: "Portland, OR", Genre: "indie rock"},
	}
	for _, a := range artists {
		if err := artistRepo.Create(ctx, a); err != nil {
			log.Fatal(err)
		}
	}

	venues := []*domain.Venue{
		{Name: "The Velvet Room", City: "Chicago, IL", Capacity: 350},
		{Name: "Cascade Hall", City: "Seattle, WA", Capacity: 600},
		{Name: "Pine Street Tavern", City: "Boise, ID", Capacity: 180},
	}
	for _, v := range venues {
		if err := venueRepo.Create(ctx, v); err != nil {
			log.Fatal(err)
		}
	}

	svc := booking.NewService(entryRepo, clock.NewSystem(), nil, cfg.HoldDuration)

	// Two venues bidding on the same artist and date.
	offers := []struct {
		venue *domain.Venue
		deal  domain.Deal
	}{
		{venues[0], domain.Deal{Type: domain.DealGuarantee, Amount: 400}},
		{venues[1], domain.Deal{Type: domain.DealGuaranteeVsPercent, Guarantee: 600, Percent: 80}},
	}
	for _, o := range offers {
		deal := o.deal
		e, err := svc.CreateEntry(ctx, booking.Viewer{Role: domain.RoleVenue, PartyID: o.venue.ID}, booking.CreateEntryInput{
			Date:     "2025-07-04",
			ArtistID: artists[0].ID,
			Billing:  string(domain.BillingHeadliner),
			Deal:     &deal,
		})
		if err != nil {
			log.Fatal(err)
		}
		if _, err := svc.ApplyAction(ctx, booking.Viewer{Role: domain.RoleVenue, PartyID: o.venue.ID}, e.ID, booking.ActionPropose, booking.EntryPatch{}); err != nil {
			log.Fatal(err)
		}
	}

	// One artist-initiated request with an approved hold.
	req, err := svc.CreateEntry(ctx, booking.Viewer{Role: domain.RoleArtist, PartyID: artists[1].ID}, booking.CreateEntryInput{
		Date:    "2025-08-16",
		VenueID: venues[2].ID,
		Deal:    &domain.Deal{Type: domain.DealDoor, Percent: 80},
		Notes:   "routing through on the way to Denver",
	})
	if err != nil {
		log.Fatal(err)
	}
	venueViewer := booking.Viewer{Role: domain.RoleVenue, PartyID: venues[2].ID}
	artistViewer := booking.Viewer{Role: domain.RoleArtist, PartyID: artists[1].ID}
	if _, err := svc.ApplyAction(ctx, venueViewer, req.ID, booking.ActionPropose, booking.EntryPatch{}); err != nil {
		log.Fatal(err)
	}
	if _, err := svc.ApplyAction(ctx, artistViewer, req.ID, booking.ActionRequestHold, booking.EntryPatch{HoldReason: "waiting on festival confirmation"}); err != nil {
		log.Fatal(err)
	}
	if _, err := svc.ApplyAction(ctx, venueViewer, req.ID, booking.ActionApproveHold, booking.EntryPatch{}); err != nil {
		log.Fatal(err)
	}

	log.Println("seed complete")
}
