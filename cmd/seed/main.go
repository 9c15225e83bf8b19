// Command seed populates the database with a demo dataset: an admin
// account, a handful of bookers and sellers, and a spread of meetings in
// various states so the statistics endpoints have something to show.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stratforsr-sys/bokningsstatistik/internal/config"
	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/repository/postgres"
)

type seedUser struct {
	name  string
	email string
	role  domain.UserRole
}

var seedUsers = []seedUser{
	{"Admin", "admin@example.com", domain.RoleAdmin},
	{"Maria Lindqvist", "maria@example.com", domain.RoleManager},
	{"Johan Berg", "johan@example.com", domain.RoleUser},
	{"Sara Nilsson", "sara@example.com", domain.RoleUser},
	{"Erik Holm", "erik@example.com", domain.RoleUser},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := postgres.NewUserRepo(db)
	meetingRepo := postgres.NewMeetingRepo(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 12)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := make([]*domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		user := &domain.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("failed to create user %s: %v", su.email, err)
		}
		users = append(users, user)
		log.Printf("created user %s (%s)", su.email, su.role)
	}

	booker := users[2]
	sellers := []*domain.User{users[3], users[4]}

	now := time.Now().UTC()
	statuses := []struct {
		status  domain.MeetingStatus
		quality *int
		offset  time.Duration
	}{
		{domain.StatusCompleted, intPtr(4), -72 * time.Hour},
		{domain.StatusCompleted, intPtr(5), -48 * time.Hour},
		{domain.StatusCompleted, nil, -24 * time.Hour},
		{domain.StatusNoShow, nil, -20 * time.Hour},
		{domain.StatusCanceled, nil, -8 * time.Hour},
		{domain.StatusBooked, nil, 24 * time.Hour},
		{domain.StatusBooked, nil, 72 * time.Hour},
		{domain.StatusRescheduled, nil, 96 * time.Hour},
	}

	for i, s := range statuses {
		seller := sellers[i%len(sellers)]
		subject := "Demomöte"
		start := now.Add(s.offset)
		meeting := &domain.Meeting{
			ID:             uuid.New(),
			BookingDate:    now.Add(-time.Duration(i+1) * 24 * time.Hour),
			StartTime:      start,
			EndTime:        start.Add(time.Hour),
			Subject:        &subject,
			OrganizerEmail: booker.Email,
			Status:         s.status,
			QualityScore:   s.quality,
			Bookers: []domain.MeetingParticipant{
				{UserID: booker.ID, UserName: booker.Name},
			},
			Sellers: []domain.MeetingParticipant{
				{UserID: seller.ID, UserName: seller.Name},
			},
		}
		if err := meetingRepo.Create(ctx, meeting); err != nil {
			log.Fatalf("failed to create meeting %d: %v", i, err)
		}
	}
	log.Printf("created %d meetings", len(statuses))
	log.Println("seed complete; login with admin@example.com / password123")
}

func intPtr(v int) *int { return &v }
