package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/membernet/member-info-service/config"
	"github.com/membernet/member-info-service/pkg/helpers"
)

// Seeds a demo member with a verified email contact plus the base lookup rows,
// so a fresh database can serve login immediately.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	memberID, err := helpers.NewMemberID()
	if err != nil {
		log.Fatalf("failed to generate member id: %v", err)
	}
	code, err := helpers.NewVerificationCode()
	if err != nil {
		log.Fatalf("failed to generate code: %v", err)
	}

	username := "demoMember"
	email := "demo@example.com"

	var id string
	err = db.QueryRow(`
		INSERT INTO members (member_id, username, name, name_visible, name_last, name_last_visible,
			status, user_points, member_type, profile_introduction, post_date)
		VALUES ($1, $2, 'Demo', true, 'Member', true, 'Active', 0, 'Standard', 'Seeded demo account', now())
		ON CONFLICT (username) DO UPDATE SET name = EXCLUDED.name
		RETURNING member_id
	`, memberID, username).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed member: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO contacts (member_id, contact_type, contact_detail, verified, code, public_private, notes, post_date)
		VALUES ($1, 'Email', $2, true, $3, false, 'seed', now())
		ON CONFLICT (contact_type, contact_detail) DO UPDATE SET verified = true
	`, id, email, code); err != nil {
		log.Fatalf("failed to seed contact: %v", err)
	}
	fmt.Printf("seeded member: id=%s username=%s email=%s (verified)\n", id, username, email)

	lookups := []struct{ typ, value string }{
		{"ContactType", "Email"},
		{"ContactType", "Phone"},
		{"AddressType", "Home"},
		{"AddressType", "Work"},
		{"MemberType", "Standard"},
		{"MemberType", "Premium"},
		{"Country", "New Zealand"},
		{"Country", "Australia"},
	}
	for _, l := range lookups {
		if _, err := db.Exec(`
			INSERT INTO lookups (lookup_type, lookup_value)
			VALUES ($1, $2)
			ON CONFLICT (lookup_type, lookup_value) DO NOTHING
		`, l.typ, l.value); err != nil {
			log.Fatalf("failed to seed lookup %s/%s: %v", l.typ, l.value, err)
		}
	}
	fmt.Printf("seeded %d lookup rows\n", len(lookups))
}
