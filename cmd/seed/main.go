// Command seed populates the database with demo users and migration items
// for local development. It is idempotent on users (upsert by email) and
// skips item seeding when items already exist.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/data-migration-api/internal/models"
	"github.com/noah-isme/data-migration-api/pkg/config"
	"github.com/noah-isme/data-migration-api/pkg/database"
)

const defaultPassword = "password"

type seedUser struct {
	Name  string
	Email string
	Role  models.UserRole
}

func main() {
	var withItems bool
	flag.BoolVar(&withItems, "items", true, "seed sample migration items")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	users := []seedUser{
		{Name: "Super Admin", Email: "admin@example.com", Role: models.RoleSuperadmin},
		{Name: "Review Officer", Email: "reviewer@example.com", Role: models.RoleReviewer},
		{Name: "Approval Officer", Email: "approver@example.com", Role: models.RoleApprover},
	}
	for i := 1; i <= 5; i++ {
		users = append(users, seedUser{
			Name:  fmt.Sprintf("Reviewer %d", i),
			Email: fmt.Sprintf("reviewer%d@example.com", i),
			Role:  models.RoleReviewer,
		})
	}
	for i := 1; i <= 3; i++ {
		users = append(users, seedUser{
			Name:  fmt.Sprintf("Approver %d", i),
			Email: fmt.Sprintf("approver%d@example.com", i),
			Role:  models.RoleApprover,
		})
	}

	ids, err := seedUsers(ctx, db, users)
	if err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	log.Printf("seeded %d users (password %q)", len(ids), defaultPassword)

	if !withItems {
		return
	}

	count, err := seedItems(ctx, db, ids)
	if err != nil {
		log.Fatalf("failed to seed items: %v", err)
	}
	log.Printf("seeded %d migration items", count)
}

func seedUsers(ctx context.Context, db *sqlx.DB, users []seedUser) (map[string]string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ids := make(map[string]string, len(users))
	now := time.Now().UTC()
	for _, u := range users {
		id := uuid.NewString()
		var existing string
		err := db.QueryRowxContext(ctx, `
			INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role, updated_at = EXCLUDED.updated_at
			RETURNING id`,
			id, u.Name, u.Email, string(hash), u.Role, now,
		).Scan(&existing)
		if err != nil {
			return nil, fmt.Errorf("upsert user %s: %w", u.Email, err)
		}
		ids[u.Email] = existing
	}
	return ids, nil
}

func seedItems(ctx context.Context, db *sqlx.DB, userIDs map[string]string) (int, error) {
	var existing int
	if err := db.GetContext(ctx, &existing, `SELECT COUNT(*) FROM data_migration_items`); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if existing > 0 {
		log.Printf("items already present (%d), skipping item seed", existing)
		return 0, nil
	}

	reviewer := userIDs["reviewer@example.com"]
	approver := userIDs["approver@example.com"]
	dataTypes := []models.DataType{
		models.DataTypeCustomerRecords,
		models.DataTypeProductCatalogs,
		models.DataTypeServiceAccounts,
		models.DataTypeBillingAccounts,
		models.DataTypeSalesOrders,
	}

	now := time.Now().UTC()
	total := 0
	insert := func(n int, status models.ItemStatus) error {
		for i := 0; i < n; i++ {
			dt := dataTypes[total%len(dataTypes)]
			payload, _ := json.Marshal(map[string]interface{}{
				"batch":   total + 1,
				"records": 100 + total*7,
			})
			item := map[string]interface{}{
				"id":           uuid.NewString(),
				"title":        fmt.Sprintf("Migration batch %03d (%s)", total+1, dt),
				"description":  fmt.Sprintf("Seeded %s migration batch", dt),
				"data_type":    dt,
				"data_payload": payload,
				"status":       status,
				"created_by":   reviewer,
				"created_at":   now.Add(-time.Duration(total) * time.Hour),
				"updated_at":   now,
			}
			cols := "id, title, description, data_type, data_payload, status, created_by, created_at, updated_at"
			vals := ":id, :title, :description, :data_type, :data_payload, :status, :created_by, :created_at, :updated_at"
			if status == models.StatusApproved || status == models.StatusInProduction {
				item["approved_by"] = approver
				item["approved_at"] = now.Add(-time.Duration(total) * time.Minute)
				item["approval_notes"] = "Seeded approval"
				cols += ", approved_by, approved_at, approval_notes"
				vals += ", :approved_by, :approved_at, :approval_notes"
			}
			if status == models.StatusInProduction {
				item["production_at"] = now
				cols += ", production_at"
				vals += ", :production_at"
			}
			query := fmt.Sprintf("INSERT INTO data_migration_items (%s) VALUES (%s)", cols, vals)
			if _, err := db.NamedExecContext(ctx, query, item); err != nil {
				return fmt.Errorf("insert item %d: %w", total+1, err)
			}
			total++
		}
		return nil
	}

	if err := insert(15, models.StatusUnderReview); err != nil {
		return total, err
	}
	if err := insert(10, models.StatusApproved); err != nil {
		return total, err
	}
	if err := insert(5, models.StatusInProduction); err != nil {
		return total, err
	}
	return total, nil
}
