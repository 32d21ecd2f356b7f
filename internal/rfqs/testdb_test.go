package rfqs

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quoteline/rfqtracker-backend/pkg/db"
	"github.com/quoteline/rfqtracker-backend/pkg/db/models"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
)

var testSchema = []string{
	`CREATE TABLE users (
		id text PRIMARY KEY,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		name text NOT NULL,
		role text NOT NULL DEFAULT 'sales',
		is_active boolean NOT NULL DEFAULT true,
		last_login_at datetime,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE rfqs (
		id text PRIMARY KEY,
		rfq_id text NOT NULL UNIQUE,
		customer_name text NOT NULL,
		customer_email text NOT NULL,
		part_number text NOT NULL,
		pcb_specs text,
		notes text,
		quantity integer NOT NULL,
		margin real NOT NULL DEFAULT 15,
		supplier_quote real,
		customer_quote text,
		urgency text NOT NULL DEFAULT 'medium',
		confidence integer NOT NULL DEFAULT 50,
		status text NOT NULL DEFAULT 'new',
		stage text NOT NULL DEFAULT 'rfq_received',
		sales_user_id text NOT NULL,
		date_received datetime NOT NULL,
		delivered_at datetime,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE rfq_communications (
		id text PRIMARY KEY,
		rfq_id text NOT NULL,
		kind text NOT NULL,
		direction text NOT NULL,
		message text NOT NULL,
		author text NOT NULL,
		created_at datetime
	)`,
	`CREATE TABLE rfq_notes (
		id text PRIMARY KEY,
		rfq_id text NOT NULL,
		kind text NOT NULL DEFAULT 'internal',
		message text NOT NULL,
		author text NOT NULL,
		created_at datetime
	)`,
	`CREATE TABLE rfq_activities (
		id text PRIMARY KEY,
		rfq_id text NOT NULL,
		author text NOT NULL,
		action text NOT NULL,
		details text,
		customer_name text NOT NULL,
		part_number text NOT NULL,
		created_at datetime
	)`,
	`CREATE TABLE rfq_counters (
		id integer PRIMARY KEY,
		value bigint NOT NULL DEFAULT 0
	)`,
	`INSERT INTO rfq_counters (id, value) VALUES (1, 0)`,
}

// openTestDB spins up an isolated in-memory database with the RFQ
// schema applied and the display counter seeded.
func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", sanitizeDSNName(t.Name()))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// Shared-cache in-memory databases vanish once every connection
	// closes. A single connection keeps the schema alive for the test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range testSchema {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	return db.FromGorm(conn)
}

func sanitizeDSNName(name string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(name)
}

func seedUser(t *testing.T, client *db.Client, name string, role enums.MemberRole) models.User {
	t.Helper()

	user := models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(name) + "@quoteline.test",
		PasswordHash: "x",
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, client.DB().Create(&user).Error)
	return user
}

func actorFor(user models.User) Actor {
	return Actor{ID: user.ID, Name: user.Name, Role: user.Role}
}
