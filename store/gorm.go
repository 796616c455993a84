package store

import (
	"context"
	"embed"

	"github.com/kbukum/sessionauth/auth"
	"github.com/kbukum/sessionauth/database"
	"github.com/kbukum/sessionauth/database/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// userRecord is the users table row.
type userRecord struct {
	database.BaseModel
	Email        string         `gorm:"uniqueIndex;not null"`
	PasswordHash string         `gorm:"not null"`
	Attributes   map[string]any `gorm:"serializer:json"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toUser() *auth.User {
	return &auth.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Attributes:   r.Attributes,
	}
}

// Gorm stores users in the users table.
type Gorm struct {
	db *database.DB
}

// NewGorm creates a store on db. Call Migrate before first use.
func NewGorm(db *database.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate applies the embedded users migrations.
func (g *Gorm) Migrate() error {
	return migration.MigrateUp(g.db.GormDB, migrationsFS, "migrations", migration.SQLite)
}

// Store returns the collaborators backed by g.
func (g *Gorm) Store() auth.Store {
	return auth.Store{
		FindByID:    g.FindByID,
		FindByEmail: g.FindByEmail,
		Create:      g.Create,
	}
}

// FindByID returns the user with id, or auth.ErrUserNotFound.
func (g *Gorm) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return g.first(ctx, "id = ?", id)
}

// FindByEmail returns the user with email, or auth.ErrUserNotFound.
func (g *Gorm) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return g.first(ctx, "email = ?", email)
}

func (g *Gorm) first(ctx context.Context, query string, arg string) (*auth.User, error) {
	var rec userRecord
	err := g.db.WithContext(ctx).Where(query, arg).First(&rec).Error
	if database.IsNotFoundError(err) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, database.FromDatabase(err, "User")
	}
	return rec.toUser(), nil
}

// Create inserts a user. A taken email fails with ALREADY_EXISTS.
func (g *Gorm) Create(ctx context.Context, in auth.CreateUserInput) (*auth.User, error) {
	rec := &userRecord{
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Attributes:   in.Extra,
	}
	if err := g.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, database.FromDatabase(err, "User")
	}
	return rec.toUser(), nil
}

// Delete removes the user with id.
func (g *Gorm) Delete(ctx context.Context, id string) error {
	if err := g.db.WithContext(ctx).Delete(&userRecord{}, "id = ?", id).Error; err != nil {
		return database.FromDatabase(err, "User")
	}
	return nil
}
