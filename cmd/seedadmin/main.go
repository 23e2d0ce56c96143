// Command seedadmin creates the initial admin account. It is a no-op when
// an admin already exists.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/senku-sen/event-management-system/config"
	"github.com/senku-sen/event-management-system/models"
)

func main() {
	log := logrus.New()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	users := db.Collection("users")

	var existing models.User
	err = users.FindOne(ctx, bson.M{"role": models.RoleAdmin}).Decode(&existing)
	if err == nil {
		log.WithField("email", existing.Email).Info("admin user already exists")
		return
	}
	if err != mongo.ErrNoDocuments {
		log.WithError(err).Fatal("failed to check for existing admin")
	}

	email := getenv("SEED_ADMIN_EMAIL", "admin@eventmanagement.com")
	password := getenv("SEED_ADMIN_PASSWORD", "AdminPass123!")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}

	now := time.Now().UTC()
	admin := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		FirstName: "System",
		LastName:  "Administrator",
		Phone:     "+639171234567",
		Address:   "Admin Office, Manila",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := users.InsertOne(ctx, admin); err != nil {
		log.WithError(err).Fatal("failed to create admin")
	}

	log.WithField("email", email).Info("admin user created")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
