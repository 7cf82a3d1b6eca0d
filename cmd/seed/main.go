package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/domain"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM offer_details")
	db.Exec("DELETE FROM offers")
	db.Exec("DELETE FROM auth_tokens")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Username:     "admin",
		Email:        "admin@marketplace.local",
		PasswordHash: string(adminHash),
		Type:         domain.TypeCustomer,
		IsActive:     true,
		IsStaff:      true,
	}
	db.Create(&admin)
	db.Create(&domain.Profile{UserID: admin.ID})
	log.Println("Admin created: admin / admin123")

	// Guest demo accounts used by the frontend login shortcuts
	guestHash, _ := bcrypt.GenerateFromPassword([]byte("asdasd"), bcrypt.DefaultCost)
	andrey := domain.User{
		Username:     "andrey",
		Email:        "andrey@marketplace.local",
		PasswordHash: string(guestHash),
		FirstName:    "Andrey",
		LastName:     "Guest",
		Type:         domain.TypeCustomer,
		IsActive:     true,
	}
	db.Create(&andrey)
	db.Create(&domain.Profile{UserID: andrey.ID, Location: "Berlin"})

	kevin := domain.User{
		Username:     "kevin",
		Email:        "kevin@marketplace.local",
		PasswordHash: string(guestHash),
		FirstName:    "Kevin",
		LastName:     "Guest",
		Type:         domain.TypeBusiness,
		IsActive:     true,
	}
	db.Create(&kevin)
	db.Create(&domain.Profile{
		UserID:       kevin.ID,
		Location:     "Hamburg",
		Tel:          "+49 40 1234567",
		Description:  "Full-stack web development for small businesses",
		WorkingHours: "9-17",
	})

	businesses := []domain.User{kevin}
	businessNames := []string{"sophie.design", "max.dev"}
	for i, username := range businessNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("business123"), bcrypt.DefaultCost)
		u := domain.User{
			Username:     username,
			Email:        fmt.Sprintf("%s@marketplace.local", username),
			PasswordHash: string(hash),
			FirstName:    fmt.Sprintf("Business%d", i+1),
			LastName:     "Seller",
			Type:         domain.TypeBusiness,
			IsActive:     true,
		}
		db.Create(&u)
		db.Create(&domain.Profile{UserID: u.ID, Location: "Munich"})
		businesses = append(businesses, u)
	}

	// ================== OFFERS ==================
	log.Println("Creating offers...")

	titles := []string{
		"Website Design",
		"Logo & Branding Package",
		"Online Shop Setup",
	}
	basePrices := []int64{100, 150, 250}

	var firstDetailID int64
	for i, title := range titles {
		owner := businesses[i%len(businesses)]
		offer := domain.Offer{
			BusinessUserID: owner.ID,
			Title:          title,
			Description:    fmt.Sprintf("Professional %s tailored to your needs.", title),
		}
		db.Create(&offer)

		tiers := []struct {
			Type     domain.OfferType
			Factor   int64
			Days     int
			Revs     int
			Features []string
		}{
			{domain.TierBasic, 1, 7, 2, []string{"Responsive layout"}},
			{domain.TierStandard, 2, 5, 5, []string{"Responsive layout", "SEO basics"}},
			{domain.TierPremium, 3, 3, -1, []string{"Responsive layout", "SEO basics", "Priority support"}},
		}
		for _, t := range tiers {
			detail := domain.OfferDetail{
				OfferID:            offer.ID,
				Title:              fmt.Sprintf("%s %s", title, t.Type),
				Revisions:          t.Revs,
				DeliveryTimeInDays: t.Days,
				Price:              decimal.NewFromInt(basePrices[i] * t.Factor),
				Features:           t.Features,
				OfferType:          t.Type,
			}
			db.Create(&detail)
			if firstDetailID == 0 {
				firstDetailID = detail.ID
			}
		}
	}

	// ================== ORDERS ==================
	log.Println("Creating orders...")

	var basic domain.OfferDetail
	db.First(&basic, firstDetailID)
	order := domain.Order{
		CustomerUserID:     andrey.ID,
		BusinessUserID:     kevin.ID,
		OfferDetailID:      basic.ID,
		Title:              basic.Title,
		Revisions:          basic.Revisions,
		DeliveryTimeInDays: basic.DeliveryTimeInDays,
		Price:              basic.Price,
		Features:           basic.Features,
		OfferType:          basic.OfferType,
		Status:             domain.StatusCompleted,
	}
	db.Create(&order)

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	db.Create(&domain.Review{
		BusinessUserID: kevin.ID,
		ReviewerID:     andrey.ID,
		Rating:         5,
		Description:    "Fast delivery and great communication.",
	})
	db.Create(&domain.Review{
		BusinessUserID: businesses[1].ID,
		ReviewerID:     andrey.ID,
		Rating:         4,
		Description:    "Solid work, minor revisions needed.",
	})

	log.Println("Seed complete.")
	log.Println("Guest customer: andrey / asdasd")
	log.Println("Guest business: kevin / asdasd")
}
