package utils

import (
	"log"
	"time"

	"learnhub/database"
	"learnhub/models"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the platform subscription expiry scheduler
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind and expire platform subscriptions
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription check...")
		ProcessExpiringSubscriptions()
		ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 9 AM")
}

// ProcessExpiringSubscriptions sends reminder emails for platform
// subscriptions expiring within 2 days
func ProcessExpiringSubscriptions() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiringUsers []models.User
	if err := db.
		Where("has_platform_subscription = ? AND is_deleted = ?", true, false).
		Where("subscription_end BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiringUsers).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d subscriptions expiring soon", len(expiringUsers))

	for _, user := range expiringUsers {
		if err := SendSubscriptionExpiryReminder(user.Email, user.FirstName, user.SubscriptionEnd); err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

// ExpireSubscriptions flags platform subscriptions whose end date has passed
func ExpireSubscriptions() {
	db := database.Database.Db

	result := db.Model(&models.User{}).
		Where("has_platform_subscription = ? AND subscription_end IS NOT NULL AND subscription_end < ?", true, time.Now()).
		Update("has_platform_subscription", false)

	if result.Error != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscriptions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Expired %d platform subscriptions", result.RowsAffected)
	}
}
