package models

import (
	"gorm.io/gorm"
)

// Database migration function
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Trip{},
		&Attraction{},
		&AttractionImage{},
		&TripActivity{},
	)
}

func CreateIndexes(db *gorm.DB) error {
	// Composite indexes for common queries
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_user_created_at ON trips(user_id, created_at DESC)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trip_activities_schedule ON trip_activities(trip_id, day_number, sort_order)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_attractions_category_popularity ON attractions(category, popularity_score DESC)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_attraction_images_order ON attraction_images(attraction_id, sort_order)").Error; err != nil {
		return err
	}

	return nil
}
