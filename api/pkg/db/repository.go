package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/config"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/log"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/models"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"gorm.io/gorm"
)

// Repository is the ORM storage backend. It implements every store
// interface on top of a single gorm connection.
type Repository struct {
	db     *DB
	logger *log.Logger
}

// NewRepository creates a new repository instance
func NewRepository(db *DB, l *log.Logger) *Repository {
	if l == nil {
		l = log.NewNop()
	}
	return &Repository{db: db, logger: l}
}

func (r *Repository) DB() *DB {
	return r.db
}

func (r *Repository) Trips() store.TripStore             { return r }
func (r *Repository) Attractions() store.AttractionStore { return r }
func (r *Repository) Users() store.UserStore             { return r }
func (r *Repository) Mode() string                       { return config.BackendORM }

func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// track logs the outcome of a store call and maps gorm's not found error.
func (r *Repository) track(operation, table string, start time.Time, err *error) {
	if errors.Is(*err, gorm.ErrRecordNotFound) {
		*err = store.ErrNotFound
	}
	logged := *err
	if errors.Is(logged, store.ErrNotFound) || planner.IsValidationError(logged) {
		logged = nil
	}
	r.logger.LogStore(config.BackendORM, operation, table, time.Since(start).Milliseconds(), logged)
}

// Trip repository methods
func (r *Repository) CreateTrip(ctx context.Context, userID string, req store.CreateTripRequest) (_ *models.Trip, err error) {
	defer r.track("CreateTrip", "trips", time.Now(), &err)

	trip := store.NewTripFromRequest(userID, req)
	if err := r.db.WithContext(ctx).Create(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *Repository) GetUserTrips(ctx context.Context, userID string) (_ []models.Trip, err error) {
	defer r.track("GetUserTrips", "trips", time.Now(), &err)

	trips := []models.Trip{}
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&trips).Error
	return trips, err
}

func (r *Repository) GetTripByID(ctx context.Context, tripID, userID string) (_ *models.Trip, err error) {
	defer r.track("GetTripByID", "trips", time.Now(), &err)
	return findTrip(r.db.WithContext(ctx), tripID, userID)
}

func findTrip(tx *gorm.DB, tripID, userID string) (*models.Trip, error) {
	var trip models.Trip
	if err := tx.Where("id = ? AND user_id = ?", tripID, userID).First(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *Repository) UpdateTrip(ctx context.Context, tripID, userID string, update store.TripUpdate) (_ *models.Trip, err error) {
	defer r.track("UpdateTrip", "trips", time.Now(), &err)

	var updated *models.Trip
	err = r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := findTrip(tx, tripID, userID)
		if err != nil {
			return err
		}

		update.Apply(trip)
		if trip.EndDate.Before(trip.StartDate.Time) {
			return &planner.ValidationError{Fields: planner.FieldErrors{"end_date": "End date must not be before start date"}}
		}

		if !update.Empty() {
			if err := tx.Model(&models.Trip{}).
				Where("id = ? AND user_id = ?", tripID, userID).
				Updates(update.Fields()).Error; err != nil {
				return err
			}
		}

		updated, err = findTrip(tx, tripID, userID)
		return err
	})
	return updated, err
}

func (r *Repository) DeleteTrip(ctx context.Context, tripID, userID string) (err error) {
	defer r.track("DeleteTrip", "trips", time.Now(), &err)

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", tripID, userID).Delete(&models.Trip{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return tx.Where("trip_id = ?", tripID).Delete(&models.TripActivity{}).Error
	})
}

func (r *Repository) SaveItinerary(ctx context.Context, tripID, userID string, it planner.ItineraryData) (_ []models.TripActivity, err error) {
	defer r.track("SaveItinerary", "trip_activities", time.Now(), &err)

	rows := models.TripActivitiesFromItinerary(tripID, it)
	err = r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := findTrip(tx, tripID, userID); err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.TripActivity{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) GetTripActivities(ctx context.Context, tripID, userID string) (_ []models.TripActivity, err error) {
	defer r.track("GetTripActivities", "trip_activities", time.Now(), &err)

	tx := r.db.WithContext(ctx)
	if _, err := findTrip(tx, tripID, userID); err != nil {
		return nil, err
	}

	activities := []models.TripActivity{}
	err = tx.Where("trip_id = ?", tripID).
		Order("day_number ASC").
		Order("sort_order ASC").
		Find(&activities).Error
	return activities, err
}

// Attraction repository methods
func withImages(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	})
}

func (r *Repository) GetAttractions(ctx context.Context, filter store.AttractionFilter) (_ []models.Attraction, err error) {
	defer r.track("GetAttractions", "attractions", time.Now(), &err)

	query := withImages(r.db.WithContext(ctx))
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.CategoryStrings())
	}
	if filter.Prefecture != "" {
		query = query.Where("prefecture = ?", filter.Prefecture)
	}
	if ceiling, ok := filter.MaxPrice(); ok {
		query = query.Where("price <= ?", ceiling)
	}

	attractions := []models.Attraction{}
	err = query.Order("popularity_score DESC").Find(&attractions).Error
	return attractions, err
}

func (r *Repository) GetAttractionByID(ctx context.Context, id string) (_ *models.Attraction, err error) {
	defer r.track("GetAttractionByID", "attractions", time.Now(), &err)

	var attraction models.Attraction
	if err := withImages(r.db.WithContext(ctx)).Where("id = ?", id).First(&attraction).Error; err != nil {
		return nil, err
	}
	return &attraction, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *Repository) SearchAttractions(ctx context.Context, query string, limit int) (_ []models.Attraction, err error) {
	defer r.track("SearchAttractions", "attractions", time.Now(), &err)

	if limit <= 0 {
		limit = store.DefaultSearchLimit
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"

	attractions := []models.Attraction{}
	err = withImages(r.db.WithContext(ctx)).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(location_name) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("popularity_score DESC").
		Limit(limit).
		Find(&attractions).Error
	return attractions, err
}

// User repository methods
func (r *Repository) CreateUser(ctx context.Context, email, fullName string) (_ *models.User, err error) {
	defer r.track("CreateUser", "users", time.Now(), &err)

	user := models.User{Email: email, FullName: fullName}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (_ *models.User, err error) {
	defer r.track("GetUserByID", "users", time.Now(), &err)

	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (_ *models.User, err error) {
	defer r.track("GetUserByEmail", "users", time.Now(), &err)

	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UpdateUser(ctx context.Context, id string, update store.UserUpdate) (_ *models.User, err error) {
	defer r.track("UpdateUser", "users", time.Now(), &err)

	var user models.User
	err = r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if fields := update.Fields(); len(fields) > 0 {
			if err := tx.Model(&user).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id string) (err error) {
	defer r.track("DeleteUser", "users", time.Now(), &err)

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *Repository) EnsureUser(ctx context.Context, id, email, fullName string) (_ *models.User, err error) {
	defer r.track("EnsureUser", "users", time.Now(), &err)

	var user models.User
	err = r.db.WithContext(ctx).
		Where(models.User{ID: id}).
		Attrs(models.User{Email: email, FullName: fullName}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
