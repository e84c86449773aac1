package store

import (
	"context"
	"errors"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/models"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
)

// ErrNotFound is returned by every backend when a row does not exist or is
// not visible to the requesting user
var ErrNotFound = errors.New("record not found")

// DemoUserID acts for requests without an X-User-Id header
const DemoUserID = "demo-user"

// DefaultSearchLimit caps attraction search results
const DefaultSearchLimit = 20

type TripStore interface {
	CreateTrip(ctx context.Context, userID string, req CreateTripRequest) (*models.Trip, error)
	GetUserTrips(ctx context.Context, userID string) ([]models.Trip, error)
	GetTripByID(ctx context.Context, tripID, userID string) (*models.Trip, error)
	UpdateTrip(ctx context.Context, tripID, userID string, update TripUpdate) (*models.Trip, error)
	DeleteTrip(ctx context.Context, tripID, userID string) error
	SaveItinerary(ctx context.Context, tripID, userID string, it planner.ItineraryData) ([]models.TripActivity, error)
	GetTripActivities(ctx context.Context, tripID, userID string) ([]models.TripActivity, error)
}

type AttractionStore interface {
	GetAttractions(ctx context.Context, filter AttractionFilter) ([]models.Attraction, error)
	GetAttractionByID(ctx context.Context, id string) (*models.Attraction, error)
	SearchAttractions(ctx context.Context, query string, limit int) ([]models.Attraction, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, email, fullName string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, update UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	EnsureUser(ctx context.Context, id, email, fullName string) (*models.User, error)
}

// Backend is a complete storage strategy. The ORM and the hosted backend are
// interchangeable behind it.
type Backend interface {
	Trips() TripStore
	Attractions() AttractionStore
	Users() UserStore
	Mode() string
	HealthCheck(ctx context.Context) error
	Close() error
}

// WithAttractions swaps the attraction store of a backend, used to put the
// cache in front of it.
func WithAttractions(b Backend, attractions AttractionStore) Backend {
	return &decorated{Backend: b, attractions: attractions}
}

type decorated struct {
	Backend
	attractions AttractionStore
}

func (d *decorated) Attractions() AttractionStore {
	return d.attractions
}
