package hosted

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/models"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"gorm.io/datatypes"
)

const (
	tripsTable           = "trips"
	tripActivitiesTable  = "trip_activities"
	attractionsTable     = "attractions"
	attractionImageEmbed = "*,images:attraction_images(*)"
	usersTable           = "users"
)

// Insert payloads leave timestamps to the database defaults.
type tripInsert struct {
	ID          string                                       `json:"id"`
	UserID      string                                       `json:"user_id"`
	Title       string                                       `json:"title"`
	Description string                                       `json:"description"`
	StartDate   models.Date                                  `json:"start_date"`
	EndDate     models.Date                                  `json:"end_date"`
	GroupSize   int                                          `json:"group_size"`
	Adults      int                                          `json:"adults"`
	Children    int                                          `json:"children"`
	Infants     int                                          `json:"infants"`
	BudgetRange string                                       `json:"budget_range"`
	TripPace    string                                       `json:"trip_pace"`
	Preferences datatypes.JSONType[models.TripPreferenceSet] `json:"preferences"`
	Status      models.TripStatus                            `json:"status"`
}

type activityInsert struct {
	ID                string                `json:"id"`
	TripID            string                `json:"trip_id"`
	AttractionID      string                `json:"attraction_id,omitempty"`
	DayNumber         int                   `json:"day_number"`
	SortOrder         int                   `json:"sort_order"`
	StartTime         string                `json:"start_time,omitempty"`
	EstimatedDuration int                   `json:"estimated_duration,omitempty"`
	Status            models.ActivityStatus `json:"status"`
	IsCustom          bool                  `json:"is_custom"`
	CustomName        string                `json:"custom_name,omitempty"`
}

type userInsert struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name,omitempty"`
	Preferences models.JSON `json:"preferences"`
}

func (c *Client) CreateTrip(ctx context.Context, userID string, req store.CreateTripRequest) (_ *models.Trip, err error) {
	defer c.track("CreateTrip", tripsTable, time.Now(), &err)

	trip := store.NewTripFromRequest(userID, req)
	row := tripInsert{
		ID:          uuid.New().String(),
		UserID:      trip.UserID,
		Title:       trip.Title,
		Description: trip.Description,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		GroupSize:   trip.GroupSize,
		Adults:      trip.Adults,
		Children:    trip.Children,
		Infants:     trip.Infants,
		BudgetRange: trip.BudgetRange,
		TripPace:    trip.TripPace,
		Preferences: trip.Preferences,
		Status:      trip.Status,
	}

	var created models.Trip
	err = c.send(c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetHeader("Accept", singleObject).
		SetBody(row), http.MethodPost, tripsTable, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetUserTrips(ctx context.Context, userID string) (_ []models.Trip, err error) {
	defer c.track("GetUserTrips", tripsTable, time.Now(), &err)

	trips := []models.Trip{}
	err = c.send(c.request(ctx).SetQueryParams(map[string]string{
		"select":  "*",
		"user_id": eq(userID),
		"order":   "created_at.desc",
	}), http.MethodGet, tripsTable, &trips)
	return trips, err
}

func (c *Client) GetTripByID(ctx context.Context, tripID, userID string) (_ *models.Trip, err error) {
	defer c.track("GetTripByID", tripsTable, time.Now(), &err)
	return c.getTrip(ctx, tripID, userID)
}

func (c *Client) getTrip(ctx context.Context, tripID, userID string) (*models.Trip, error) {
	var trip models.Trip
	err := c.send(c.request(ctx).
		SetHeader("Accept", singleObject).
		SetQueryParams(map[string]string{
			"select":  "*",
			"id":      eq(tripID),
			"user_id": eq(userID),
		}), http.MethodGet, tripsTable, &trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *Client) UpdateTrip(ctx context.Context, tripID, userID string, update store.TripUpdate) (_ *models.Trip, err error) {
	defer c.track("UpdateTrip", tripsTable, time.Now(), &err)

	trip, err := c.getTrip(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	update.Apply(trip)
	if trip.EndDate.Before(trip.StartDate.Time) {
		return nil, &planner.ValidationError{Fields: planner.FieldErrors{"end_date": "End date must not be before start date"}}
	}
	if update.Empty() {
		return trip, nil
	}

	fields := update.Fields()
	fields["updated_at"] = time.Now().UTC()

	var updated models.Trip
	err = c.send(c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetHeader("Accept", singleObject).
		SetQueryParams(map[string]string{
			"id":      eq(tripID),
			"user_id": eq(userID),
		}).
		SetBody(fields), http.MethodPatch, tripsTable, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTrip(ctx context.Context, tripID, userID string) (err error) {
	defer c.track("DeleteTrip", tripsTable, time.Now(), &err)

	if _, err := c.getTrip(ctx, tripID, userID); err != nil {
		return err
	}
	if err := c.deleteActivities(ctx, tripID); err != nil {
		return err
	}
	return c.send(c.request(ctx).SetQueryParams(map[string]string{
		"id":      eq(tripID),
		"user_id": eq(userID),
	}), http.MethodDelete, tripsTable, nil)
}

func (c *Client) deleteActivities(ctx context.Context, tripID string) error {
	return c.send(c.request(ctx).SetQueryParam("trip_id", eq(tripID)),
		http.MethodDelete, tripActivitiesTable, nil)
}

func (c *Client) SaveItinerary(ctx context.Context, tripID, userID string, it planner.ItineraryData) (_ []models.TripActivity, err error) {
	defer c.track("SaveItinerary", tripActivitiesTable, time.Now(), &err)

	if _, err := c.getTrip(ctx, tripID, userID); err != nil {
		return nil, err
	}
	if err := c.deleteActivities(ctx, tripID); err != nil {
		return nil, err
	}

	rows := models.TripActivitiesFromItinerary(tripID, it)
	if len(rows) == 0 {
		return rows, nil
	}

	inserts := make([]activityInsert, 0, len(rows))
	for _, r := range rows {
		inserts = append(inserts, activityInsert{
			ID:                uuid.New().String(),
			TripID:            r.TripID,
			AttractionID:      r.AttractionID,
			DayNumber:         r.DayNumber,
			SortOrder:         r.SortOrder,
			StartTime:         r.StartTime,
			EstimatedDuration: r.EstimatedDuration,
			Status:            r.Status,
			IsCustom:          r.IsCustom,
			CustomName:        r.CustomName,
		})
	}

	saved := []models.TripActivity{}
	err = c.send(c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(inserts), http.MethodPost, tripActivitiesTable, &saved)
	return saved, err
}

func (c *Client) GetTripActivities(ctx context.Context, tripID, userID string) (_ []models.TripActivity, err error) {
	defer c.track("GetTripActivities", tripActivitiesTable, time.Now(), &err)

	if _, err := c.getTrip(ctx, tripID, userID); err != nil {
		return nil, err
	}

	activities := []models.TripActivity{}
	err = c.send(c.request(ctx).SetQueryParams(map[string]string{
		"select":  "*",
		"trip_id": eq(tripID),
		"order":   "day_number.asc,sort_order.asc",
	}), http.MethodGet, tripActivitiesTable, &activities)
	return activities, err
}

func (c *Client) GetAttractions(ctx context.Context, filter store.AttractionFilter) (_ []models.Attraction, err error) {
	defer c.track("GetAttractions", attractionsTable, time.Now(), &err)

	params := map[string]string{
		"select":       attractionImageEmbed,
		"order":        "popularity_score.desc",
		"images.order": "sort_order.asc",
	}
	if len(filter.Categories) > 0 {
		params["category"] = "in.(" + strings.Join(filter.CategoryStrings(), ",") + ")"
	}
	if filter.Prefecture != "" {
		params["prefecture"] = eq(filter.Prefecture)
	}
	if ceiling, ok := filter.MaxPrice(); ok {
		params["price"] = "lte." + strconv.FormatFloat(ceiling, 'f', -1, 64)
	}

	attractions := []models.Attraction{}
	err = c.send(c.request(ctx).SetQueryParams(params), http.MethodGet, attractionsTable, &attractions)
	return attractions, err
}

func (c *Client) GetAttractionByID(ctx context.Context, id string) (_ *models.Attraction, err error) {
	defer c.track("GetAttractionByID", attractionsTable, time.Now(), &err)

	var attraction models.Attraction
	err = c.send(c.request(ctx).
		SetHeader("Accept", singleObject).
		SetQueryParams(map[string]string{
			"select":       attractionImageEmbed,
			"id":           eq(id),
			"images.order": "sort_order.asc",
		}), http.MethodGet, attractionsTable, &attraction)
	if err != nil {
		return nil, err
	}
	return &attraction, nil
}

// searchFilter matches the query against name, description and location
// name. Quoting keeps reserved characters of the query out of the filter
// syntax.
func searchFilter(query string) string {
	q := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(strings.TrimSpace(query))
	pattern := `"*` + q + `*"`
	return "(name.ilike." + pattern + ",description.ilike." + pattern + ",location_name.ilike." + pattern + ")"
}

func (c *Client) SearchAttractions(ctx context.Context, query string, limit int) (_ []models.Attraction, err error) {
	defer c.track("SearchAttractions", attractionsTable, time.Now(), &err)

	if limit <= 0 {
		limit = store.DefaultSearchLimit
	}
	params := map[string]string{
		"select":       attractionImageEmbed,
		"order":        "popularity_score.desc",
		"images.order": "sort_order.asc",
		"limit":        strconv.Itoa(limit),
	}
	if strings.TrimSpace(query) != "" {
		params["or"] = searchFilter(query)
	}

	attractions := []models.Attraction{}
	err = c.send(c.request(ctx).SetQueryParams(params), http.MethodGet, attractionsTable, &attractions)
	return attractions, err
}

func (c *Client) CreateUser(ctx context.Context, email, fullName string) (_ *models.User, err error) {
	defer c.track("CreateUser", usersTable, time.Now(), &err)
	return c.insertUser(ctx, userInsert{
		ID:          uuid.New().String(),
		Email:       email,
		FullName:    fullName,
		Preferences: models.JSON{},
	}, "return=representation")
}

func (c *Client) insertUser(ctx context.Context, row userInsert, prefer string) (*models.User, error) {
	var user models.User
	err := c.send(c.request(ctx).
		SetHeader("Prefer", prefer).
		SetHeader("Accept", singleObject).
		SetBody(row), http.MethodPost, usersTable, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) getUser(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User
	err := c.send(c.request(ctx).
		SetHeader("Accept", singleObject).
		SetQueryParams(map[string]string{
			"select": "*",
			column:   eq(value),
		}), http.MethodGet, usersTable, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id string) (_ *models.User, err error) {
	defer c.track("GetUserByID", usersTable, time.Now(), &err)
	return c.getUser(ctx, "id", id)
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (_ *models.User, err error) {
	defer c.track("GetUserByEmail", usersTable, time.Now(), &err)
	return c.getUser(ctx, "email", email)
}

func (c *Client) UpdateUser(ctx context.Context, id string, update store.UserUpdate) (_ *models.User, err error) {
	defer c.track("UpdateUser", usersTable, time.Now(), &err)

	fields := update.Fields()
	if len(fields) == 0 {
		return c.getUser(ctx, "id", id)
	}
	fields["updated_at"] = time.Now().UTC()

	var user models.User
	err = c.send(c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetHeader("Accept", singleObject).
		SetQueryParam("id", eq(id)).
		SetBody(fields), http.MethodPatch, usersTable, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) (err error) {
	defer c.track("DeleteUser", usersTable, time.Now(), &err)

	var deleted []models.User
	err = c.send(c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", eq(id)), http.MethodDelete, usersTable, &deleted)
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return store.ErrNotFound
	}
	return nil
}

// EnsureUser inserts the user unless a row with the id exists and returns
// the stored row.
func (c *Client) EnsureUser(ctx context.Context, id, email, fullName string) (_ *models.User, err error) {
	defer c.track("EnsureUser", usersTable, time.Now(), &err)

	user, err := c.getUser(ctx, "id", id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	row := userInsert{ID: id, Email: email, FullName: fullName, Preferences: models.JSON{}}
	if _, err := c.insertUser(ctx, row, "resolution=ignore-duplicates,return=minimal"); err != nil {
		return nil, err
	}
	return c.getUser(ctx, "id", id)
}
