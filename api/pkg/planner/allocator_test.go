package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func templeCatalog() Catalog {
	return Catalog{
		{ID: "temple-1", Title: "Senso-ji", Category: ActivityTemples, Duration: 120, Price: 0},
		{ID: "food-1", Title: "Tsukiji", Category: ActivityFood, Duration: 180, Price: 3500},
		{ID: "temple-2", Title: "Kiyomizu-dera", Category: ActivityTemples, Duration: 90, Price: 400},
	}
}

func fixedID() Option {
	return WithIDGenerator(func() string { return "itinerary-1" })
}

func basePrefs() TripPreferences {
	return TripPreferences{
		StartDate:   date("2024-04-01"),
		EndDate:     date("2024-04-03"),
		Adults:      2,
		Activities:  []ActivityType{ActivityTemples},
		BudgetRange: BudgetMid,
		TripPace:    PaceModerate,
	}
}

func TestGenerate_TempleScenario(t *testing.T) {
	alloc := NewAllocator(templeCatalog(), fixedID())

	it, err := alloc.Generate(basePrefs())
	require.NoError(t, err)

	assert.Equal(t, "itinerary-1", it.ID)
	assert.Equal(t, 2, it.TripDuration)
	require.Len(t, it.Days, 2)

	assert.Equal(t, 1, it.Days[0].Day)
	assert.Equal(t, date("2024-04-01"), it.Days[0].Date)
	require.Len(t, it.Days[0].Activities, 1)
	assert.Equal(t, "temple-1", it.Days[0].Activities[0].ID)

	assert.Equal(t, 2, it.Days[1].Day)
	assert.Equal(t, date("2024-04-02"), it.Days[1].Date)
	require.Len(t, it.Days[1].Activities, 1)
	assert.Equal(t, "temple-2", it.Days[1].Activities[0].ID)

	assert.Equal(t, 800.0, it.TotalEstimatedCost)
}

func TestGenerate_SameDayTripIsOneDay(t *testing.T) {
	prefs := basePrefs()
	prefs.EndDate = prefs.StartDate

	it, err := NewAllocator(templeCatalog()).Generate(prefs)
	require.NoError(t, err)

	assert.Equal(t, 1, it.TripDuration)
	require.Len(t, it.Days, 1)
	assert.Len(t, it.Days[0].Activities, 2)
}

func TestGenerate_PartialDayRoundsUp(t *testing.T) {
	prefs := basePrefs()
	prefs.EndDate = prefs.StartDate.Add(36 * time.Hour)

	it, err := NewAllocator(templeCatalog()).Generate(prefs)
	require.NoError(t, err)
	assert.Equal(t, 2, it.TripDuration)
}

func TestGenerate_EmptySelectionAfterFiltering(t *testing.T) {
	prefs := basePrefs()
	prefs.Activities = []ActivityType{ActivityMuseums}

	it, err := NewAllocator(templeCatalog()).Generate(prefs)
	require.NoError(t, err)

	require.Len(t, it.Days, 2)
	for _, d := range it.Days {
		assert.NotNil(t, d.Activities)
		assert.Empty(t, d.Activities)
	}
	assert.Zero(t, it.TotalEstimatedCost)
}

func TestGenerate_NeverSchedulesUnrequestedCategories(t *testing.T) {
	prefs := basePrefs()
	prefs.EndDate = date("2024-04-10")
	prefs.Activities = []ActivityType{ActivityFood, ActivityNature}

	it, err := GenerateItinerary(prefs)
	require.NoError(t, err)

	for _, d := range it.Days {
		for _, a := range d.Activities {
			assert.True(t, prefs.Wants(a.Category), "unexpected category %s", a.Category)
		}
	}
}

func TestGenerate_CountsAndUniqueness(t *testing.T) {
	catalog := Catalog{}
	for i := 0; i < 23; i++ {
		catalog = append(catalog, Activity{
			ID:       fmt.Sprintf("a-%d", i),
			Category: ActivityCulture,
			Duration: 60,
			Price:    float64(100 * i),
		})
	}

	for _, days := range []int{1, 2, 3, 5, 6, 10, 30} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			prefs := basePrefs()
			prefs.Activities = []ActivityType{ActivityCulture}
			prefs.EndDate = prefs.StartDate.AddDate(0, 0, days)
			prefs.Children = 1
			prefs.Infants = 1

			it, err := NewAllocator(catalog).Generate(prefs)
			require.NoError(t, err)
			require.Len(t, it.Days, days)

			m := len(catalog)
			perDay := min(MaxActivitiesPerDay, (m+days-1)/days)
			assert.Equal(t, min(m, days*perDay), it.ActivityCount())

			seen := map[string]bool{}
			expectedCost := 0.0
			for i, d := range it.Days {
				assert.Equal(t, i+1, d.Day)
				assert.LessOrEqual(t, len(d.Activities), MaxActivitiesPerDay)
				for _, a := range d.Activities {
					assert.False(t, seen[a.ID], "activity %s scheduled twice", a.ID)
					seen[a.ID] = true
					expectedCost += a.Price * 4
				}
			}
			assert.Equal(t, expectedCost, it.TotalEstimatedCost)
		})
	}
}

func TestGenerate_PreservesCatalogOrder(t *testing.T) {
	prefs := basePrefs()
	prefs.EndDate = prefs.StartDate
	prefs.Activities = []ActivityType{ActivityFood, ActivityTemples}

	it, err := NewAllocator(templeCatalog()).Generate(prefs)
	require.NoError(t, err)

	ids := []string{}
	for _, a := range it.Days[0].Activities {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"temple-1", "food-1", "temple-2"}, ids)
}

// Budget and pace are accepted but intentionally ignored by allocation.
func TestGenerate_BudgetAndPaceDoNotChangeAllocation(t *testing.T) {
	alloc := NewAllocator(DefaultCatalog(), fixedID())
	prefs := basePrefs()
	prefs.Activities = ActivityTypes

	relaxed := prefs
	relaxed.TripPace = PaceRelaxed
	relaxed.BudgetRange = BudgetLow
	packed := prefs
	packed.TripPace = PacePacked
	packed.BudgetRange = BudgetLuxury

	a, err := alloc.Generate(relaxed)
	require.NoError(t, err)
	b, err := alloc.Generate(packed)
	require.NoError(t, err)

	assert.Equal(t, a.Days, b.Days)
	assert.Equal(t, a.TotalEstimatedCost, b.TotalEstimatedCost)
}

func TestGenerate_IsDeterministic(t *testing.T) {
	alloc := NewAllocator(DefaultCatalog(), fixedID())
	prefs := basePrefs()
	prefs.Activities = []ActivityType{ActivityTemples, ActivityFood, ActivityCulture}

	a, err := alloc.Generate(prefs)
	require.NoError(t, err)
	b, err := alloc.Generate(prefs)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_RejectsInvalidPreferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TripPreferences)
		field  string
	}{
		{"missing start", func(p *TripPreferences) { p.StartDate = time.Time{} }, "startDate"},
		{"missing end", func(p *TripPreferences) { p.EndDate = time.Time{} }, "endDate"},
		{"end before start", func(p *TripPreferences) { p.EndDate = date("2024-03-30") }, "endDate"},
		{"longer than a year", func(p *TripPreferences) { p.EndDate = date("2025-04-02") }, "endDate"},
		{"centuries apart", func(p *TripPreferences) { p.StartDate, p.EndDate = date("1700-01-01"), date("2100-01-01") }, "endDate"},
		{"no adults", func(p *TripPreferences) { p.Adults = 0 }, "adults"},
		{"negative children", func(p *TripPreferences) { p.Children = -1 }, "children"},
		{"negative infants", func(p *TripPreferences) { p.Infants = -2 }, "infants"},
		{"no activities", func(p *TripPreferences) { p.Activities = nil }, "activities"},
		{"unknown activity", func(p *TripPreferences) { p.Activities = []ActivityType{"karaoke"} }, "activities"},
		{"unknown budget", func(p *TripPreferences) { p.BudgetRange = "cheap" }, "budgetRange"},
		{"unknown pace", func(p *TripPreferences) { p.TripPace = "fast" }, "tripPace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := basePrefs()
			tt.mutate(&prefs)

			it, err := NewAllocator(templeCatalog()).Generate(prefs)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Empty(t, it.Days)
			assert.Empty(t, it.ID)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func TestGenerate_AcceptsMaximumTripLength(t *testing.T) {
	prefs := basePrefs()
	prefs.EndDate = date("2025-04-01")

	it, err := NewAllocator(templeCatalog()).Generate(prefs)
	require.NoError(t, err)
	assert.Equal(t, MaxTripDays, it.TripDuration)
	assert.Equal(t, date("2025-03-31"), it.Days[len(it.Days)-1].Date)
}

func TestGenerate_DoesNotAliasInput(t *testing.T) {
	prefs := basePrefs()
	it, err := NewAllocator(templeCatalog()).Generate(prefs)
	require.NoError(t, err)

	prefs.Activities[0] = ActivityFood
	assert.Equal(t, ActivityTemples, it.Preferences.Activities[0])
}

func TestTripDuration(t *testing.T) {
	d, err := TripDuration(date("2024-04-01"), date("2024-04-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = TripDuration(date("2024-04-01"), date("2024-04-08"))
	require.NoError(t, err)
	assert.Equal(t, 7, d)

	d, err = TripDuration(date("2024-04-01"), date("2024-04-02").Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	d, err = TripDuration(date("1700-01-01"), date("2100-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 146097, d)

	_, err = TripDuration(date("2024-04-08"), date("2024-04-01"))
	assert.Error(t, err)

	_, err = TripDuration(time.Time{}, date("2024-04-01"))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-04-01")
	require.NoError(t, err)
	assert.Equal(t, date("2024-04-01"), d)

	d, err = ParseDate("2024-04-01T00:00:00.000Z")
	require.NoError(t, err)
	assert.True(t, date("2024-04-01").Equal(d))

	_, err = ParseDate("April 1st")
	assert.Error(t, err)
	_, err = ParseDate(" ")
	assert.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	ids := map[string]bool{}
	for _, a := range catalog {
		assert.False(t, ids[a.ID], "duplicate id %s", a.ID)
		ids[a.ID] = true
		assert.True(t, a.Category.Valid())
		assert.Positive(t, a.Duration)
		assert.GreaterOrEqual(t, a.Price, 0.0)
		assert.NotEmpty(t, a.Images)
	}

	grouped := catalog.ByCategory()
	assert.Len(t, grouped, len(ActivityTypes))
	assert.Len(t, grouped[ActivityTemples], 2)
	assert.Len(t, grouped[ActivityMuseums], 1)

	a, ok := catalog.Find("nature-1")
	require.True(t, ok)
	assert.Equal(t, "Arashiyama Bamboo Grove", a.Title)
	_, ok = catalog.Find("missing")
	assert.False(t, ok)
}
