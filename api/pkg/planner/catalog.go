package planner

const fallbackImage = "https://images.unsplash.com/photo-1542640244-7e672d6cef4e?w=800&h=600&fit=crop"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?w=800&h=600&fit=crop"
}

// Catalog is an ordered list of reference activities
type Catalog []Activity

// Filter keeps activities in any of the categories, preserving catalog order.
func (c Catalog) Filter(categories []ActivityType) []Activity {
	wanted := make(map[ActivityType]bool, len(categories))
	for _, cat := range categories {
		wanted[cat] = true
	}

	out := make([]Activity, 0, len(c))
	for _, a := range c {
		if wanted[a.Category] {
			out = append(out, a)
		}
	}
	return out
}

// Find looks up an activity by id.
func (c Catalog) Find(id string) (Activity, bool) {
	for _, a := range c {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// ByCategory groups the catalog, with an entry for every known category.
func (c Catalog) ByCategory() map[ActivityType][]Activity {
	out := make(map[ActivityType][]Activity, len(ActivityTypes))
	for _, t := range ActivityTypes {
		out[t] = []Activity{}
	}
	for _, a := range c {
		out[a.Category] = append(out[a.Category], a)
	}
	return out
}

// DefaultCatalog returns the built-in catalog of Japanese attractions.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:          "temple-1",
			Title:       "Senso-ji Temple",
			Description: "Tokyo's oldest temple, featuring traditional architecture and bustling market streets.",
			Category:    ActivityTemples,
			Location: Location{
				Name:        "Senso-ji Temple",
				Address:     "2-3-1 Asakusa, Taito City, Tokyo",
				Coordinates: Coordinates{Lat: 35.7148, Lng: 139.7967},
				Prefecture:  "Tokyo",
				City:        "Asakusa",
			},
			Duration: 120,
			Images: []string{
				unsplash("photo-1528164344705-47542687000d"),
				unsplash("photo-1542051841857-5f90071e7989"),
				unsplash("photo-1604608672516-f0a4a33b6b15"),
			},
			Rating: 4.6,
			Price:  0,
			Tips: []string{
				"Visit early morning to avoid crowds",
				"Try traditional snacks at Nakamise Street",
			},
			CulturalSignificance: "Dedicated to Kannon, the bodhisattva of compassion. Founded in 628 AD, it is the spiritual heart of Tokyo.",
			HistoricalContext:    "Established in 628 AD after two fishermen found a golden statue of Kannon in the Sumida River. Rebuilt after WWII as a symbol of rebirth.",
			AccessibilityInfo:    "Wheelchair accessible main hall with ramps. Audio guides available in multiple languages.",
			ImageAltTexts: []string{
				"Red pagoda and temple buildings surrounded by visitors",
				"Nakamise-dori shopping street with red lanterns leading to the temple",
				"Wooden temple details and curved rooflines",
			},
			BestVisitSeasons: []string{"Spring for cherry blossoms", "Fall for autumn colors", "Winter for illuminations"},
		},
		{
			ID:          "temple-2",
			Title:       "Kiyomizu-dera Temple",
			Description: "Famous wooden temple in Kyoto offering panoramic city views and seasonal beauty.",
			Category:    ActivityTemples,
			Location: Location{
				Name:        "Kiyomizu-dera Temple",
				Address:     "1-294 Kiyomizu, Higashiyama Ward, Kyoto",
				Coordinates: Coordinates{Lat: 34.9948, Lng: 135.7850},
				Prefecture:  "Kyoto",
				City:        "Kyoto",
			},
			Duration: 90,
			Images: []string{
				unsplash("photo-1545569341-9eb8b30979d9"),
				unsplash("photo-1493976040374-85c8e12f0c0e"),
				unsplash("photo-1503899036084-c55cdd92da26"),
			},
			Rating: 4.7,
			Price:  400,
			Tips: []string{
				"Best visited during cherry blossom season",
				"Wear comfortable walking shoes",
			},
			CulturalSignificance: "UNESCO World Heritage site whose main hall was built without a single nail.",
			HistoricalContext:    "Founded in 778 AD in the early Heian period; the current halls date from 1633.",
			AccessibilityInfo:    "Steep walking paths, wheelchair assistance recommended. Rest areas along the climb.",
			ImageAltTexts: []string{
				"Wooden hall on a hillside overlooking the Kyoto cityscape",
				"Temple rooflines among green trees",
				"Panoramic view of Kyoto from the temple platform",
			},
			BestVisitSeasons: []string{"Spring for cherry blossoms", "Fall for maple leaves", "Winter for snow views"},
		},
		{
			ID:          "food-1",
			Title:       "Tsukiji Outer Market Food Tour",
			Description: "Experience fresh sushi, street food, and traditional Japanese breakfast dishes.",
			Category:    ActivityFood,
			Location: Location{
				Name:        "Tsukiji Outer Market",
				Address:     "Tsukiji, Chuo City, Tokyo",
				Coordinates: Coordinates{Lat: 35.6654, Lng: 139.7707},
				Prefecture:  "Tokyo",
				City:        "Tsukiji",
			},
			Duration: 180,
			Images: []string{
				unsplash("photo-1563612116625-3012372fccce"),
				unsplash("photo-1553909489-cd47e0ef937f"),
				unsplash("photo-1571019613454-1cb2f99b2d8b"),
			},
			Rating: 4.8,
			Price:  3500,
			Tips: []string{
				"Arrive early for freshest fish",
				"Bring cash as many vendors don't accept cards",
			},
			CulturalSignificance: "Heart of Tokyo's food culture, where wholesale tradition meets culinary innovation.",
			HistoricalContext:    "The outer market has served Tokyo since 1935 and stayed after the inner market moved to Toyosu.",
			AccessibilityInfo:    "Crowded narrow alleys with limited wheelchair access. Many stalls have picture menus.",
			BestVisitSeasons:     []string{"Year-round", "Winter for best tuna", "Spring for seasonal specialties"},
		},
		{
			ID:          "food-2",
			Title:       "Kaiseki Dining Experience",
			Description: "Traditional multi-course Japanese haute cuisine showcasing seasonal ingredients.",
			Category:    ActivityFood,
			Location: Location{
				Name:        "Kikunoi Restaurant",
				Address:     "459 Shimogawara-cho, Higashiyama Ward, Kyoto",
				Coordinates: Coordinates{Lat: 34.9987, Lng: 135.7802},
				Prefecture:  "Kyoto",
				City:        "Kyoto",
			},
			Duration: 150,
			Images: []string{
				unsplash("photo-1565299624946-b28f40a0ca4b"),
				unsplash("photo-1546833999-b9f581a1996d"),
				unsplash("photo-1559181567-c3190ca9959b"),
			},
			Rating: 4.9,
			Price:  15000,
			Tips:   []string{"Reservations required well in advance", "Dress code applies"},
		},
		{
			ID:          "shopping-1",
			Title:       "Shibuya Crossing & Shopping",
			Description: "Iconic crossing and surrounding shopping districts with fashion, electronics, and souvenirs.",
			Category:    ActivityShopping,
			Location: Location{
				Name:        "Shibuya Crossing",
				Address:     "Shibuya City, Tokyo",
				Coordinates: Coordinates{Lat: 35.6598, Lng: 139.7006},
				Prefecture:  "Tokyo",
				City:        "Shibuya",
			},
			Duration: 240,
			Images: []string{
				unsplash("photo-1540959733332-eab4deabeeaf"),
				fallbackImage,
				unsplash("photo-1596484552834-6a58f850e0a1"),
			},
			Rating: 4.5,
			Price:  5000,
			Tips:   []string{"Visit during evening for best atmosphere", "Watch crossing from Starbucks overlook"},
		},
		{
			ID:          "nature-1",
			Title:       "Arashiyama Bamboo Grove",
			Description: "Walk through towering bamboo stalks creating a natural green tunnel.",
			Category:    ActivityNature,
			Location: Location{
				Name:        "Arashiyama Bamboo Grove",
				Address:     "Arashiyama, Ukyo Ward, Kyoto",
				Coordinates: Coordinates{Lat: 35.0170, Lng: 135.6761},
				Prefecture:  "Kyoto",
				City:        "Arashiyama",
			},
			Duration: 60,
			Images: []string{
				unsplash("photo-1478436127897-769e1b3f0f36"),
				fallbackImage,
				unsplash("photo-1536431311719-398b6704d4cc"),
			},
			Rating: 4.4,
			Price:  0,
			Tips:   []string{"Early morning visits are less crowded", "Combine with nearby Tenryu-ji Temple"},
		},
		{
			ID:          "culture-1",
			Title:       "Tea Ceremony Experience",
			Description: "Learn the art of Japanese tea ceremony in a traditional tatami room.",
			Category:    ActivityCulture,
			Location: Location{
				Name:        "Urasenke Foundation",
				Address:     "Omotesenke, Kamigyo Ward, Kyoto",
				Coordinates: Coordinates{Lat: 35.0308, Lng: 135.7625},
				Prefecture:  "Kyoto",
				City:        "Kyoto",
			},
			Duration: 90,
			Images: []string{
				unsplash("photo-1544787219-7f47ccb76574"),
				unsplash("photo-1571934811356-5cc061b6821f"),
				unsplash("photo-1563805042-7684c019e1cb"),
			},
			Rating: 4.7,
			Price:  2500,
			Tips:   []string{"Wear comfortable clothes for sitting seiza", "Learn basic etiquette beforehand"},
		},
		{
			ID:          "nightlife-1",
			Title:       "Golden Gai Bar Hopping",
			Description: "Tiny bars in narrow alleys offering unique atmospheres and local drinks.",
			Category:    ActivityNightlife,
			Location: Location{
				Name:        "Golden Gai",
				Address:     "1 Kabukicho, Shinjuku City, Tokyo",
				Coordinates: Coordinates{Lat: 35.6938, Lng: 139.7034},
				Prefecture:  "Tokyo",
				City:        "Shinjuku",
			},
			Duration: 180,
			Images: []string{
				fallbackImage,
				unsplash("photo-1556075798-4825dfaaf498"),
				unsplash("photo-1544198365-f5d60b6d8190"),
			},
			Rating: 4.3,
			Price:  4000,
			Tips:   []string{"Some bars charge cover fees", "Cash only in most establishments"},
		},
		{
			ID:          "museums-1",
			Title:       "Tokyo National Museum",
			Description: "Japan's largest collection of cultural artifacts and art treasures.",
			Category:    ActivityMuseums,
			Location: Location{
				Name:        "Tokyo National Museum",
				Address:     "13-9 Uenokoen, Taito City, Tokyo",
				Coordinates: Coordinates{Lat: 35.7188, Lng: 139.7766},
				Prefecture:  "Tokyo",
				City:        "Ueno",
			},
			Duration: 120,
			Images: []string{
				unsplash("photo-1594736797933-d0402ba786a6"),
				unsplash("photo-1580121441575-41bcb5c6b47c"),
				unsplash("photo-1578662996442-48f60103fc96"),
			},
			Rating: 4.4,
			Price:  1000,
			Tips:   []string{"Audio guides available in multiple languages", "Free entry on International Museum Day"},
		},
		{
			ID:          "entertainment-1",
			Title:       "Robot Restaurant Show",
			Description: "Spectacular robot show with lights, music, and dancing in Shinjuku.",
			Category:    ActivityEntertainment,
			Location: Location{
				Name:        "Robot Restaurant",
				Address:     "1-7-1 Kabukicho, Shinjuku City, Tokyo",
				Coordinates: Coordinates{Lat: 35.6950, Lng: 139.7050},
				Prefecture:  "Tokyo",
				City:        "Shinjuku",
			},
			Duration: 90,
			Images: []string{
				fallbackImage,
				unsplash("photo-1542051841857-5f90071e7989"),
				unsplash("photo-1540959733332-eab4deabeeaf"),
			},
			Rating: 4.2,
			Price:  8000,
			Tips:   []string{"Book tickets in advance", "Arrive 30 minutes early"},
		},
	}
}
