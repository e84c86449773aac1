package planner

// MapPin places a scheduled activity on the map
type MapPin struct {
	ID          string      `json:"id"`
	Day         int         `json:"day"`
	Order       int         `json:"order"`
	Coordinates Coordinates `json:"coordinates"`
	Activity    Activity    `json:"activity"`
}

// MapView is the payload of the interactive map
type MapView struct {
	Pins   []MapPin     `json:"pins"`
	Center *Coordinates `json:"center,omitempty"`
}

// MapPins returns one pin per scheduled activity, in day order.
func MapPins(it ItineraryData) MapView {
	view := MapView{Pins: []MapPin{}}
	var lat, lng float64

	for _, d := range it.Days {
		for i, a := range d.Activities {
			view.Pins = append(view.Pins, MapPin{
				ID:          a.ID,
				Day:         d.Day,
				Order:       i + 1,
				Coordinates: a.Location.Coordinates,
				Activity:    a,
			})
			lat += a.Location.Coordinates.Lat
			lng += a.Location.Coordinates.Lng
		}
	}

	if n := float64(len(view.Pins)); n > 0 {
		view.Center = &Coordinates{Lat: lat / n, Lng: lng / n}
	}
	return view
}

// GalleryItem is a scheduled activity as shown in the attraction gallery
type GalleryItem struct {
	Activity
	Day          int  `json:"day"`
	IsBookmarked bool `json:"isBookmarked"`
}

// Gallery flattens the itinerary and flags bookmarked activities.
func Gallery(it ItineraryData, bookmarks []string) []GalleryItem {
	marked := make(map[string]bool, len(bookmarks))
	for _, id := range bookmarks {
		marked[id] = true
	}

	items := make([]GalleryItem, 0, it.ActivityCount())
	for _, d := range it.Days {
		for _, a := range d.Activities {
			items = append(items, GalleryItem{
				Activity:     a,
				Day:          d.Day,
				IsBookmarked: marked[a.ID],
			})
		}
	}
	return items
}
