package itinerary

// Catalog maps a lower-case interest tag to the activities that can fill a
// morning or afternoon slot for it.
type Catalog map[string][]string

// DefaultCatalog is the built-in activity catalogue.
var DefaultCatalog = Catalog{
	"nature": {
		"Sunrise hike to a nearby viewpoint",
		"Guided walk through a national park",
		"Visit a waterfall and picnic by the stream",
		"Botanical garden tour",
	},
	"adventure": {
		"River rafting session",
		"Paragliding with a certified pilot",
		"Zip-lining over the valley",
		"Mountain biking on forest trails",
	},
	"food": {
		"Street food tasting tour",
		"Cooking class with a local family",
		"Spice market walk",
		"Lunch at a well-known regional restaurant",
	},
	"culture": {
		"Heritage walk through the old town",
		"Visit the city museum",
		"Explore a historic fort or palace",
		"Folk craft workshop",
	},
	"history": {
		"Guided tour of ancient monuments",
		"Visit archaeological ruins",
		"Explore colonial-era architecture",
	},
	"beach": {
		"Morning swim and beach walk",
		"Snorkelling trip",
		"Sunset cruise along the coast",
		"Water sports at the main beach",
	},
	"shopping": {
		"Browse the local bazaar",
		"Handicraft emporium visit",
		"Souvenir hunt in the market lanes",
	},
	"relaxation": {
		"Spa and wellness session",
		"Lakeside yoga class",
		"Slow morning at a hillside cafe",
	},
	"nightlife": {
		"Live music venue crawl",
		"Rooftop lounge evening warm-up",
		"Night market stroll",
	},
	"spiritual": {
		"Temple visit and morning prayers",
		"Meditation session at an ashram",
		"Attend a riverside ceremony",
	},
}

// Pool returns the activities for interest, or nil when the catalogue has
// no entry for it.
func (c Catalog) Pool(interest string) []string {
	if c == nil {
		return nil
	}
	return c[interest]
}
