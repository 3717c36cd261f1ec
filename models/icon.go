package models

import "encoding/json"

// Icon is the closed set of icons categories and amenities can reference.
type Icon int

const (
	IconUnknown Icon = iota
	IconBook
	IconCoffee
	IconVolumeX
	IconTrees
	IconUsers
	IconAccessibility
	IconTv
	IconUtensilsCrossed
	IconClock
	IconMoon
	IconPlug
	IconParkingCircle
	IconWifi
)

var iconNames = [...]string{
	IconUnknown:         "Unknown",
	IconBook:            "Book",
	IconCoffee:          "Coffee",
	IconVolumeX:         "VolumeX",
	IconTrees:           "Trees",
	IconUsers:           "Users",
	IconAccessibility:   "Accessibility",
	IconTv:              "Tv",
	IconUtensilsCrossed: "UtensilsCrossed",
	IconClock:           "Clock",
	IconMoon:            "Moon",
	IconPlug:            "Plug",
	IconParkingCircle:   "ParkingCircle",
	IconWifi:            "Wifi",
}

var iconGlyphs = [...]string{
	IconUnknown:         "•",
	IconBook:            "📚",
	IconCoffee:          "☕",
	IconVolumeX:         "🔇",
	IconTrees:           "🌳",
	IconUsers:           "👥",
	IconAccessibility:   "♿",
	IconTv:              "📺",
	IconUtensilsCrossed: "🍴",
	IconClock:           "🕒",
	IconMoon:            "🌙",
	IconPlug:            "🔌",
	IconParkingCircle:   "🅿",
	IconWifi:            "📶",
}

// ParseIcon resolves a stored icon name. Unrecognised names map to IconUnknown.
func ParseIcon(name string) Icon {
	for i, n := range iconNames {
		if n == name && Icon(i) != IconUnknown {
			return Icon(i)
		}
	}
	return IconUnknown
}

func (i Icon) String() string {
	if i < 0 || int(i) >= len(iconNames) {
		return iconNames[IconUnknown]
	}
	return iconNames[i]
}

// Glyph is the text symbol used wherever the icon is drawn server side.
func (i Icon) Glyph() string {
	if i < 0 || int(i) >= len(iconGlyphs) {
		return iconGlyphs[IconUnknown]
	}
	return iconGlyphs[i]
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Icon) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*i = ParseIcon(name)
	return nil
}
