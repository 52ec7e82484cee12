package domain

// RidershipRecord is one row of the MTA subway origin-destination dataset:
// an estimated average ridership between two station complexes for a given
// hour-of-day / day-of-week / month / year bucket.
type RidershipRecord struct {
	Year                int     `json:"year" csv:"Year"`
	Month               int     `json:"month" csv:"Month"`
	DayOfWeek           string  `json:"day_of_week" csv:"Day of Week"`
	HourOfDay           int     `json:"hour_of_day" csv:"Hour of Day"`
	OriginID            string  `json:"origin_station_complex_id" csv:"Origin Station Complex ID"`
	OriginName          string  `json:"origin_station_complex_name" csv:"Origin Station Complex Name"`
	OriginLatitude      float64 `json:"origin_latitude" csv:"Origin Latitude"`
	OriginLongitude     float64 `json:"origin_longitude" csv:"Origin Longitude"`
	DestinationID       string  `json:"destination_station_complex_id" csv:"Destination Station Complex ID"`
	DestinationName     string  `json:"destination_station_complex_name" csv:"Destination Station Complex Name"`
	DestinationLatitude float64 `json:"destination_latitude" csv:"Destination Latitude"`
	DestinationLongitude float64 `json:"destination_longitude" csv:"Destination Longitude"`
	EstimatedRidership  float64 `json:"estimated_average_ridership" csv:"Estimated Average Ridership"`
}

// StationFlow is an aggregated destination entry: how many trips and how
// much estimated ridership ended at one station complex.
type StationFlow struct {
	StationID   string  `json:"station_complex_id"`
	StationName string  `json:"station_complex_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Trips       int     `json:"trips"`
	Ridership   float64 `json:"ridership"`
}

// IncomeBand buckets a zip-code median income the way the ridership maps
// color them.
type IncomeBand string

const (
	IncomeBandUnknown   IncomeBand = "unknown"
	IncomeBandUnder50K  IncomeBand = "under_50k"
	IncomeBandUnder100K IncomeBand = "under_100k"
	IncomeBandUnder150K IncomeBand = "under_150k"
	IncomeBandUnder200K IncomeBand = "under_200k"
	IncomeBandOver200K  IncomeBand = "over_200k"
)
