package ridership

import (
	"sort"

	"fairflow/pkg/contracts/domain"
)

// Filter narrows ridership records to one time bucket. Zero values are
// wildcards; the hour window applies only when HourTo is at least HourFrom
// and positive. The dashboard's daytime view uses hours 6 through 20.
type Filter struct {
	HourFrom  int    `json:"hour_from"`
	HourTo    int    `json:"hour_to"`
	DayOfWeek string `json:"day_of_week,omitempty"`
	Month     int    `json:"month,omitempty"`
	Year      int    `json:"year,omitempty"`
}

// Match reports whether the record falls inside the filter's bucket.
func (f Filter) Match(r domain.RidershipRecord) bool {
	if f.HourTo > 0 && f.HourTo >= f.HourFrom {
		if r.HourOfDay < f.HourFrom || r.HourOfDay > f.HourTo {
			return false
		}
	}
	if f.DayOfWeek != "" && r.DayOfWeek != f.DayOfWeek {
		return false
	}
	if f.Month != 0 && r.Month != f.Month {
		return false
	}
	if f.Year != 0 && r.Year != f.Year {
		return false
	}
	return true
}

// Apply returns the records matching the filter, preserving order.
func Apply(records []domain.RidershipRecord, f Filter) []domain.RidershipRecord {
	var out []domain.RidershipRecord
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// AggregateDestinations groups records by destination station complex and
// returns one StationFlow per destination, sorted by summed ridership
// descending (ties broken by trip count, then name, for stable output).
func AggregateDestinations(records []domain.RidershipRecord) []domain.StationFlow {
	byID := make(map[string]*domain.StationFlow)
	order := make([]string, 0)

	for _, r := range records {
		flow, ok := byID[r.DestinationID]
		if !ok {
			flow = &domain.StationFlow{
				StationID:   r.DestinationID,
				StationName: r.DestinationName,
				Latitude:    r.DestinationLatitude,
				Longitude:   r.DestinationLongitude,
			}
			byID[r.DestinationID] = flow
			order = append(order, r.DestinationID)
		}
		flow.Trips++
		flow.Ridership += r.EstimatedRidership
	}

	flows := make([]domain.StationFlow, 0, len(order))
	for _, id := range order {
		flows = append(flows, *byID[id])
	}
	sort.SliceStable(flows, func(i, j int) bool {
		if flows[i].Ridership != flows[j].Ridership {
			return flows[i].Ridership > flows[j].Ridership
		}
		if flows[i].Trips != flows[j].Trips {
			return flows[i].Trips > flows[j].Trips
		}
		return flows[i].StationName < flows[j].StationName
	})
	return flows
}

// Top returns the first n flows of an aggregated ranking.
func Top(flows []domain.StationFlow, n int) []domain.StationFlow {
	if n < 0 {
		n = 0
	}
	if n > len(flows) {
		n = len(flows)
	}
	return flows[:n]
}

// Bottom returns the n least-ridden destinations, least first.
func Bottom(flows []domain.StationFlow, n int) []domain.StationFlow {
	if n < 0 {
		n = 0
	}
	if n > len(flows) {
		n = len(flows)
	}
	out := make([]domain.StationFlow, n)
	for i := 0; i < n; i++ {
		out[i] = flows[len(flows)-1-i]
	}
	return out
}

// IncomeBandFor buckets a zip-code median income the way the ridership maps
// color them. Non-positive values count as unknown.
func IncomeBandFor(income float64) domain.IncomeBand {
	switch {
	case income <= 0:
		return domain.IncomeBandUnknown
	case income < 50000:
		return domain.IncomeBandUnder50K
	case income < 100000:
		return domain.IncomeBandUnder100K
	case income < 150000:
		return domain.IncomeBandUnder150K
	case income < 200000:
		return domain.IncomeBandUnder200K
	default:
		return domain.IncomeBandOver200K
	}
}
