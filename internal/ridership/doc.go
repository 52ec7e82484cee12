// Package ridership loads and aggregates the MTA subway origin-destination
// datasets that back the geographic ridership maps: per-bucket estimated
// ridership between station complexes, filtered by hour, day of week, month,
// and year, and rolled up into top/bottom destination rankings.
package ridership
