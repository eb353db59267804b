package dynamo

import "tickx/internal/domain"

// Index and attribute names shared by both entity tables.
const (
	attrPK         = "PK"
	attrSK         = "SK"
	attrEntityType = "entityType"
	attrData       = "data"

	indexCity     = "GSI1"
	indexCategory = "GSI2"
	indexVenue    = "GSI3"

	entityEvent = "EVENT"
	entityVenue = "VENUE"

	// farFutureDate is the open-ended upper bound for date range queries.
	farFutureDate = "2099-12-31"

	// maxBatchItems is DynamoDB's BatchWriteItem per-request limit.
	maxBatchItems = 25

	// maxPageSize caps any single query page.
	maxPageSize = 100
)

func eventKey(id string) string { return "EVENT#" + id }
func venueKey(id string) string { return "VENUE#" + id }

func cityPartition(city string) string { return "CITY#" + domain.CityKey(city) }

func categoryPartition(category domain.EventCategory) string {
	return "CATEGORY#" + string(category)
}

// eventSortKey composes the chronological sort key. The fixed-width ISO date
// prefix keeps lexicographic order equal to date order; the id suffix makes
// the key unique within a partition.
func eventSortKey(localDate, id string) string {
	return "DATE#" + localDate + "#EVENT#" + id
}

// sortRange returns the BETWEEN bounds for a date window. The upper bound's
// "#EVENT#zzz" suffix sorts after every real id on the boundary date.
func sortRange(dateFrom, dateTo, today string) (lo, hi string) {
	from := dateFrom
	if from == "" {
		from = today
	}
	to := dateTo
	if to == "" {
		to = farFutureDate
	}
	return "DATE#" + from, "DATE#" + to + "#EVENT#zzz"
}

func clampPageSize(n int) int {
	if n <= 0 {
		return 20
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}
