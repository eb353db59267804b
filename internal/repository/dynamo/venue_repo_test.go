package dynamo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickx/internal/domain"
)

func newVenueRepo(db *fakeDynamo) *venueRepository {
	return &venueRepository{
		db:     db,
		table:  "TickX-Venues",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testVenue(id string) *domain.Venue {
	return &domain.Venue{
		ID:          id,
		Name:        "Venue " + id,
		City:        "Chicago",
		StateCode:   "IL",
		Country:     "United States",
		CountryCode: "US",
		Timezone:    "America/Chicago",
		Source:      "ticketmaster",
	}
}

func venueItem(t *testing.T, venue *domain.Venue) map[string]types.AttributeValue {
	t.Helper()
	item, err := buildVenueItem(venue)
	require.NoError(t, err)
	return item
}

func TestVenueGetByID(t *testing.T) {
	want := testVenue("v-1")
	db := &fakeDynamo{
		getItemFn: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: venueItem(t, want)}, nil
		},
	}

	got, err := newVenueRepo(db).GetByID(context.Background(), "v-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	pk := db.gets[0].Key[attrPK].(*types.AttributeValueMemberS)
	assert.Equal(t, "VENUE#v-1", pk.Value)
}

func TestVenueGetByID_NotFound(t *testing.T) {
	_, err := newVenueRepo(&fakeDynamo{}).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseVenue_LegacyMapPayload(t *testing.T) {
	item := map[string]types.AttributeValue{
		attrData: &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"id":       &types.AttributeValueMemberS{Value: "v-legacy"},
			"name":     &types.AttributeValueMemberS{Value: "Legacy Venue"},
			"city":     &types.AttributeValueMemberS{Value: "Chicago"},
			"latitude": &types.AttributeValueMemberN{Value: "41.9"},
		}},
	}

	venue, err := parseVenue(item)
	require.NoError(t, err)
	assert.Equal(t, "v-legacy", venue.ID)
	assert.Equal(t, "Chicago", venue.City)
	require.NotNil(t, venue.Latitude)
	assert.Equal(t, 41.9, *venue.Latitude)
}

func TestVenueFindByCity(t *testing.T) {
	stored := testVenue("v-1")
	lastKey := map[string]types.AttributeValue{
		"GSI1PK": &types.AttributeValueMemberS{Value: "CITY#chicago"},
		"GSI1SK": &types.AttributeValueMemberS{Value: "VENUE#v-1"},
	}
	db := &fakeDynamo{
		queryFn: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{
				Items:            []map[string]types.AttributeValue{venueItem(t, stored)},
				LastEvaluatedKey: lastKey,
			}, nil
		},
	}

	page, err := newVenueRepo(db).FindByCity(context.Background(), "Chicago", 10, "")
	require.NoError(t, err)
	require.Len(t, page.Venues, 1)
	assert.Equal(t, stored, page.Venues[0])
	assert.True(t, page.HasMore)
	assert.Equal(t, encodeCursor(lastKey), page.Cursor)

	in := db.queries[0]
	assert.Equal(t, "GSI1", *in.IndexName)
	// Venues have no date dimension, so only partition equality applies.
	assert.Equal(t, "GSI1PK = :pk", *in.KeyConditionExpression)
	assert.Equal(t, "CITY#chicago", in.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, int32(10), *in.Limit)
}

func TestVenueSave_BuildsItem(t *testing.T) {
	db := &fakeDynamo{}
	require.NoError(t, newVenueRepo(db).Save(context.Background(), testVenue("v-1")))

	item := db.puts[0].Item
	assert.Equal(t, "VENUE#v-1", item[attrPK].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "VENUE#v-1", item[attrSK].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "CITY#chicago", item["GSI1PK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "VENUE#v-1", item["GSI1SK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, entityVenue, item[attrEntityType].(*types.AttributeValueMemberS).Value)
}

func TestVenueSave_InvalidVenue(t *testing.T) {
	err := newVenueRepo(&fakeDynamo{}).Save(context.Background(), &domain.Venue{ID: "v-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVenueSaveBatch_Chunks(t *testing.T) {
	db := &fakeDynamo{}
	venues := make([]*domain.Venue, 30)
	for i := range venues {
		venues[i] = testVenue(fmt.Sprintf("v-%02d", i))
	}

	require.NoError(t, newVenueRepo(db).SaveBatch(context.Background(), venues))

	require.Len(t, db.batches, 2)
	assert.Len(t, db.batches[0].RequestItems["TickX-Venues"], 25)
	assert.Len(t, db.batches[1].RequestItems["TickX-Venues"], 5)
}
