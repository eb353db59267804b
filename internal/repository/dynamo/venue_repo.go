package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"tickx/internal/domain"
)

type venueRepository struct {
	db     DynamoAPI
	table  string
	logger *slog.Logger
}

// NewVenueRepository returns a VenueRepository backed by the given table.
func NewVenueRepository(db DynamoAPI, table string, logger *slog.Logger) domain.VenueRepository {
	return &venueRepository{
		db:     db,
		table:  table,
		logger: logger,
	}
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	resp, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			attrPK: &types.AttributeValueMemberS{Value: venueKey(id)},
			attrSK: &types.AttributeValueMemberS{Value: venueKey(id)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", id, err)
	}
	if len(resp.Item) == 0 {
		return nil, domain.ErrNotFound
	}
	return parseVenue(resp.Item)
}

// FindByCity pages venues within a city partition. Venues have no date
// dimension; the sort key is the venue key itself.
func (r *venueRepository) FindByCity(ctx context.Context, city string, pageSize int, cursor string) (*domain.VenuePage, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(indexCity),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: cityPartition(city)},
		},
		Limit: aws.Int32(int32(clampPageSize(pageSize))),
	}
	if start := decodeCursor(cursor); start != nil {
		input.ExclusiveStartKey = start
	}

	resp, err := r.db.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query venues by city %s: %w", city, err)
	}

	venues := make([]*domain.Venue, 0, len(resp.Items))
	for _, item := range resp.Items {
		venue, err := parseVenue(item)
		if err != nil {
			r.logger.Warn("skipping unparsable venue item", "err", err)
			continue
		}
		venues = append(venues, venue)
	}

	nextCursor := encodeCursor(resp.LastEvaluatedKey)
	return &domain.VenuePage{
		Venues:  venues,
		HasMore: nextCursor != "",
		Cursor:  nextCursor,
	}, nil
}

func (r *venueRepository) Save(ctx context.Context, venue *domain.Venue) error {
	item, err := buildVenueItem(venue)
	if err != nil {
		return err
	}
	if _, err := r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put venue %s: %w", venue.ID, err)
	}
	return nil
}

// SaveBatch writes venues in chunks of 25 with the same chunk-isolation
// semantics as the event repository.
func (r *venueRepository) SaveBatch(ctx context.Context, venues []*domain.Venue) error {
	for start := 0; start < len(venues); start += maxBatchItems {
		end := start + maxBatchItems
		if end > len(venues) {
			end = len(venues)
		}

		writes := make([]types.WriteRequest, 0, end-start)
		for _, venue := range venues[start:end] {
			item, err := buildVenueItem(venue)
			if err != nil {
				r.logger.Error("skipping venue in batch", "venue_id", venue.ID, "err", err)
				continue
			}
			writes = append(writes, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(writes) == 0 {
			continue
		}

		_, err := r.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.table: writes},
		})
		if err != nil {
			r.logger.Error("venue batch chunk failed", "chunk_start", start, "err", err)
		}
	}
	return nil
}

func buildVenueItem(venue *domain.Venue) (map[string]types.AttributeValue, error) {
	if venue.ID == "" || venue.Name == "" {
		return nil, fmt.Errorf("%w: venue requires id and name", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(venue)
	if err != nil {
		return nil, fmt.Errorf("serialize venue %s: %w", venue.ID, err)
	}

	return map[string]types.AttributeValue{
		attrPK:         &types.AttributeValueMemberS{Value: venueKey(venue.ID)},
		attrSK:         &types.AttributeValueMemberS{Value: venueKey(venue.ID)},
		"GSI1PK":       &types.AttributeValueMemberS{Value: cityPartition(venue.City)},
		"GSI1SK":       &types.AttributeValueMemberS{Value: venueKey(venue.ID)},
		attrEntityType: &types.AttributeValueMemberS{Value: entityVenue},
		attrData:       &types.AttributeValueMemberS{Value: string(payload)},
	}, nil
}

// parseVenue decodes a stored venue item, accepting the same two payload
// encodings as parseEvent.
func parseVenue(item map[string]types.AttributeValue) (*domain.Venue, error) {
	data, ok := item[attrData]
	if !ok {
		return nil, fmt.Errorf("%w: item has no data attribute", domain.ErrUnparsable)
	}

	var venue domain.Venue
	switch v := data.(type) {
	case *types.AttributeValueMemberS:
		if err := json.Unmarshal([]byte(v.Value), &venue); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnparsable, err)
		}
	case *types.AttributeValueMemberM:
		if err := decodeAttributeMap(v.Value, &venue); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnparsable, err)
		}
	default:
		return nil, fmt.Errorf("%w: data attribute is neither string nor map", domain.ErrUnparsable)
	}
	return &venue, nil
}
