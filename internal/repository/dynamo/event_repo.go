package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"tickx/internal/domain"
)

type eventRepository struct {
	db     DynamoAPI
	table  string
	logger *slog.Logger
	now    func() time.Time
}

// NewEventRepository returns an EventRepository backed by the given table.
func NewEventRepository(db DynamoAPI, table string, logger *slog.Logger) domain.EventRepository {
	return &eventRepository{
		db:     db,
		table:  table,
		logger: logger,
		now:    time.Now,
	}
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	resp, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			attrPK: &types.AttributeValueMemberS{Value: eventKey(id)},
			attrSK: &types.AttributeValueMemberS{Value: eventKey(id)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	if len(resp.Item) == 0 {
		return nil, domain.ErrNotFound
	}
	return parseEvent(resp.Item)
}

func (r *eventRepository) FindByCity(ctx context.Context, city string, q domain.RangeQuery) (*domain.EventPage, error) {
	return r.queryIndex(ctx, indexCity, cityPartition(city), q)
}

func (r *eventRepository) FindByCategory(ctx context.Context, category domain.EventCategory, q domain.RangeQuery) (*domain.EventPage, error) {
	return r.queryIndex(ctx, indexCategory, categoryPartition(category), q)
}

func (r *eventRepository) FindByVenue(ctx context.Context, venueID string, q domain.RangeQuery) (*domain.EventPage, error) {
	return r.queryIndex(ctx, indexVenue, venueKey(venueID), q)
}

// queryIndex runs the shared range query: partition equality plus a BETWEEN
// on the dated sort key, with cursor continuation.
func (r *eventRepository) queryIndex(ctx context.Context, index, partition string, q domain.RangeQuery) (*domain.EventPage, error) {
	skStart, skEnd := sortRange(q.DateFrom, q.DateTo, r.now().Format("2006-01-02"))
	pageSize := clampPageSize(q.PageSize)

	input := &dynamodb.QueryInput{
		TableName: aws.String(r.table),
		IndexName: aws.String(index),
		KeyConditionExpression: aws.String(
			fmt.Sprintf("%sPK = :pk AND %sSK BETWEEN :skStart AND :skEnd", index, index)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":      &types.AttributeValueMemberS{Value: partition},
			":skStart": &types.AttributeValueMemberS{Value: skStart},
			":skEnd":   &types.AttributeValueMemberS{Value: skEnd},
		},
		Limit: aws.Int32(int32(pageSize)),
	}
	if start := decodeCursor(q.Cursor); start != nil {
		input.ExclusiveStartKey = start
	}

	resp, err := r.db.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query %s %s: %w", index, partition, err)
	}

	events := make([]*domain.Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		event, err := parseEvent(item)
		if err != nil {
			r.logger.Warn("skipping unparsable event item", "err", err)
			continue
		}
		events = append(events, event)
	}

	nextCursor := encodeCursor(resp.LastEvaluatedKey)
	return &domain.EventPage{
		Events:  events,
		HasMore: nextCursor != "",
		Cursor:  nextCursor,
	}, nil
}

func (r *eventRepository) ScanAll(ctx context.Context) ([]*domain.Event, error) {
	var events []*domain.Event
	var lastKey map[string]types.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName:        aws.String(r.table),
			FilterExpression: aws.String("entityType = :entityType"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":entityType": &types.AttributeValueMemberS{Value: entityEvent},
			},
		}
		if lastKey != nil {
			input.ExclusiveStartKey = lastKey
		}

		resp, err := r.db.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan events: %w", err)
		}
		for _, item := range resp.Items {
			event, err := parseEvent(item)
			if err != nil {
				r.logger.Warn("skipping unparsable event item", "err", err)
				continue
			}
			events = append(events, event)
		}

		lastKey = resp.LastEvaluatedKey
		if len(lastKey) == 0 {
			return events, nil
		}
	}
}

func (r *eventRepository) Save(ctx context.Context, event *domain.Event) error {
	item, err := buildEventItem(event)
	if err != nil {
		return err
	}
	if _, err := r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put event %s: %w", event.ID, err)
	}
	return nil
}

// SaveBatch writes events in chunks of 25. A failed chunk is logged and
// skipped; remaining chunks are still written, so a retried sync converges
// through idempotent upserts rather than rollback.
func (r *eventRepository) SaveBatch(ctx context.Context, events []*domain.Event) error {
	for start := 0; start < len(events); start += maxBatchItems {
		end := start + maxBatchItems
		if end > len(events) {
			end = len(events)
		}

		writes := make([]types.WriteRequest, 0, end-start)
		for _, event := range events[start:end] {
			item, err := buildEventItem(event)
			if err != nil {
				r.logger.Error("skipping event in batch", "event_id", event.ID, "err", err)
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
			r.logger.Error("event batch chunk failed", "chunk_start", start, "err", err)
		}
	}
	return nil
}

// buildEventItem recomputes every index attribute from the event's current
// fields and serializes the payload. All derived keys are pure functions of
// the entity, which makes re-ingestion idempotent.
func buildEventItem(event *domain.Event) (map[string]types.AttributeValue, error) {
	if event.ID == "" || event.Name == "" || event.LocalDate == "" {
		return nil, fmt.Errorf("%w: event requires id, name, and localDate", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("serialize event %s: %w", event.ID, err)
	}

	sortKey := eventSortKey(event.LocalDate, event.ID)
	return map[string]types.AttributeValue{
		attrPK:         &types.AttributeValueMemberS{Value: eventKey(event.ID)},
		attrSK:         &types.AttributeValueMemberS{Value: eventKey(event.ID)},
		"GSI1PK":       &types.AttributeValueMemberS{Value: cityPartition(event.VenueCity)},
		"GSI1SK":       &types.AttributeValueMemberS{Value: sortKey},
		"GSI2PK":       &types.AttributeValueMemberS{Value: categoryPartition(event.Category)},
		"GSI2SK":       &types.AttributeValueMemberS{Value: sortKey},
		"GSI3PK":       &types.AttributeValueMemberS{Value: venueKey(event.VenueID)},
		"GSI3SK":       &types.AttributeValueMemberS{Value: sortKey},
		attrEntityType: &types.AttributeValueMemberS{Value: entityEvent},
		attrData:       &types.AttributeValueMemberS{Value: string(payload)},
	}, nil
}

// parseEvent decodes a stored item's data attribute. Two payload encodings
// exist: a JSON string (current writers) and a nested attribute-value map
// (the legacy TypeScript document-client writer). Anything else is
// ErrUnparsable.
func parseEvent(item map[string]types.AttributeValue) (*domain.Event, error) {
	data, ok := item[attrData]
	if !ok {
		return nil, fmt.Errorf("%w: item has no data attribute", domain.ErrUnparsable)
	}

	var event domain.Event
	switch v := data.(type) {
	case *types.AttributeValueMemberS:
		if err := json.Unmarshal([]byte(v.Value), &event); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnparsable, err)
		}
	case *types.AttributeValueMemberM:
		if err := decodeAttributeMap(v.Value, &event); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnparsable, err)
		}
	default:
		return nil, fmt.Errorf("%w: data attribute is neither string nor map", domain.ErrUnparsable)
	}
	return &event, nil
}

// decodeAttributeMap unmarshals a nested attribute-value payload using the
// entities' json field names.
func decodeAttributeMap(m map[string]types.AttributeValue, out any) error {
	dec := attributevalue.NewDecoder(func(o *attributevalue.DecoderOptions) {
		o.TagKey = "json"
	})
	return dec.Decode(&types.AttributeValueMemberM{Value: m}, out)
}
