package dynamo

import (
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// encodeCursor turns a LastEvaluatedKey into an opaque token:
// base64(JSON object of the key's string members). All key attributes in this
// schema are strings, so non-string members are dropped.
func encodeCursor(lastKey map[string]types.AttributeValue) string {
	if len(lastKey) == 0 {
		return ""
	}
	simplified := make(map[string]string, len(lastKey))
	for name, av := range lastKey {
		if s, ok := av.(*types.AttributeValueMemberS); ok {
			simplified[name] = s.Value
		}
	}
	b, err := json.Marshal(simplified)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

// decodeCursor reverses encodeCursor. Malformed input fails closed: the
// query proceeds as if no cursor was supplied.
func decodeCursor(cursor string) map[string]types.AttributeValue {
	if cursor == "" {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil
	}
	var simplified map[string]string
	if err := json.Unmarshal(b, &simplified); err != nil {
		return nil
	}
	if len(simplified) == 0 {
		return nil
	}
	key := make(map[string]types.AttributeValue, len(simplified))
	for name, v := range simplified {
		key[name] = &types.AttributeValueMemberS{Value: v}
	}
	return key
}
