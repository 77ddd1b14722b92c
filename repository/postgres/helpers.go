package postgres

import "encoding/json"

// marshalMap encodes a findings map for a jsonb column. The column is NOT
// NULL, so an empty or unencodable map becomes an empty JSON object rather
// than SQL NULL.
func marshalMap(data map[string]string) []byte {
	if len(data) == 0 {
		return []byte("{}")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return []byte("{}")
	}
	return b
}
