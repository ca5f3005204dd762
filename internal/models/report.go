package models

import "encoding/json"

// ManualReport is a saved run of the manual calculator: a name plus the
// opaque input/result payload the client chose to store. The server never
// interprets Data.
type ManualReport struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"createdAt"`
}
