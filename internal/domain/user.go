package domain

import (
	"encoding/json"
	"time"
)

type User struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	AuthMethod string    `json:"authMethod,omitempty"`
	IsVerified bool      `json:"isVerified"`
	Addresses  []Address `json:"addresses"`
	// Orders, FavoriteProducts and Cart come back either as ids or populated
	// documents depending on the endpoint, so only their length is relied on.
	Orders           []json.RawMessage `json:"orders"`
	FavoriteProducts []json.RawMessage `json:"favoriteProducts"`
	Cart             []json.RawMessage `json:"cart"`
	CreatedAt        time.Time         `json:"createdAt"`
}

type Admin struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
