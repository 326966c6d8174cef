package model

// Commodity is one commodity catalog entry. The catalog is managed by an
// external surface; the engine only reads it.
type Commodity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Market is one market catalog entry (pasar). External, read-only here.
type Market struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
