package mcp

// --- Tool Arguments ---

type SearchArgs struct {
	Point []float32 `json:"point" jsonschema:"The query point; its length must match the index dimensionality,required"`
}

type SearchResult struct {
	ID       string    `json:"id"`
	Point    []float32 `json:"point"`
	Distance float64   `json:"distance"` // squared Euclidean distance
}

type InsertArgs struct {
	ID    string    `json:"id,omitempty" jsonschema:"Identifier for the point. A UUID is generated when omitted"`
	Point []float32 `json:"point" jsonschema:"The point coordinates,required"`
}

type InsertResult struct {
	ID     string `json:"id"`
	Points int    `json:"points"`
}

type SaveArgs struct{}

type SaveResult struct {
	Path   string `json:"path"`
	Points int    `json:"points"`
}

type StatsArgs struct{}

type StatsResult struct {
	Points int `json:"points"`
	Height int `json:"height"`
	Dims   int `json:"dims"`
}
