package model

// SourceStat reports how many candidates a single source contributed to a
// mixed result set, before truncation to the requested limit.
type SourceStat struct {
	Count   int  `json:"count"`
	HasMore bool `json:"hasMore"`
}

// ListResponse is the envelope returned by every list-producing aggregation
// operation. Data is already mixed and truncated; per-source counts reflect
// the pre-mix candidate sets, so they sum to TotalCount rather than to
// len(Data).
type ListResponse[T any] struct {
	Data       []T                   `json:"data"`
	Sources    map[Source]SourceStat `json:"sources"`
	TotalCount int                   `json:"totalCount"`
	HasMore    bool                  `json:"hasMore"`
}

// VideoListResponse is the envelope for mixed video result sets.
type VideoListResponse = ListResponse[Video]
