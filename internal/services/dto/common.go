package dto

// OKResponse is the bare success envelope.
type OKResponse struct {
	OK bool `json:"ok"`
}

// IDResponse is returned by public create endpoints.
type IDResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// ItemResponse wraps a single entity.
type ItemResponse[T any] struct {
	OK   bool `json:"ok"`
	Item T    `json:"item"`
}

// ItemsResponse wraps a list.
type ItemsResponse[T any] struct {
	OK    bool `json:"ok"`
	Items []T  `json:"items"`
}

func Item[T any](item T) ItemResponse[T] {
	return ItemResponse[T]{OK: true, Item: item}
}

func Items[T any](items []T) ItemsResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ItemsResponse[T]{OK: true, Items: items}
}
