package classifier

import "context"

// Result is the model's verdict on a single post.
type Result struct {
	Label  string
	Reason string
}

//go:generate go run go.uber.org/mock/mockgen -source=classifier.go -destination=mocks/mock.go
type Client interface {
	// Classify sends the post text to the LLM and returns the chosen
	// category label, plus a reasoning string when the model supplied one.
	Classify(ctx context.Context, text string) (Result, error)
}
