package research

import "context"

// Paper is one fetched citation, shaped for direct inclusion in analysis
// responses.
type Paper struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Journal   string `json:"journal"`
	Relevance string `json:"relevance"`
	Summary   string `json:"summary"`
}

// Provider fetches published research for a search query. Implementations
// must respect context cancellation and return promptly when the context is
// cancelled.
type Provider interface {
	// Search returns up to maxResults papers relevant to the query.
	Search(ctx context.Context, query string, maxResults int) ([]Paper, error)

	// HealthCheck verifies the upstream source is reachable. It is called
	// by the readiness probe, never by the request path.
	HealthCheck(ctx context.Context) error

	// Name identifies the provider in logs and health output.
	Name() string
}
