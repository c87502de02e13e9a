package model

// Shared defaults used by the CLI and the view.
const (
	DefaultEndpoint = "http://localhost:5000/api/data"
	DefaultSkin     = "default"

	ArgVarEnv      = "ARG_VAR"
	ArgVarFallback = "Variable Not Provided ,Please Provide"

	Title                 = "Sample Project"
	LoadingText           = "Loading data..."
	MessageLabel          = "Backend says: "
	FetchErrorPlaceholder = "Error fetching data"
)
