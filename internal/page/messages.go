package page

// User-facing copy shown on the page.
const (
	MsgNoProjections      = "No projections submitted yet for this user."
	MsgLoadingProjections = "Loading projections..."
	MsgHistoryError       = "Error loading projections. Please try again."
	MsgLoadErrorPrefix    = "Error loading projections: "
	MsgFetchFailed        = "Failed to fetch projections"

	MsgDirectoryFailed = "Failed to load salespersons."

	MsgValidation       = "Please fill in all required fields and ensure amounts are numbers."
	MsgSubmitted        = "Projection submitted successfully."
	MsgSubmitFailed     = "Failed to submit projection."
	MsgNetworkError     = "Network error or server unavailable. Please try again."
	MsgSubmitInProgress = "A submission is already in progress."
)
