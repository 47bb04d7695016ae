package core

// errors.go defines the domain errors of the transformation service and
// maps them to stable, user-facing messages.
//
// Error codes are grouped by category:
//
//	CRS001 - Unknown CRS key
//	CRS002 - Missing coordinates
//	CRS003 - Non-numeric coordinate value
//
//	REQ001 - Unreadable request body
//
//	FILE001 - No file provided
//	FILE002 - File is not parseable as CSV
//	FILE003 - CSV has no data rows
//
//	JOB001 - Too many concurrent batch jobs
//	JOB002 - Job history is not configured
//
// Clients can quote the code when reporting a problem; the message and
// action fields are safe to display as-is.

import "errors"

var (
	// ErrUnknownCRS is returned when a request names a CRS key outside
	// the supported set.
	ErrUnknownCRS = errors.New("unknown CRS key")

	// ErrMissingCoordinates is returned when a request carries no usable
	// coordinate pair.
	ErrMissingCoordinates = errors.New("missing coordinate values")

	// ErrNotNumeric is returned when a coordinate value cannot be parsed
	// as a number.
	ErrNotNumeric = errors.New("coordinate value is not numeric")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid request body")

	// ErrNoFile is returned when a batch request has no uploaded file.
	ErrNoFile = errors.New("no file provided")

	// ErrInvalidCSV is returned when the uploaded file cannot be read as CSV.
	ErrInvalidCSV = errors.New("invalid csv file")

	// ErrEmptyCSV is returned when the CSV contains a header but no rows.
	ErrEmptyCSV = errors.New("csv file has no data rows")

	// ErrTooManyJobs is returned when all batch slots are occupied and
	// the wait timeout expires.
	ErrTooManyJobs = errors.New("too many concurrent batch jobs, please try again later")

	// ErrHistoryDisabled is returned when job history is requested but no
	// database is configured.
	ErrHistoryDisabled = errors.New("job history is not configured")
)

// UserMessage is the client-facing rendering of an error.
type UserMessage struct {
	Code    string
	Message string
	Action  string
}

// MapError translates a service error into a UserMessage with a stable
// code. Unrecognized errors get a generic message; the technical detail
// stays in the server log.
func MapError(err error) UserMessage {
	switch {
	case errors.Is(err, ErrUnknownCRS):
		return UserMessage{
			Code:    "CRS001",
			Message: "The requested coordinate reference system is not supported",
			Action:  "Use one of the keys listed by /api/crs-info",
		}
	case errors.Is(err, ErrMissingCoordinates):
		return UserMessage{
			Code:    "CRS002",
			Message: "No coordinate values were provided",
			Action:  "Send lon/lat for geographic systems or x/y for projected systems",
		}
	case errors.Is(err, ErrNotNumeric):
		return UserMessage{
			Code:    "CRS003",
			Message: "A coordinate value is not a valid number",
			Action:  "Check the coordinate fields for stray characters",
		}
	case errors.Is(err, ErrInvalidJSON):
		return UserMessage{
			Code:    "REQ001",
			Message: "The request body could not be read",
			Action:  "Send a JSON object matching the endpoint's documented shape",
		}
	case errors.Is(err, ErrNoFile):
		return UserMessage{
			Code:    "FILE001",
			Message: "No file was uploaded",
			Action:  "Attach a CSV file to the request",
		}
	case errors.Is(err, ErrInvalidCSV):
		return UserMessage{
			Code:    "FILE002",
			Message: "The uploaded file could not be read as CSV",
			Action:  "Ensure the file is comma-separated UTF-8 text with a header row",
		}
	case errors.Is(err, ErrEmptyCSV):
		return UserMessage{
			Code:    "FILE003",
			Message: "The CSV file contains no data rows",
			Action:  "Add at least one coordinate row below the header",
		}
	case errors.Is(err, ErrTooManyJobs):
		return UserMessage{
			Code:    "JOB001",
			Message: "The server is processing too many batch jobs right now",
			Action:  "Retry in a few seconds",
		}
	case errors.Is(err, ErrHistoryDisabled):
		return UserMessage{
			Code:    "JOB002",
			Message: "Job history is not available on this deployment",
			Action:  "Configure DATABASE_URL to enable batch job history",
		}
	default:
		return UserMessage{
			Code:    "GEN001",
			Message: "An unexpected error occurred",
			Action:  "Please try again; quote code GEN001 if the problem persists",
		}
	}
}
