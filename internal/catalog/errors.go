package catalog

// LoadFailure is the only error the controller knows. It covers network
// errors, non-success responses and malformed payloads alike.
type LoadFailure struct {
	Err error
}

func (e *LoadFailure) Error() string {
	return "failed to load catalog: " + e.Err.Error()
}

func (e *LoadFailure) Unwrap() error {
	return e.Err
}

// User-facing messages shared by every presenter
const (
	LoadErrorMessage = "שגיאה בטעינת הספרים. נסו לרענן את הדף."
	NoResultsMessage = "לא נמצאו ספרים התואמים לחיפוש."
	DownloadLabel    = "הורדה"
)
