package apperror

// AppError carries an HTTP status code alongside a user-facing message.
// The wrapped error, if any, is for logs only and never reaches the client.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// WithErr returns a copy of e carrying err as the underlying cause.
// Useful for annotating sentinel errors without mutating them.
func (e *AppError) WithErr(err error) *AppError {
	return &AppError{
		Status:  e.Status,
		Message: e.Message,
		Err:     err,
	}
}
