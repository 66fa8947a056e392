package pipeline

import (
	"errors"
	"net/http"
)

// Client facing messages.
const (
	MsgNoFile     = "No resume file provided"
	MsgNoFilename = "No file selected"
	MsgNotPDF     = "Only PDF files are allowed"
	MsgUnreadable = "Resume appears to be empty or unreadable"
)

// ValidationError is a rejected upload. It never reaches the extractor.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ContentError is an uploaded resume whose text is missing or too short.
type ContentError struct {
	Message string
}

func (e *ContentError) Error() string {
	return e.Message
}

// HTTPStatus maps a pipeline error onto the status code reported to clients.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var validationErr *ValidationError
	var contentErr *ContentError
	if errors.As(err, &validationErr) || errors.As(err, &contentErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
