package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/session"
)

// Error codes.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeInvalidExercise = "INVALID_EXERCISE"
	CodeNotFound        = "NOT_FOUND"
	CodeUnknownQuestion = "UNKNOWN_QUESTION"
	CodeAnswerShape     = "ANSWER_SHAPE"
	CodeIncomplete      = "INCOMPLETE"
	CodeSubmitted       = "ALREADY_SUBMITTED"
	CodeInternal        = "INTERNAL_ERROR"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func badRequest(message string, details any) *APIError {
	return &APIError{Code: CodeBadRequest, Message: message, Details: details, Status: http.StatusBadRequest}
}

func notFound(resource string) *APIError {
	return &APIError{Code: CodeNotFound, Message: resource + " not found", Status: http.StatusNotFound}
}

// toAPIError maps domain errors onto HTTP statuses.
func toAPIError(err error) *APIError {
	var (
		apiErr     *APIError
		invalid    *exercise.ValidationError
		unknown    *session.UnknownQuestionError
		shape      *session.AnswerShapeError
		incomplete *session.IncompleteError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &invalid):
		return &APIError{Code: CodeInvalidExercise, Message: "exercise rejected", Details: invalid.Reason, Status: http.StatusUnprocessableEntity}
	case errors.As(err, &unknown):
		return &APIError{Code: CodeUnknownQuestion, Message: err.Error(), Details: gin.H{"questionId": unknown.QuestionID}, Status: http.StatusNotFound}
	case errors.As(err, &shape):
		return &APIError{Code: CodeAnswerShape, Message: err.Error(), Details: gin.H{"questionId": shape.QuestionID, "kind": shape.Kind}, Status: http.StatusBadRequest}
	case errors.As(err, &incomplete):
		return &APIError{
			Code:    CodeIncomplete,
			Message: "unanswered questions remain; resubmit with force to confirm",
			Details: gin.H{"answered": incomplete.Answered, "total": incomplete.Total},
			Status:  http.StatusConflict,
		}
	case errors.Is(err, session.ErrSubmitted):
		return &APIError{Code: CodeSubmitted, Message: err.Error(), Status: http.StatusConflict}
	case errors.Is(err, session.ErrNotLoaded):
		return notFound("exercise")
	default:
		return &APIError{Code: CodeInternal, Message: "internal server error", Status: http.StatusInternalServerError}
	}
}

// respondError writes err as an APIError. Internal errors are logged.
func (s *Server) respondError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.log.Error("request failed", zapRequest(c, err)...)
	}
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
