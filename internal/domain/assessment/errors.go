package assessment

import (
	"errors"
	"fmt"
)

var (
	// ErrInstrumentNotFound is returned for an unregistered assessment id.
	ErrInstrumentNotFound = errors.New("assessment not found")

	// ErrInvalidResponses matches every response count or value error.
	ErrInvalidResponses = errors.New("invalid responses")

	// ErrInvalidSubmission is returned when a submission lacks a patient or assessment.
	ErrInvalidSubmission = errors.New("invalid submission")
)

// ResponseCountError reports a response vector whose length does not match
// the instrument's question count.
type ResponseCountError struct {
	AssessmentID string
	Expected     int
	Got          int
}

func (e *ResponseCountError) Error() string {
	return fmt.Sprintf("%s requires exactly %d responses, got %d", e.AssessmentID, e.Expected, e.Got)
}

func (e *ResponseCountError) Is(target error) bool {
	return target == ErrInvalidResponses
}

// ResponseValueError reports a response outside the instrument's scale.
// Only raised by registries built with WithStrictResponses.
type ResponseValueError struct {
	AssessmentID string
	Index        int
	Value        int
	Min          int
	Max          int
}

func (e *ResponseValueError) Error() string {
	return fmt.Sprintf("%s response %d is %d, must be between %d and %d",
		e.AssessmentID, e.Index, e.Value, e.Min, e.Max)
}

func (e *ResponseValueError) Is(target error) bool {
	return target == ErrInvalidResponses
}

func checkLength(id string, expected int, responses []int) error {
	if len(responses) != expected {
		return &ResponseCountError{AssessmentID: id, Expected: expected, Got: len(responses)}
	}
	return nil
}
