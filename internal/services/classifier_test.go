package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"surfpass/internal/models"
)

func TestClassify_StructuredCodes(t *testing.T) {
	tests := []struct {
		code models.ErrorCode
		want models.FailureKind
	}{
		{models.CodeAuthRequired, models.KindAuthRequired},
		{models.CodeAmountMismatch, models.KindAmountMismatch},
		{models.CodeProviderUnavailable, models.KindProviderUnavailable},
		{models.CodeInvalidAmount, models.KindInvalidAmount},
		{models.CodeAmountTooLow, models.KindAmountTooLow},
		{models.CodeNoSeats, models.KindNoSeats},
		{models.CodeHoldExpired, models.KindHoldExpired},
		{models.CodeNotFound, models.KindNotFound},
		{models.CodeSessionNotFound, models.KindNotFound},
		{models.CodeActiveBookingExists, models.KindConflictExistingHold},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := &models.APIError{Status: 400, Code: tt.code, Message: "boom"}
			assert.Equal(t, tt.want, Classify(err))
		})
	}
}

func TestClassify_CodeWinsOverMessage(t *testing.T) {
	// The structured code is authoritative even when the message would
	// keyword-match something else.
	err := &models.APIError{Status: 400, Code: models.CodeNoSeats, Message: "hold expired"}
	assert.Equal(t, models.KindNoSeats, Classify(err))
}

func TestClassify_LegacyMessageFallback(t *testing.T) {
	tests := []struct {
		message string
		want    models.FailureKind
	}{
		{"session is sold out", models.KindNoSeats},
		{"booking hold expired", models.KindHoldExpired},
		{"user has an active booking for this session", models.KindConflictExistingHold},
		{"amount mismatch detected", models.KindAmountMismatch},
		{"below minimum amount", models.KindAmountTooLow},
		{"plan not found", models.KindNotFound},
		{"payment provider timed out", models.KindProviderUnavailable},
		{"completely unknown failure", models.KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			err := &models.APIError{Status: 400, Message: tt.message}
			assert.Equal(t, tt.want, Classify(err))
		})
	}
}

func TestClassify_HTTPStatusFallback(t *testing.T) {
	assert.Equal(t, models.KindAuthRequired, Classify(&models.APIError{Status: 401, Message: "x"}))
	assert.Equal(t, models.KindNotFound, Classify(&models.APIError{Status: 404, Message: "x"}))
	assert.Equal(t, models.KindProviderUnavailable, Classify(&models.APIError{Status: 503, Message: "x"}))
}

func TestClassify_Sentinels(t *testing.T) {
	assert.Equal(t, models.KindNoSeats, Classify(fmt.Errorf("wrap: %w", models.ErrNoSeats)))
	assert.Equal(t, models.KindNotFound, Classify(fmt.Errorf("wrap: %w", models.ErrSessionNotFound)))
	assert.Equal(t, models.KindHoldExpired, Classify(models.ErrHoldExpired))
	assert.Equal(t, models.KindAmountTooLow, Classify(models.ErrAmountTooLow))
	assert.Equal(t, models.KindInvalidAmount, Classify(models.ErrMissingSelection))
}

func TestClassify_Total(t *testing.T) {
	// Whatever comes in, exactly one taxonomy value comes out.
	inputs := []error{
		nil,
		errors.New(""),
		errors.New("???"),
		context.DeadlineExceeded,
		fmt.Errorf("deep: %w", fmt.Errorf("deeper: %w", errors.New("x"))),
		&models.APIError{},
	}
	for _, err := range inputs {
		kind := Classify(err)
		assert.NotEmpty(t, kind)
	}
}

func TestClassify_DeadlineIsProviderUnavailable(t *testing.T) {
	assert.Equal(t, models.KindProviderUnavailable, Classify(fmt.Errorf("dialog: %w", context.DeadlineExceeded)))
}

func TestUserMessage_AuthRequiredIsSilent(t *testing.T) {
	assert.Empty(t, UserMessage(models.KindAuthRequired))
	assert.NotEmpty(t, UserMessage(models.KindGeneric))
	assert.NotEmpty(t, UserMessage(models.FailureKind("UNKNOWN")))
}
