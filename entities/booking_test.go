package entities_test

import (
	"testing"

	"venues/entities"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, entities.BookingStatusPending.CanTransitionTo(entities.BookingStatusApproved))
	assert.True(t, entities.BookingStatusPending.CanTransitionTo(entities.BookingStatusRejected))

	assert.False(t, entities.BookingStatusApproved.CanTransitionTo(entities.BookingStatusPending))
	assert.False(t, entities.BookingStatusApproved.CanTransitionTo(entities.BookingStatusRejected))
	assert.False(t, entities.BookingStatusRejected.CanTransitionTo(entities.BookingStatusApproved))
	assert.False(t, entities.BookingStatusRejected.CanTransitionTo(entities.BookingStatusPending))
}
