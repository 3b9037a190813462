package partner_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailability_LastAssignedAtMillis(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("never assigned is zero", func(t *testing.T) {
		a, err := partner.NewAvailability(id, partner.Available, nil)

		require.NoError(t, err)
		assert.Nil(t, a.LastAssignedAt())
		assert.Zero(t, a.LastAssignedAtMillis())
	})

	t.Run("assigned returns epoch millis", func(t *testing.T) {
		at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

		a, err := partner.NewAvailability(id, partner.Available, &at)

		require.NoError(t, err)
		assert.Equal(t, at.UnixMilli(), a.LastAssignedAtMillis())
	})

	t.Run("nil partner id is rejected", func(t *testing.T) {
		_, err := partner.NewAvailability(kernel.UUID{}, partner.Available, nil)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestNewAvailablePartner(t *testing.T) {
	id := kernel.NewUUID()
	profile, err := partner.NewProfile(id, kernel.NewLocality("Pune", "Maharashtra"), kernel.Coordinates{})
	require.NoError(t, err)

	t.Run("joins matching records", func(t *testing.T) {
		availability, _ := partner.NewAvailability(id, partner.Available, nil)

		p, err := partner.NewAvailablePartner(availability, profile)

		require.NoError(t, err)
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "Pune", p.Profile().Locality().City())
		assert.NoError(t, p.Validate())
	})

	t.Run("rejects another partner's profile", func(t *testing.T) {
		availability, _ := partner.NewAvailability(kernel.NewUUID(), partner.Available, nil)

		_, err := partner.NewAvailablePartner(availability, profile)

		require.ErrorIs(t, err, partner.ErrProfileMismatch)
	})

	t.Run("rejects partners that are not available", func(t *testing.T) {
		availability, _ := partner.NewAvailability(id, partner.Busy, nil)

		_, err := partner.NewAvailablePartner(availability, profile)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAvailablePartner_Validate_ZeroValue(t *testing.T) {
	var p partner.AvailablePartner

	require.ErrorIs(t, p.Validate(), partner.ErrAvailablePartnerIsNotConstructed)
}
