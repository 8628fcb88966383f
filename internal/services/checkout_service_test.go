package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

func TestShippingFee(t *testing.T) {
	threshold := 300.0
	zone := &models.ShippingZone{
		Name:                     "Greater Accra",
		FeeGhs:                   25,
		FreeShippingThresholdGhs: &threshold,
	}

	assert.Equal(t, 25.0, ShippingFee(zone, 100), "below threshold pays the zone fee")
	assert.Equal(t, 0.0, ShippingFee(zone, 300), "reaching the threshold is free")
	assert.Equal(t, 0.0, ShippingFee(zone, 450))
}

func TestShippingFee_NoThreshold(t *testing.T) {
	zone := &models.ShippingZone{Name: "Northern Region", FeeGhs: 60}

	assert.Equal(t, 60.0, ShippingFee(zone, 10))
	assert.Equal(t, 60.0, ShippingFee(zone, 100000), "no threshold means shipping is never free")
}
