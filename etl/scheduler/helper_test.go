package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLToID(t *testing.T) {
	var useCases = []struct {
		description string
		URL         string
		expect      string
	}{
		{
			description: "deep path keeps trailing segments",
			URL:         "file:///opt/etl/schedules/db1/orders.yaml",
			expect:      "schedules:db1:orders.yaml",
		},
		{
			description: "short path",
			URL:         "file:///orders.yaml",
			expect:      ":orders.yaml",
		},
	}
	for _, useCase := range useCases {
		assert.Equal(t, useCase.expect, urlToID(useCase.URL), useCase.description)
	}
}
