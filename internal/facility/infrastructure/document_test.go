package infrastructure

import (
	"strings"
	"testing"

	domain "medbridge/internal/facility/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildDocument_IncludesReadableSpecialtiesAndCapacity(t *testing.T) {
	beds := 50
	f := domain.Facility{
		Name:         "Ridge Hospital",
		OrgType:      domain.OrganizationTypeFacility,
		FacilityType: "hospital",
		City:         "Accra",
		Region:       "Greater Accra",
		Specialties:  []string{"cardiacSurgery"},
		Beds:         &beds,
	}

	doc := BuildDocument(&f)
	assert.True(t, strings.Contains(doc, "Name: Ridge Hospital"))
	assert.True(t, strings.Contains(doc, "Cardiac Surgery"))
	assert.True(t, strings.Contains(doc, "Bed Capacity: 50"))
	assert.True(t, strings.Contains(doc, "Location: Accra, Greater Accra"))
}
