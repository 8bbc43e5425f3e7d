package main

import (
	infrastructure "medbridge/internal/facility/infrastructure"
)

// builtinFixture is a small, self-contained Ghana facility/NGO catalog used
// when no external CSV data source is configured. Coordinates are
// approximate city centroids; capability lists intentionally leave a few
// gaps (ophthalmology at only three facilities, a neurosurgery claim
// without a CT scanner) so the
// demo scenarios have something to find.
func builtinFixture() []infrastructure.RawRow {
	return []infrastructure.RawRow{
		{
			PKUniqueID: "gh-001", UniqueID: "1", Name: "Korle Bu Teaching Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Accra", Region: "Greater Accra", Lat: "5.5365", Lng: "-0.2258",
			Beds: "2000", Doctors: "450", YearEstablished: "1923",
			Specialties:  `["cardiology","oncology","neurosurgery","pediatrics","orthopedics"]`,
			Procedures:   `["open heart surgery","dialysis","chemotherapy","ct scan"]`,
			Equipment:    `["MRI","CT Scanner","dialysis machine","ventilator"]`,
			Capabilities: `["ICU","operating theatre","blood bank"]`,
		},
		{
			PKUniqueID: "gh-002", UniqueID: "2", Name: "Ridge Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Accra", Region: "Greater Accra", Lat: "5.5700", Lng: "-0.1969",
			Beds: "420", Doctors: "90", YearEstablished: "1928",
			Specialties:  `["cardiology","maternity","emergency"]`,
			Procedures:   `["angioplasty","cesarean section"]`,
			Equipment:    `["ultrasound","x-ray"]`,
			Capabilities: `["ICU","operating theatre"]`,
		},
		{
			PKUniqueID: "gh-003", UniqueID: "3", Name: "37 Military Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Accra", Region: "Greater Accra", Lat: "5.5850", Lng: "-0.1700",
			Beds: "650", Doctors: "140", YearEstablished: "1952",
			Specialties:  `["cardiology","orthopedics","urology"]`,
			Procedures:   `["trauma surgery","joint replacement"]`,
			Equipment:    `["MRI","x-ray"]`,
			Capabilities: `["ICU","operating theatre"]`,
		},
		{
			PKUniqueID: "gh-004", UniqueID: "4", Name: "Komfo Anokye Teaching Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Kumasi", Region: "Ashanti", Lat: "6.6958", Lng: "-1.6281",
			Beds: "1200", Doctors: "300", YearEstablished: "1954",
			Specialties:  `["cardiology","oncology","neurosurgery","ophthalmology"]`,
			Procedures:   `["cataract surgery","chemotherapy","neurosurgery"]`,
			Equipment:    `["CT Scanner","MRI","laser"]`,
			Capabilities: `["ICU","operating theatre","blood bank"]`,
		},
		{
			PKUniqueID: "gh-005", UniqueID: "5", Name: "Suntreso Government Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Kumasi", Region: "Ashanti", Lat: "6.7045", Lng: "-1.6397",
			Beds: "180", Doctors: "35", YearEstablished: "1970",
			Specialties:  `["maternity","pediatrics"]`,
			Procedures:   `["cesarean section","vaccination"]`,
			Equipment:    `["ultrasound"]`,
			Capabilities: `["operating theatre"]`,
		},
		{
			PKUniqueID: "gh-006", UniqueID: "6", Name: "Tamale Teaching Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Tamale", Region: "Northern", Lat: "9.4008", Lng: "-0.8181",
			Beds: "800", Doctors: "160", YearEstablished: "1974",
			Specialties:  `["cardiology","pediatrics","emergency"]`,
			Procedures:   `["angioplasty","trauma care"]`,
			Equipment:    `["x-ray","ultrasound"]`,
			Capabilities: `["ICU","operating theatre"]`,
		},
		{
			PKUniqueID: "gh-007", UniqueID: "7", Name: "Tamale West Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Tamale", Region: "Northern", Lat: "9.3900", Lng: "-0.8500",
			Beds: "90", Doctors: "12", YearEstablished: "1998",
			Specialties:  `["emergency","maternity"]`,
			Procedures:   `["cesarean section"]`,
			Equipment:    `[]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-008", UniqueID: "8", Name: "Effia Nkwanta Regional Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Sekondi", Region: "Western", Lat: "4.9401", Lng: "-1.7031",
			Beds: "350", Doctors: "60", YearEstablished: "1935",
			Specialties:  `["cardiology","surgery","maternity"]`,
			Procedures:   `["general surgery","cesarean section"]`,
			Equipment:    `["x-ray","ultrasound"]`,
			Capabilities: `["ICU","operating theatre"]`,
		},
		{
			PKUniqueID: "gh-009", UniqueID: "9", Name: "Cape Coast Teaching Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Cape Coast", Region: "Central", Lat: "5.1192", Lng: "-1.2843",
			Beds: "400", Doctors: "70", YearEstablished: "2009",
			Specialties:  `["cardiology","oncology","dermatology"]`,
			Procedures:   `["chemotherapy","biopsy"]`,
			Equipment:    `["x-ray","ultrasound"]`,
			Capabilities: `["ICU","operating theatre"]`,
		},
		{
			PKUniqueID: "gh-010", UniqueID: "10", Name: "Sunyani Regional Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Sunyani", Region: "Bono", Lat: "7.3333", Lng: "-2.3333",
			Beds: "250", Doctors: "40", YearEstablished: "1987",
			Specialties:  `["maternity","orthopedics"]`,
			Procedures:   `["joint replacement","cesarean section"]`,
			Equipment:    `["x-ray"]`,
			Capabilities: `["operating theatre"]`,
		},
		{
			PKUniqueID: "gh-011", UniqueID: "11", Name: "Koforidua Regional Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Koforidua", Region: "Eastern", Lat: "6.0941", Lng: "-0.2587",
			Beds: "300", Doctors: "55", YearEstablished: "1920",
			Specialties:  `["cardiology","nephrology"]`,
			Procedures:   `["dialysis"]`,
			Equipment:    `["dialysis machine"]`,
			Capabilities: `["ICU"]`,
		},
		{
			PKUniqueID: "gh-012", UniqueID: "12", Name: "Ho Teaching Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Ho", Region: "Volta", Lat: "6.6000", Lng: "0.4667",
			Beds: "320", Doctors: "65", YearEstablished: "1990",
			Specialties:  `["maternity","pediatrics","emergency"]`,
			Procedures:   `["cesarean section","vaccination"]`,
			Equipment:    `["ultrasound"]`,
			Capabilities: `["operating theatre"]`,
		},
		{
			PKUniqueID: "gh-013", UniqueID: "13", Name: "Upper East Regional Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Bolgatanga", Region: "Upper East", Lat: "10.7854", Lng: "-0.8513",
			Beds: "150", Doctors: "22", YearEstablished: "1960",
			Specialties:  `["maternity","emergency"]`,
			Procedures:   `["cesarean section"]`,
			Equipment:    `[]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-014", UniqueID: "14", Name: "Wa Regional Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Wa", Region: "Upper West", Lat: "10.0601", Lng: "-2.5099",
			Beds: "140", Doctors: "18", YearEstablished: "1965",
			Specialties:  `["maternity","pediatrics"]`,
			Procedures:   `["cesarean section","vaccination"]`,
			Equipment:    `[]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-015", UniqueID: "15", Name: "Lister Hospital and Fertility Centre",
			OrganizationType: "facility", FacilityType: "clinic",
			City: "Accra", Region: "Greater Accra", Lat: "5.6100", Lng: "-0.1800",
			Beds: "40", Doctors: "15", YearEstablished: "2005",
			Specialties:  `["cardiology","ophthalmology"]`,
			Procedures:   `["cataract surgery","angioplasty"]`,
			Equipment:    `["laser"]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-016", UniqueID: "16", Name: "Crystal Eye Clinic",
			OrganizationType: "facility", FacilityType: "clinic",
			City: "Kumasi", Region: "Ashanti", Lat: "6.6900", Lng: "-1.6200",
			Beds: "10", Doctors: "4", YearEstablished: "2012",
			Specialties:  `["ophthalmology"]`,
			Procedures:   `["cataract surgery"]`,
			Equipment:    `["laser"]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-017", UniqueID: "17", Name: "Adabraka Polyclinic",
			OrganizationType: "facility", FacilityType: "clinic",
			City: "Accra", Region: "Greater Accra", Lat: "5.5600", Lng: "-0.2100",
			Beds: "30", Doctors: "6", YearEstablished: "1968",
			Specialties:  `["dermatology","psychiatry"]`,
			Procedures:   `["biopsy"]`,
			Equipment:    `[]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-018", UniqueID: "18", Name: "North Star Surgical Clinic",
			OrganizationType: "facility", FacilityType: "clinic",
			City: "Tamale", Region: "Northern", Lat: "9.4100", Lng: "-0.8400",
			Beds: "25", Doctors: "3", YearEstablished: "2015",
			Specialties:  `["neurosurgery"]`,
			Procedures:   `["neurosurgery"]`,
			Equipment:    `[]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-019", UniqueID: "19", Name: "Trust Dental Clinic",
			OrganizationType: "facility", FacilityType: "dentist",
			City: "Accra", Region: "Greater Accra", Lat: "5.5900", Lng: "-0.2000",
			Beds: "5", Doctors: "3", YearEstablished: "2001",
			Specialties:  `["dentistry"]`,
			Procedures:   `["tooth extraction","root canal"]`,
			Equipment:    `[]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-020", UniqueID: "20", Name: "Ernest Chemist",
			OrganizationType: "facility", FacilityType: "pharmacy",
			City: "Accra", Region: "Greater Accra", Lat: "5.6050", Lng: "-0.1900",
			Beds: "", Doctors: "",
			Specialties:  `[]`,
			Procedures:   `[]`,
			Equipment:    `[]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-021", UniqueID: "21", Name: "Hope for Health Foundation",
			OrganizationType: "ngo", FacilityType: "clinic",
			City: "Tamale", Region: "Northern", Lat: "9.4050", Lng: "-0.8350",
			Beds: "20", Doctors: "5", YearEstablished: "2010",
			Specialties:  `["maternity","pediatrics"]`,
			Procedures:   `["vaccination","prenatal care"]`,
			Equipment:    `["ultrasound"]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-022", UniqueID: "22", Name: "World Vision Ghana Health Post",
			OrganizationType: "ngo", FacilityType: "clinic",
			City: "Wa", Region: "Upper West", Lat: "10.0650", Lng: "-2.5000",
			Beds: "15", Doctors: "2", YearEstablished: "2008",
			Specialties:  `["pediatrics"]`,
			Procedures:   `["vaccination"]`,
			Equipment:    `[]`,
			Capabilities: `[]`,
		},
		{
			PKUniqueID: "gh-023", UniqueID: "23", Name: "Obuasi Government Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Obuasi", Region: "Ashanti", Lat: "6.2025", Lng: "-1.6700",
			Beds: "200", Doctors: "30", YearEstablished: "1955",
			Specialties:  `["orthopedics","emergency"]`,
			Procedures:   `["trauma care"]`,
			Equipment:    `["x-ray"]`,
			Capabilities: `["operating theatre"]`,
		},
		{
			PKUniqueID: "gh-024", UniqueID: "24", Name: "Techiman Holy Family Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Techiman", Region: "Bono", Lat: "7.5833", Lng: "-1.9333",
			Beds: "260", Doctors: "45", YearEstablished: "1974",
			Specialties:  `["maternity","surgery"]`,
			Procedures:   `["cesarean section","general surgery"]`,
			Equipment:    `["x-ray","ultrasound"]`,
			Capabilities: `["ICU","operating theatre"]`,
		},
		{
			PKUniqueID: "gh-025", UniqueID: "25", Name: "Tema General Hospital",
			OrganizationType: "facility", FacilityType: "hospital",
			City: "Tema", Region: "Greater Accra", Lat: "5.6698", Lng: "-0.0166",
			Beds: "500", Doctors: "95", YearEstablished: "1958",
			Specialties:  `["cardiology","oncology","orthopedics"]`,
			Procedures:   `["angioplasty","chemotherapy","joint replacement"]`,
			Equipment:    `["MRI","x-ray"]`,
			Capabilities: `["ICU","operating theatre","blood bank"]`,
		},
	}
}
