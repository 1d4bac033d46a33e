package models

import "time"

// MonthlyDataPoint holds one month of MGNREGA statistics for a district.
// Month is the canonical "YYYY-MM" key; the series on a district is unique
// and sorted ascending by it.
type MonthlyDataPoint struct {
	Month                     string  `bson:"month" json:"month"`
	Year                      int     `bson:"year" json:"year"`
	PersonsDemanded           int64   `bson:"personsDemanded" json:"personsDemanded"`
	PersonsEmployed           int64   `bson:"personsEmployed" json:"personsEmployed"`
	HouseholdsProvidedWork    int64   `bson:"householdsProvidedWork" json:"householdsProvidedWork"`
	TotalHouseholds           int64   `bson:"totalHouseholds" json:"totalHouseholds"`
	TotalExpenditure          float64 `bson:"totalExpenditure" json:"totalExpenditure"`
	AverageWagePaid           float64 `bson:"averageWagePaid" json:"averageWagePaid"`
	WagesPaid                 float64 `bson:"wagesPaid" json:"wagesPaid"`
	MaterialExpenditure       float64 `bson:"materialExpenditure" json:"materialExpenditure"`
	AdministrativeExpenditure float64 `bson:"administrativeExpenditure" json:"administrativeExpenditure"`
	TotalWorks                int     `bson:"totalWorks" json:"totalWorks"`
	CompletedWorks            int     `bson:"completedWorks" json:"completedWorks"`
	InProgressWorks           int     `bson:"inProgressWorks" json:"inProgressWorks"`
}

// RegionalName is a district name rendered in one regional language.
type RegionalName struct {
	Language string `bson:"language" json:"language"`
	Name     string `bson:"name" json:"name"`
}

// DistrictRecord is the persisted per-district time series. Latitude and
// longitude of 0,0 mean the coordinates are unknown.
type DistrictRecord struct {
	DistrictCode      string             `bson:"districtCode" json:"districtCode"`
	DistrictName      string             `bson:"districtName" json:"districtName"`
	StateCode         string             `bson:"stateCode" json:"stateCode"`
	StateName         string             `bson:"stateName" json:"stateName"`
	Latitude          float64            `bson:"latitude" json:"latitude"`
	Longitude         float64            `bson:"longitude" json:"longitude"`
	DataPoints        []MonthlyDataPoint `bson:"dataPoints" json:"dataPoints"`
	LastUpdated       time.Time          `bson:"lastUpdated" json:"lastUpdated"`
	CommonLanguages   []string           `bson:"commonLanguages" json:"commonLanguages"`
	RegionalLanguages []RegionalName     `bson:"regionalLanguages" json:"regionalLanguages"`
}

// DistrictInfo is the projection returned by the district listing endpoint.
type DistrictInfo struct {
	DistrictName string    `bson:"districtName" json:"districtName"`
	StateName    string    `bson:"stateName" json:"stateName"`
	Latitude     float64   `bson:"latitude" json:"latitude"`
	Longitude    float64   `bson:"longitude" json:"longitude"`
	LastUpdated  time.Time `bson:"lastUpdated" json:"lastUpdated"`
}
