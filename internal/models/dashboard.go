package models

import "time"

// EmploymentSummary reports the latest month's demand and employment. Rate is
// formatted with one decimal ("80.0") and is "0" when nobody demanded work.
type EmploymentSummary struct {
	PersonsDemanded int64  `json:"personsDemanded"`
	PersonsEmployed int64  `json:"personsEmployed"`
	EmploymentRate  string `json:"employmentRate"`
}

type ExpenditureSummary struct {
	Total    float64 `json:"total"`
	Wages    float64 `json:"wages"`
	Material float64 `json:"material"`
	Admin    float64 `json:"admin"`
}

type WorksSummary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
}

// Summary is the headline block of a dashboard response, derived from the
// latest data point of the selected district.
type Summary struct {
	DistrictName             string             `json:"districtName"`
	DistrictNameTranslations []RegionalName     `json:"districtNameTranslations"`
	StateName                string             `json:"stateName"`
	DetectedLanguages        []string           `json:"detectedLanguages"`
	LastUpdated              time.Time          `json:"lastUpdated"`
	CurrentMonth             string             `json:"currentMonth"`
	Employment               EmploymentSummary  `json:"employment"`
	Expenditure              ExpenditureSummary `json:"expenditure"`
	Works                    WorksSummary       `json:"works"`
}

// Explanations holds the plain-language sentences for the three chart kinds.
type Explanations struct {
	Employment  string `json:"employment"`
	Expenditure string `json:"expenditure"`
	Works       string `json:"works"`
}

type HistoricalEmployment struct {
	Demanded int64  `json:"demanded"`
	Employed int64  `json:"employed"`
	Rate     string `json:"rate"`
}

type HistoricalWorks struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// HistoricalPoint is one entry of the trailing twelve-month series returned
// to the chart renderer.
type HistoricalPoint struct {
	Month       string               `json:"month"`
	Year        int                  `json:"year"`
	Employment  HistoricalEmployment `json:"employment"`
	Expenditure float64              `json:"expenditure"`
	Works       HistoricalWorks      `json:"works"`
}

// PageContent is the fixed English page chrome; other languages are
// translated lazily by the client through the translate endpoints.
type PageContent struct {
	Title                  string `json:"title"`
	Tagline                string `json:"tagline"`
	WelcomeText            string `json:"welcomeText"`
	EmploymentTitle        string `json:"employmentTitle"`
	ExpenditureTitle       string `json:"expenditureTitle"`
	WorksTitle             string `json:"worksTitle"`
	TrendTitle             string `json:"trendTitle"`
	StatsTitle             string `json:"statsTitle"`
	ChooseLanguage         string `json:"chooseLanguage"`
	EmploymentRateLabel    string `json:"employmentRateLabel"`
	GotWorkLabel           string `json:"gotWorkLabel"`
	TotalPeopleLabel       string `json:"totalPeopleLabel"`
	ThisMonthLabel         string `json:"thisMonthLabel"`
	TotalMoneyLabel        string `json:"totalMoneyLabel"`
	TotalProjectsLabel     string `json:"totalProjectsLabel"`
	OngoingLabel           string `json:"ongoingLabel"`
	CompletedProjectsLabel string `json:"completedProjectsLabel"`
	FinishedLabel          string `json:"finishedLabel"`
	AverageWageLabel       string `json:"averageWageLabel"`
	PerDayLabel            string `json:"perDayLabel"`
}

// DashboardData is the data block of a successful dashboard response.
type DashboardData struct {
	Summary           Summary                 `json:"summary"`
	DetectedLanguages []string                `json:"detectedLanguages"`
	Explanations      map[string]Explanations `json:"explanations"`
	PageContent       map[string]PageContent  `json:"pageContent"`
	Historical        []HistoricalPoint       `json:"historical"`
}

// Dashboard is the full response payload for GET /api/dashboard.
type Dashboard struct {
	Success          bool          `json:"success"`
	DetectedLocation Location      `json:"detectedLocation"`
	Data             DashboardData `json:"data"`
}
