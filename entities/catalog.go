package entities

import "time"

const (
	SeasonKharif    = "kharif"
	SeasonRabi      = "rabi"
	SeasonZaid      = "zaid"
	SeasonPerennial = "perennial"
)

type Range struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Unit string  `json:"unit" yaml:"unit"`
}

type Crop struct {
	Model             `yaml:"-"`
	Name              string   `json:"name" gorm:"uniqueIndex" yaml:"name"`
	LocalName         string   `json:"localName" yaml:"localName"`
	Season            string   `json:"season" yaml:"season"`
	SuitableSoil      []string `json:"suitableSoil" gorm:"serializer:json" yaml:"suitableSoil"`
	WaterRequirements string   `json:"waterRequirements" yaml:"waterRequirements"`
	Duration          int      `json:"duration" yaml:"duration"`
	YieldPerAcre      Range    `json:"yieldPerAcre" gorm:"embedded;embeddedPrefix:yield_" yaml:"yieldPerAcre"`
	MarketPriceRange  Range    `json:"marketPriceRange" gorm:"embedded;embeddedPrefix:price_" yaml:"marketPriceRange"`
	Difficulty        string   `json:"difficulty" yaml:"difficulty"`
	Image             string   `json:"image,omitempty" yaml:"image"`
	Description       string   `json:"description" yaml:"description"`
	Benefits          []string `json:"benefits" gorm:"serializer:json" yaml:"benefits"`
	Challenges        []string `json:"challenges" gorm:"serializer:json" yaml:"challenges"`
}

const (
	IssuePest       = "pest"
	IssueDisease    = "disease"
	IssueDeficiency = "deficiency"

	IssueVerified = "verified"
	IssueReported = "reported"
)

type Contact struct {
	Department string `json:"department,omitempty" yaml:"department"`
	Phone      string `json:"phone,omitempty" yaml:"phone"`
	Email      string `json:"email,omitempty" yaml:"email"`
	Website    string `json:"website,omitempty" yaml:"website"`
}

type PestDisease struct {
	Model             `yaml:"-"`
	Name              string   `json:"name" gorm:"index" yaml:"name"`
	LocalName         string   `json:"localName" yaml:"localName"`
	Type              string   `json:"type" gorm:"index" yaml:"type"`
	AffectedCrops     []string `json:"affectedCrops" gorm:"serializer:json" yaml:"affectedCrops"`
	Symptoms          []string `json:"symptoms" gorm:"serializer:json" yaml:"symptoms"`
	Causes            []string `json:"causes" gorm:"serializer:json" yaml:"causes"`
	Prevention        []string `json:"prevention" gorm:"serializer:json" yaml:"prevention"`
	OrganicTreatment  []string `json:"organicTreatment" gorm:"serializer:json" yaml:"organicTreatment"`
	ChemicalTreatment []string `json:"chemicalTreatment" gorm:"serializer:json" yaml:"chemicalTreatment"`
	Severity          string   `json:"severity" yaml:"severity"`
	Season            []string `json:"season" gorm:"serializer:json" yaml:"season"`
	Location          string   `json:"location,omitempty" yaml:"location"`
	Image             string   `json:"image,omitempty" yaml:"image"`
	EmergencyContact  Contact  `json:"emergencyContact" gorm:"embedded;embeddedPrefix:emergency_" yaml:"emergencyContact"`
	Status            string   `json:"status" yaml:"status"`
	ReportedBy        string   `json:"reportedBy,omitempty" yaml:"-"`
}

type MarketPrice struct {
	Model     `yaml:"-"`
	CropName  string    `json:"cropName" gorm:"index" yaml:"cropName"`
	District  string    `json:"district" gorm:"index" yaml:"district"`
	Market    string    `json:"market" yaml:"market"`
	Price     float64   `json:"price" yaml:"price"`
	MinPrice  float64   `json:"minPrice" yaml:"minPrice"`
	MaxPrice  float64   `json:"maxPrice" yaml:"maxPrice"`
	Unit      string    `json:"unit" yaml:"unit"`
	Quality   string    `json:"quality,omitempty" yaml:"quality"`
	Date      time.Time `json:"date" gorm:"index" yaml:"-"`
	DaysAgo   int       `json:"-" gorm:"-" yaml:"daysAgo"`
	Source    string    `json:"source,omitempty" yaml:"source"`
}

type Scheme struct {
	Model              `yaml:"-"`
	Title              string     `json:"title" yaml:"title"`
	Description        string     `json:"description" yaml:"description"`
	Department         string     `json:"department" yaml:"department"`
	Eligibility        []string   `json:"eligibility" gorm:"serializer:json" yaml:"eligibility"`
	Benefits           []string   `json:"benefits" gorm:"serializer:json" yaml:"benefits"`
	DocumentsRequired  []string   `json:"documentsRequired" gorm:"serializer:json" yaml:"documentsRequired"`
	ApplicationProcess []string   `json:"applicationProcess" gorm:"serializer:json" yaml:"applicationProcess"`
	Deadline           *time.Time `json:"deadline,omitempty" gorm:"index" yaml:"deadline"`
	Contact            Contact    `json:"contact" gorm:"embedded;embeddedPrefix:contact_" yaml:"contact"`
	Category           string     `json:"category" gorm:"index" yaml:"category"`
	State              string     `json:"state" yaml:"state"`
	Active             bool       `json:"active" gorm:"index" yaml:"active"`
}
