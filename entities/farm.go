package entities

const (
	FarmActive    = "active"
	FarmInactive  = "inactive"
	FarmHarvested = "harvested"

	UnitAcres    = "acres"
	UnitHectares = "hectares"
)

type FarmSize struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"` // acres|hectares
}

type Farm struct {
	Model
	UserID   string   `json:"userId" gorm:"index;not null"`
	FarmName string   `json:"farmName"`
	Location string   `json:"location"`
	CropType string   `json:"cropType"`
	SoilType string   `json:"soilType"` // clay|sandy|loamy|laterite|alluvial
	District string   `json:"district"`
	Size     FarmSize `json:"size" gorm:"embedded;embeddedPrefix:size_"`
	Status   string   `json:"status" gorm:"index"` // active|inactive|harvested
}

func (f *Farm) OwnerID() string { return f.UserID }
