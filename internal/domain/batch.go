package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commodity identifies the kind of grain in a batch or pool.
type Commodity string

const (
	CommodityWheat     Commodity = "wheat"
	CommodityBarley    Commodity = "barley"
	CommodityCorn      Commodity = "corn"
	CommoditySunflower Commodity = "sunflower"
	CommodityFlax      Commodity = "flax"
	CommodityPeas      Commodity = "peas"
)

// Valid reports whether c is one of the known commodities.
func (c Commodity) Valid() bool {
	switch c {
	case CommodityWheat, CommodityBarley, CommodityCorn,
		CommoditySunflower, CommodityFlax, CommodityPeas:
		return true
	}
	return false
}

// StorageMethod describes where a batch is currently held.
type StorageMethod string

const (
	StorageElevator  StorageMethod = "elevator"
	StorageWarehouse StorageMethod = "warehouse"
	StorageField     StorageMethod = "field"
)

// Valid reports whether s is one of the known storage methods.
func (s StorageMethod) Valid() bool {
	switch s {
	case StorageElevator, StorageWarehouse, StorageField:
		return true
	}
	return false
}

// BatchStatus represents the lifecycle state of a batch.
type BatchStatus string

const (
	BatchStatusActive    BatchStatus = "active"
	BatchStatusReserved  BatchStatus = "reserved"
	BatchStatusSold      BatchStatus = "sold"
	BatchStatusWithdrawn BatchStatus = "withdrawn"
)

// Grade is the quality class derived from a batch's moisture and
// impurity metrics. Lower is better.
type Grade int

const (
	Grade1 Grade = 1
	Grade2 Grade = 2
	Grade3 Grade = 3
)

// Grading thresholds, percent.
const (
	grade1MaxMoisture = 14.0
	grade1MaxImpurity = 2.0
	grade2MaxMoisture = 16.0
	grade2MaxImpurity = 5.0
)

// ComputeGrade derives the quality grade from the two quality metrics.
// The thresholds are fixed; anything above the grade-2 limits is grade 3.
func ComputeGrade(moisture, impurity float64) Grade {
	if moisture <= grade1MaxMoisture && impurity <= grade1MaxImpurity {
		return Grade1
	}
	if moisture <= grade2MaxMoisture && impurity <= grade2MaxImpurity {
		return Grade2
	}
	return Grade3
}

// Attachment is a document or photo attached to a batch.
type Attachment struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	URL     string    `json:"url"`
	AddedAt time.Time `json:"added_at"`
}

// Batch is a unit of supply owned by a producer. Volume is in tonnes,
// Price in local currency per tonne. Moisture and Impurity are percent.
type Batch struct {
	ID          int64           `json:"id"`
	ProducerID  int64           `json:"producer_id"`
	Commodity   Commodity       `json:"commodity"`
	Region      string          `json:"region"`
	Volume      decimal.Decimal `json:"volume"`
	Price       decimal.Decimal `json:"price"`
	Moisture    float64         `json:"moisture"`
	Impurity    float64         `json:"impurity"`
	Grade       Grade           `json:"grade"`
	Storage     StorageMethod   `json:"storage"`
	ReadyAt     time.Time       `json:"ready_at"`
	Status      BatchStatus     `json:"status"`
	Attachments []Attachment    `json:"attachments"`
	CreatedAt   time.Time       `json:"created_at"`
}
