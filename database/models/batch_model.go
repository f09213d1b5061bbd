package models

import (
	"fmt"
	"time"

	"github.com/certifarm/certifarm/dtos"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const DefaultOriginCountry = "India"

type Quantity struct {
	Value decimal.Decimal   `json:"value" gorm:"type:numeric;not null"`
	Unit  dtos.QuantityUnit `json:"unit" gorm:"type:text;not null;default:'kg'"`
}

// String renders the quantity as "<value> <unit>"
func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.Value.String(), q.Unit)
}

// Compact renders the quantity without a separator, e.g. "1000kg"
func (q Quantity) Compact() string {
	return q.Value.String() + string(q.Unit)
}

type Product struct {
	Name          string               `json:"name" gorm:"type:text;not null"`
	Category      dtos.ProductCategory `json:"category" gorm:"type:text;not null;index"`
	Variety       string               `json:"variety" gorm:"type:text"`
	Quantity      Quantity             `json:"quantity" gorm:"embedded;embeddedPrefix:quantity_"`
	HarvestDate   *time.Time           `json:"harvestDate"`
	PackagingDate *time.Time           `json:"packagingDate"`
}

type Origin struct {
	FarmLocation string   `json:"farmLocation" gorm:"type:text"`
	District     string   `json:"district" gorm:"type:text"`
	State        string   `json:"state" gorm:"type:text"`
	Country      string   `json:"country" gorm:"type:text;not null;default:'India'"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (o Origin) CountryOrDefault() string {
	if o.Country == "" {
		return DefaultOriginCountry
	}
	return o.Country
}

type Destination struct {
	Country         string `json:"country" gorm:"type:text;not null"`
	Port            string `json:"port" gorm:"type:text"`
	ImporterName    string `json:"importerName" gorm:"type:text"`
	ImporterContact string `json:"importerContact" gorm:"type:text"`
}

type Document struct {
	Name       string            `json:"name"`
	Type       dtos.DocumentType `json:"type"`
	URL        string            `json:"url"`
	UploadedAt time.Time         `json:"uploadedAt"`
}

type Batch struct {
	Model
	BatchID     string                        `json:"batchId" gorm:"column:batch_id;type:text;uniqueIndex;not null"`
	OwnerID     string                        `json:"exporter" gorm:"column:owner_id;type:text;not null;index"`
	Product     Product                       `json:"product" gorm:"embedded;embeddedPrefix:product_"`
	Origin      Origin                        `json:"origin" gorm:"embedded;embeddedPrefix:origin_"`
	Destination Destination                   `json:"destination" gorm:"embedded;embeddedPrefix:destination_"`
	Documents   datatypes.JSONSlice[Document] `json:"documents" gorm:"type:jsonb;not null;default:'[]'"`
	Status      dtos.BatchStatus              `json:"status" gorm:"type:text;not null;default:'submitted';index"`

	AssignedQAID *string    `json:"assignedQA" gorm:"column:assigned_qa_id;type:text;index"`
	InspectionID *uuid.UUID `json:"inspection" gorm:"column:inspection_id;type:uuid"`
	CredentialID *uuid.UUID `json:"credential" gorm:"column:credential_id;type:uuid"`

	StatusHistory []BatchStatusEvent `json:"statusHistory" gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE;"`

	Notes    string        `json:"notes" gorm:"type:text"`
	Priority dtos.Priority `json:"priority" gorm:"type:text;not null;default:'normal'"`
}

func (b Batch) TableName() string {
	return "batches"
}

func (b Batch) IsOwnedBy(actorID string) bool {
	return b.OwnerID == actorID
}

// Age returns the number of full days since the batch was created
func (b Batch) Age(now time.Time) int {
	return int(now.Sub(b.CreatedAt).Hours() / 24)
}
