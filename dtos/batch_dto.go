package dtos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BatchStatus string

const (
	BatchStatusSubmitted          BatchStatus = "submitted"
	BatchStatusUnderInspection    BatchStatus = "under_inspection"
	BatchStatusInspectionComplete BatchStatus = "inspection_complete"
	BatchStatusCertified          BatchStatus = "certified"
	BatchStatusRejected           BatchStatus = "rejected"
	BatchStatusRevoked            BatchStatus = "revoked"
)

var AllBatchStatuses = []BatchStatus{
	BatchStatusSubmitted,
	BatchStatusUnderInspection,
	BatchStatusInspectionComplete,
	BatchStatusCertified,
	BatchStatusRejected,
	BatchStatusRevoked,
}

type ProductCategory string

const (
	CategoryRice       ProductCategory = "rice"
	CategoryWheat      ProductCategory = "wheat"
	CategorySpices     ProductCategory = "spices"
	CategoryPulses     ProductCategory = "pulses"
	CategoryOilseeds   ProductCategory = "oilseeds"
	CategoryFruits     ProductCategory = "fruits"
	CategoryVegetables ProductCategory = "vegetables"
	CategoryTea        ProductCategory = "tea"
	CategoryCoffee     ProductCategory = "coffee"
	CategoryOther      ProductCategory = "other"
)

type QuantityUnit string

const (
	UnitKg       QuantityUnit = "kg"
	UnitTonnes   QuantityUnit = "tonnes"
	UnitQuintals QuantityUnit = "quintals"
)

type Priority string

const (
	PriorityNormal  Priority = "normal"
	PriorityUrgent  Priority = "urgent"
	PriorityExpress Priority = "express"
)

type DocumentType string

const (
	DocumentTypeLabReport      DocumentType = "lab_report"
	DocumentTypeFarmRecord     DocumentType = "farm_record"
	DocumentTypePackagingImage DocumentType = "packaging_image"
	DocumentTypeInvoice        DocumentType = "invoice"
	DocumentTypeOther          DocumentType = "other"
)

type QuantityDTO struct {
	Value decimal.Decimal `json:"value" validate:"required"`
	Unit  QuantityUnit    `json:"unit" validate:"omitempty,oneof=kg tonnes quintals"`
}

type ProductDTO struct {
	Name          string          `json:"name" validate:"required"`
	Category      ProductCategory `json:"category" validate:"required,oneof=rice wheat spices pulses oilseeds fruits vegetables tea coffee other"`
	Variety       string          `json:"variety"`
	Quantity      QuantityDTO     `json:"quantity" validate:"required"`
	HarvestDate   *time.Time      `json:"harvestDate,omitempty"`
	PackagingDate *time.Time      `json:"packagingDate,omitempty"`
}

type GeoCoordinatesDTO struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type OriginDTO struct {
	FarmLocation   string             `json:"farmLocation"`
	District       string             `json:"district"`
	State          string             `json:"state"`
	Country        string             `json:"country"`
	GeoCoordinates *GeoCoordinatesDTO `json:"geoCoordinates,omitempty"`
}

type DestinationDTO struct {
	Country         string `json:"country" validate:"required"`
	Port            string `json:"port"`
	ImporterName    string `json:"importerName"`
	ImporterContact string `json:"importerContact"`
}

type CreateBatchRequest struct {
	Product     ProductDTO     `json:"product" validate:"required"`
	Origin      OriginDTO      `json:"origin"`
	Destination DestinationDTO `json:"destination" validate:"required"`
	Notes       string         `json:"notes"`
	Priority    Priority       `json:"priority" validate:"omitempty,oneof=normal urgent express"`
}

// UpdateBatchRequest replaces the editable fields of a batch
type UpdateBatchRequest = CreateBatchRequest

type AddDocumentRequest struct {
	Name string       `json:"name" validate:"required"`
	Type DocumentType `json:"type" validate:"required,oneof=lab_report farm_record packaging_image invoice other"`
	URL  string       `json:"url" validate:"required,url"`
}

type RejectBatchRequest struct {
	Reason string `json:"reason"`
}

type DocumentDTO struct {
	Name       string       `json:"name"`
	Type       DocumentType `json:"type"`
	URL        string       `json:"url"`
	UploadedAt time.Time    `json:"uploadedAt"`
}

type StatusHistoryEntryDTO struct {
	Status    BatchStatus `json:"status"`
	ChangedBy string      `json:"changedBy"`
	ChangedAt time.Time   `json:"changedAt"`
	Remarks   string      `json:"remarks,omitempty"`
}

type BatchDTO struct {
	ID            uuid.UUID               `json:"id"`
	BatchID       string                  `json:"batchId"`
	Exporter      string                  `json:"exporter"`
	Product       ProductDTO              `json:"product"`
	Origin        OriginDTO               `json:"origin"`
	Destination   DestinationDTO          `json:"destination"`
	Documents     []DocumentDTO           `json:"documents"`
	Status        BatchStatus             `json:"status"`
	AssignedQA    *string                 `json:"assignedQA,omitempty"`
	Inspection    *uuid.UUID              `json:"inspection,omitempty"`
	Credential    *uuid.UUID              `json:"credential,omitempty"`
	StatusHistory []StatusHistoryEntryDTO `json:"statusHistory"`
	Notes         string                  `json:"notes,omitempty"`
	Priority      Priority                `json:"priority"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

type BatchStatsDTO struct {
	StatusBreakdown map[BatchStatus]int64 `json:"statusBreakdown"`
	TotalBatches    int64                 `json:"totalBatches"`
	RecentBatches   int64                 `json:"recentBatches"`
}
