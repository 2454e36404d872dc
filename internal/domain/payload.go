package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Builder identifies who poured the block.
type Builder struct {
	ID    *uuid.UUID `json:"id,omitempty"`
	Name  string     `json:"name" validate:"required"`
	OrgID *uuid.UUID `json:"org_id,omitempty"`
}

// Location is an optional free-form placement of the block.
type Location struct {
	Label     *string  `json:"label,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Timestamps carries the build lifecycle times. Only built_at is required.
type Timestamps struct {
	BuiltAt     time.Time  `json:"built_at" validate:"required"`
	CuredAt     *time.Time `json:"cured_at,omitempty"`
	InstalledAt *time.Time `json:"installed_at,omitempty"`
}

// Metrics are the measured properties of a block. co2_offset_lbs defaults
// to zero when omitted; the rest stay null.
type Metrics struct {
	CO2OffsetLbs float64  `json:"co2_offset_lbs"`
	VolumeFt3    *float64 `json:"volume_ft3,omitempty"`
	HeightIn     *float64 `json:"height_in,omitempty"`
	TotalCostUSD *float64 `json:"total_cost_usd,omitempty"`
}

// Materials is the fixed bill of quantities for one block. Quantity
// fields are pointers so an explicit zero passes the presence check.
type Materials struct {
	StrawBales        *int            `json:"straw_bales" validate:"required"`
	StrawFt3          *float64        `json:"straw_ft3" validate:"required"`
	HempHurdBags      *int            `json:"hemp_hurd_bags" validate:"required"`
	HempHurdFt3       *float64        `json:"hemp_hurd_ft3" validate:"required"`
	RubberMulchBags   *int            `json:"rubber_mulch_bags" validate:"required"`
	RubberMulchFt3    *float64        `json:"rubber_mulch_ft3" validate:"required"`
	MyceliumBlocks    *int            `json:"mycelium_blocks" validate:"required"`
	MyceliumFt3       *float64        `json:"mycelium_ft3" validate:"required"`
	TypeSLimeBags     *int            `json:"type_s_lime_bags" validate:"required"`
	TypeSLimeFt3      *float64        `json:"type_s_lime_ft3" validate:"required"`
	WaterGal          *float64        `json:"water_gal" validate:"required"`
	AirExpansionPct   *string         `json:"air_expansion_pct,omitempty"`
	HardwareClothSqft *string         `json:"hardware_cloth_sqft,omitempty"`
	Rebar             json.RawMessage `json:"rebar" validate:"required"`
}

// Media holds attachment URL lists.
type Media struct {
	PhotoURLs []string `json:"photo_urls,omitempty"`
	DocURLs   []string `json:"doc_urls,omitempty"`
}

// ExoPayload is the intake wire format for one block submission. Export
// emits the exact same shape, so approved records can be re-ingested
// elsewhere.
type ExoPayload struct {
	IdempotencyKey string          `json:"idempotency_key" validate:"required"`
	ExternalRef    *string         `json:"external_ref,omitempty"`
	Builder        Builder         `json:"builder"`
	Location       *Location       `json:"location,omitempty"`
	Timestamps     Timestamps      `json:"timestamps"`
	Status         BlockStatus     `json:"status" validate:"required,oneof=poured curing cured installed damaged retired"`
	Metrics        *Metrics        `json:"metrics" validate:"required"`
	Method         *string         `json:"method,omitempty"`
	CoreFill       json.RawMessage `json:"core_fill,omitempty"`
	Materials      Materials       `json:"materials"`
	Batches        json.RawMessage `json:"batches,omitempty"`
	StructureNotes *string         `json:"structure_notes,omitempty"`
	Media          *Media          `json:"media,omitempty"`
	Signature      *string         `json:"signature,omitempty"`
	QRSlug         *string         `json:"qr_slug,omitempty"`
}

var validate = validator.New()

// Validate checks one payload against the schema.
func (p *ExoPayload) Validate() error {
	return validate.Struct(p)
}

// ParseItems decodes a raw intake body into a batch of payloads. A JSON
// array is one payload per element; a single object is a one-element
// batch. Any malformed JSON or schema violation fails the whole batch —
// there is no partial acceptance.
func ParseItems(raw []byte) ([]ExoPayload, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	var items []ExoPayload
	if trimmed[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	} else {
		var one ExoPayload
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		items = []ExoPayload{one}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("empty batch")
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return items, nil
}
