// Package ocr provides Slip, an order slip whose customer data was extracted
// from raw text with regular expressions. No image recognition takes place.
package ocr

import (
	"regexp"
	"strings"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPhotoRef is stored when the slip was sent without a photo reference.
	DefaultPhotoRef = "pending"

	// Confidence is the fixed score attached to regex extraction.
	Confidence = 0.75
)

var (
	phonePattern      = regexp.MustCompile(`\(?\d{2}\)?\s?\d{4,5}[-\s]?\d{4}`)
	postalCodePattern = regexp.MustCompile(`\d{5}-?\d{3}`)
	valuePattern      = regexp.MustCompile(`R\$\s?(\d+[.,]\d{2})`)
)

// Extraction is what could be read from the slip text; nil fields were not found.
type Extraction struct {
	Phone      *string
	PostalCode *string
	OrderValue *kernel.Money
}

// Extract runs the phone, postal code and value patterns over text.
func Extract(text string) Extraction {
	var ex Extraction
	if m := phonePattern.FindString(text); m != "" {
		ex.Phone = &m
	}
	if m := postalCodePattern.FindString(text); m != "" {
		ex.PostalCode = &m
	}
	if m := valuePattern.FindStringSubmatch(text); len(m) == 2 {
		if d, err := decimal.NewFromString(strings.Replace(m[1], ",", ".", 1)); err == nil {
			if v, err := kernel.NewMoney(d); err == nil {
				ex.OrderValue = &v
			}
		}
	}
	return ex
}

// Slip is a stored extraction awaiting operator review.
type Slip struct {
	id         kernel.UUID
	storeID    *kernel.UUID
	photoRef   string
	rawText    string
	extraction Extraction
	confidence float64
	confirmed  bool
	createdAt  time.Time
}

// NewSlip extracts customer data from rawText. The slip starts unconfirmed.
func NewSlip(id kernel.UUID, storeID *kernel.UUID, photoRef, rawText string, now time.Time) (*Slip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if storeID != nil {
		if err := storeID.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("store_id", err)
		}
	}
	if strings.TrimSpace(photoRef) == "" {
		photoRef = DefaultPhotoRef
	}

	return &Slip{
		id:         id,
		storeID:    storeID,
		photoRef:   photoRef,
		rawText:    rawText,
		extraction: Extract(rawText),
		confidence: Confidence,
		createdAt:  now.UTC(),
	}, nil
}

// RestoreSlip rebuilds a stored slip without re-running extraction.
func RestoreSlip(
	id kernel.UUID,
	storeID *kernel.UUID,
	photoRef, rawText string,
	extraction Extraction,
	confidence float64,
	confirmed bool,
	createdAt time.Time,
) (*Slip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if confidence < 0 || confidence > 1 {
		return nil, errs.NewValueIsOutOfRangeError("confidence", confidence, 0, 1)
	}
	return &Slip{
		id:         id,
		storeID:    storeID,
		photoRef:   photoRef,
		rawText:    rawText,
		extraction: extraction,
		confidence: confidence,
		confirmed:  confirmed,
		createdAt:  createdAt,
	}, nil
}

func (s *Slip) ID() kernel.UUID {
	return s.id
}

func (s *Slip) StoreID() *kernel.UUID {
	return s.storeID
}

func (s *Slip) PhotoRef() string {
	return s.photoRef
}

func (s *Slip) RawText() string {
	return s.rawText
}

func (s *Slip) Extraction() Extraction {
	return s.extraction
}

func (s *Slip) Confidence() float64 {
	return s.confidence
}

func (s *Slip) Confirmed() bool {
	return s.confirmed
}

func (s *Slip) CreatedAt() time.Time {
	return s.createdAt
}
