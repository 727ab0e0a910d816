package commands

import (
	"context"
	"errors"
	"strings"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/ocr"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

var (
	ErrIngestOcrSlipCommandIsNotConstructed = errors.New(
		"IngestOcrSlipCommand must be created via NewIngestOcrSlipCommand constructor",
	)
	ErrRawTextIsRequired = errs.NewValueIsRequiredError("raw_text")
)

type IngestOcrSlipCommand struct { //nolint:recvcheck //using for validation
	slipID   kernel.UUID
	storeID  *kernel.UUID
	photoRef string
	rawText  string
	guard    guard.ConstructorGuard
}

func NewIngestOcrSlipCommand(slipID kernel.UUID, storeID *kernel.UUID, photoRef, rawText string) (IngestOcrSlipCommand, error) {
	var textErr error
	if strings.TrimSpace(rawText) == "" {
		textErr = ErrRawTextIsRequired
	}
	if err := errors.Join(slipID.Validate(), textErr); err != nil {
		return IngestOcrSlipCommand{}, err
	}
	return IngestOcrSlipCommand{
		slipID:   slipID,
		storeID:  storeID,
		photoRef: strings.TrimSpace(photoRef),
		rawText:  rawText,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c IngestOcrSlipCommand) Validate() error {
	return c.guard.Validate(ErrIngestOcrSlipCommandIsNotConstructed)
}

// IngestOcrSlipCommandHandler extracts customer data from slip text and stores it
// unconfirmed.
type IngestOcrSlipCommandHandler struct {
	uowFactory OcrUoWFactory
	now        Clock
}

func NewIngestOcrSlipCommandHandler(uowFactory OcrUoWFactory, now Clock) IngestOcrSlipCommandHandler {
	return IngestOcrSlipCommandHandler{uowFactory: uowFactory, now: clockOrSystem(now)}
}

func (h *IngestOcrSlipCommandHandler) Handle(ctx context.Context, cmd IngestOcrSlipCommand) (*ocr.Slip, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	slip, err := ocr.NewSlip(cmd.slipID, cmd.storeID, cmd.photoRef, cmd.rawText, h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OcrSlipRepository().Add(ctx, slip); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return slip, nil
}
