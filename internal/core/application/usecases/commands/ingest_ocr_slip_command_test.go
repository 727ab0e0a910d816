package commands_test

import (
	"testing"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/ocr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewIngestOcrSlipCommand_RawTextRequired(t *testing.T) {
	_, err := commands.NewIngestOcrSlipCommand(kernel.NewUUID(), nil, "", "  ")
	require.ErrorIs(t, err, commands.ErrRawTextIsRequired)
}

func TestIngestOcrSlipCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cmd, err := commands.NewIngestOcrSlipCommand(kernel.NewUUID(), &storeID, "",
		"CEP 01310-100\nCliente (11) 98765-4321\nTotal R$ 57,90")
	require.NoError(t, err)

	slipRepo := new(MockOcrSlipRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OcrSlipRepository").Return(slipRepo).Once(),
		slipRepo.On("Add", ctx, mock.AnythingOfType("*ocr.Slip")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewIngestOcrSlipCommandHandler(factoryOf[commands.OcrUoW](uow), fixedClock)
	slip, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, ocr.DefaultPhotoRef, slip.PhotoRef())
	assert.InDelta(t, ocr.Confidence, slip.Confidence(), 1e-9)
	assert.False(t, slip.Confirmed())
	ex := slip.Extraction()
	require.NotNil(t, ex.Phone)
	assert.Equal(t, "(11) 98765-4321", *ex.Phone)
	require.NotNil(t, ex.PostalCode)
	assert.Equal(t, "01310-100", *ex.PostalCode)
	require.NotNil(t, ex.OrderValue)
	assert.Equal(t, "57.90", ex.OrderValue.String())
	uow.AssertExpectations(t)
}
