package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/gendocs/internal/adapters/logger"
	"go.trai.ch/gendocs/internal/app"
	"go.trai.ch/gendocs/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewComponents(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := &app.App{}
	log := logger.New()
	telemetry := mocks.NewMockTelemetry(ctrl)

	components := app.NewComponents(a, log, telemetry)

	require.NotNil(t, components)
	require.Same(t, a, components.App)
	require.Same(t, log, components.Logger)
	require.Equal(t, telemetry, components.Telemetry)
}
