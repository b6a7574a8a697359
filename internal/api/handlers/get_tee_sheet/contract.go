package get_tee_sheet

import (
	"context"

	generateTeeSheet "github.com/golfops/GP-TeeSheetService/internal/usecase/generate_tee_sheet"
)

// GenerateTeeSheetUseCase интерфейс use case генерации tee sheet
type GenerateTeeSheetUseCase interface {
	Execute(ctx context.Context, req *generateTeeSheet.Request) (*generateTeeSheet.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
