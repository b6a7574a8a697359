package get_tee_sheet

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/golfops/GP-TeeSheetService/internal/api/handlers"
	"github.com/golfops/GP-TeeSheetService/internal/domain"
	generateTeeSheet "github.com/golfops/GP-TeeSheetService/internal/usecase/generate_tee_sheet"
)

const (
	msgInvalidGolfCourseID = "invalid golf course ID"
	msgInvalidDate         = "date must be in YYYY-MM-DD format"
	msgCourseNotFound      = "golf course not found"
)

type Handler struct {
	useCase GenerateTeeSheetUseCase
	logger  Logger
}

func NewHandler(useCase GenerateTeeSheetUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/golf_courses/{golfCourseId}/tee_sheet?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	golfCourseID, err := strconv.ParseInt(vars["golfCourseId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /golf_courses/{id}/tee_sheet - Invalid golf course ID: %s", vars["golfCourseId"])
		handlers.RespondValidationError(w, msgInvalidGolfCourseID, nil)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /golf_courses/{id}/tee_sheet - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondValidationError(w, msgInvalidDate, map[string]string{"date": msgInvalidDate})
		return
	}

	sheet, err := h.useCase.Execute(r.Context(), &generateTeeSheet.Request{
		GolfCourseID: golfCourseID,
		Date:         date,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateTeeSheet.ErrCourseNotFound):
			h.logger.Warn("GET /golf_courses/{id}/tee_sheet - Course not found: id=%d", golfCourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, generateTeeSheet.ErrInvalidInput):
			h.logger.Warn("GET /golf_courses/{id}/tee_sheet - Validation failed: id=%d, error=%v",
				golfCourseID, err)
			handlers.RespondValidationError(w, err.Error(), nil)

		default:
			h.logger.Error("GET /golf_courses/{id}/tee_sheet - Failed to generate tee sheet: id=%d, error=%v",
				golfCourseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /golf_courses/{id}/tee_sheet - Tee sheet generated: course=%d, date=%s, items=%d",
		golfCourseID, sheet.Date, len(sheet.Items))
	handlers.RespondJSON(w, http.StatusOK, sheet)
}
