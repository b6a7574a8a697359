package generate_tee_sheet

import (
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/integrations/weather"
	reservationModels "github.com/golfops/GP-TeeSheetService/internal/service/reservations/models"
)

// Request модель запроса тии-листа поля на дату
type Request struct {
	GolfCourseID int64
	Date         time.Time
}

// TimeFrameInfo ценовое окно сезона в ответе
type TimeFrameInfo struct {
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	GreenFee  float64 `json:"green_fee"`
	CartFee   float64 `json:"cart_fee"`
}

// SeasonInfo сезон, действующий на запрошенную дату
type SeasonInfo struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	OpenTime   string          `json:"open_time"`
	CloseTime  string          `json:"close_time"`
	TimeFrames []TimeFrameInfo `json:"time_frames"`
}

// Item одна позиция тии-листа: либо реальный слот бронирования, либо
// плейсхолдер открытого времени
type Item struct {
	StartsAt          string `json:"starts_at"`
	TeeTimeIdentifier string `json:"tee_time_identifier"`
	Open              bool   `json:"open"`

	ReservationID *int64                          `json:"reservation_id,omitempty"`
	Slot          *reservationModels.SlotResponse `json:"slot,omitempty"`
}

// Response модель ответа с тии-листом на день
type Response struct {
	Date         string `json:"date"`
	GolfCourseID int64  `json:"golf_course_id"`

	Season *SeasonInfo `json:"season"`

	Weather *weather.DayForecast `json:"weather,omitempty"`

	Items []Item `json:"items"`
}
