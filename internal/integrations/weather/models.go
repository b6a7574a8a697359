package weather

// Location координаты для запроса прогноза
type Location struct {
	Latitude  float64
	Longitude float64
}

// Forecast прогноз погоды на день
type Forecast struct {
	Summary       string  `json:"summary"`
	TempHigh      float64 `json:"temp_high"`
	TempLow       float64 `json:"temp_low"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
}

// DayForecast результат запроса прогноза: либо прогноз, либо сообщение об
// ошибке, поглощенное graceful degradation
type DayForecast struct {
	Date         string    `json:"date"`
	Weather      *Forecast `json:"weather"`
	ErrorMessage *string   `json:"error_message"`
}
