package generate_tee_sheet

import (
	"sort"
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
)

// dayWindow временное окно генерации [From, To)
type dayWindow struct {
	From time.Time
	To   time.Time
}

// resolveWindow вычисляет окно генерации тии-листа.
// Для сегодняшней даты возвращается AM- либо PM-половина дня в зависимости
// от переданных часов; для любой другой даты - полный день сезона.
func resolveWindow(season *domain.Season, date time.Time, now time.Time) (dayWindow, error) {
	open, err := season.OpenTime.OnDate(date)
	if err != nil {
		return dayWindow{}, err
	}

	close, err := season.CloseTime.OnDate(date)
	if err != nil {
		return dayWindow{}, err
	}

	// Верхняя граница включает слот, стартующий ровно в close_time
	to := close.Add(time.Minute)

	if !isSameDay(date, now) {
		return dayWindow{From: open, To: to}, nil
	}

	noon := time.Date(date.Year(), date.Month(), date.Day(), domain.NoonHour, 0, 0, 0, date.Location())

	if now.Hour() < domain.NoonHour {
		if noon.Before(to) {
			to = noon
		}
		return dayWindow{From: open, To: to}, nil
	}

	if open.Before(noon) {
		open = noon
	}
	return dayWindow{From: open, To: to}, nil
}

// gridTimes генерирует времена 30-минутной сетки внутри окна
func gridTimes(window dayWindow) []time.Time {
	result := make([]time.Time, 0)
	for t := window.From; t.Before(window.To); t = t.Add(domain.SlotIntervalMinutes * time.Minute) {
		result = append(result, t)
	}
	return result
}

// isCovered возвращает true, если время накрыто блокировкой или турниром
func isCovered(t time.Time, blocks []*domain.CourseBlock) bool {
	for _, block := range blocks {
		if block.Covers(t) {
			return true
		}
	}
	return false
}

// mergeItems объединяет реальные слоты и плейсхолдеры открытых времен в
// единый тии-лист со стабильной сортировкой по времени старта. Занятые
// времена представлены только реальными слотами; реальные позиции вне сетки
// (исторические данные) попадают в выдачу как есть.
func mergeItems(real []*domain.TeeSheetItem, placeholders []*domain.TeeSheetItem) []*domain.TeeSheetItem {
	merged := make([]*domain.TeeSheetItem, 0, len(real)+len(placeholders))
	merged = append(merged, real...)
	merged = append(merged, placeholders...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartsAt.Before(merged[j].StartsAt)
	})

	return merged
}

// seasonInfo собирает сведения о сезоне для ответа
func seasonInfo(season *domain.Season) *SeasonInfo {
	info := &SeasonInfo{
		ID:         season.ID,
		Name:       season.Name,
		OpenTime:   season.OpenTime.String(),
		CloseTime:  season.CloseTime.String(),
		TimeFrames: make([]TimeFrameInfo, 0, len(season.TimeFrames)),
	}

	for _, tf := range season.TimeFrames {
		info.TimeFrames = append(info.TimeFrames, TimeFrameInfo{
			StartTime: tf.StartTime.String(),
			EndTime:   tf.EndTime.String(),
			GreenFee:  tf.GreenFee,
			CartFee:   tf.CartFee,
		})
	}

	return info
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
