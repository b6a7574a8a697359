package generate_tee_sheet

import (
	"sync"
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
)

// placeholderKey ключ плейсхолдера: время слота + поле + дата + сезон.
// Смена сезона на дате меняет ключ, поэтому устаревшие плейсхолдеры
// перестают находиться без явной инвалидации.
type placeholderKey struct {
	golfCourseID int64
	seasonID     int64
	date         string
	slotTime     string
}

// PlaceholderCache кэш синтезированных плейсхолдеров открытых времен.
// Безопасен для конкурентного чтения; заполнение идемпотентно - гонка
// двух заполнителей дает эквивалентные записи.
type PlaceholderCache struct {
	mu    sync.RWMutex
	items map[placeholderKey]*domain.TeeSheetItem
}

// NewPlaceholderCache создает новый кэш плейсхолдеров
func NewPlaceholderCache() *PlaceholderCache {
	return &PlaceholderCache{
		items: make(map[placeholderKey]*domain.TeeSheetItem),
	}
}

// GetOrCreate возвращает плейсхолдер по ключу, создавая его при отсутствии
func (c *PlaceholderCache) GetOrCreate(course *domain.GolfCourse, season *domain.Season, startsAt time.Time) *domain.TeeSheetItem {
	key := placeholderKey{
		golfCourseID: course.ID,
		seasonID:     season.ID,
		date:         startsAt.Format(domain.DateFormat),
		slotTime:     startsAt.Format(domain.TimeFormat),
	}

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		return item
	}

	item = &domain.TeeSheetItem{
		StartsAt:     startsAt,
		GolfCourseID: course.ID,
		PropertyID:   course.PropertyID,
		SeasonID:     season.ID,
		Placeholder:  true,
	}

	c.mu.Lock()
	if existing, ok := c.items[key]; ok {
		item = existing
	} else {
		c.items[key] = item
	}
	c.mu.Unlock()

	return item
}

// EvictDay удаляет плейсхолдеры поля за прошедшую дату
func (c *PlaceholderCache) EvictDay(golfCourseID int64, date time.Time) {
	day := date.Format(domain.DateFormat)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if key.golfCourseID == golfCourseID && key.date == day {
			delete(c.items, key)
		}
	}
}

// Len возвращает число закэшированных плейсхолдеров
func (c *PlaceholderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
