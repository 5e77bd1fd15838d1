package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

const (
	keyPrefix     = "availability"
	generationKey = keyPrefix + ":generation"
)

var (
	// ErrCache ошибка при работе с Redis
	ErrCache = errors.New("availability.cache: redis error")

	// ErrDecode в кеше лежит что-то, что не удалось разобрать
	ErrDecode = errors.New("availability.cache: failed to decode entry")
)

// RedisCache кеш рассчитанных слотов.
// Ключ записи включает поколение кеша: любая запись смен/записей увеличивает поколение
// (Invalidate), и старые ключи просто перестают читаться и истекают по TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache создает кеш поверх клиента Redis
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

type cachedSlot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ShiftID   int64  `json:"shift_id"`
}

// Get возвращает слоты, посчитанные в поколении gen для дня date и длительности minutes.
// ok=false, если записи нет
func (c *RedisCache) Get(ctx context.Context, gen int64, date time.Time, minutes int) ([]domain.Slot, bool, error) {
	raw, err := c.client.Get(ctx, EntryKey(gen, date, minutes)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var entries []cachedSlot
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	slots := make([]domain.Slot, 0, len(entries))
	for _, e := range entries {
		date, err := domain.ParseDate(e.Date)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		slots = append(slots, domain.Slot{
			ID:        e.ID,
			Date:      date,
			StartTime: types.TimeString(e.StartTime),
			EndTime:   types.TimeString(e.EndTime),
			ShiftID:   e.ShiftID,
		})
	}

	return slots, true, nil
}

// Set сохраняет слоты в поколении gen.
// Поколение читается до загрузки данных из БД: если за это время была запись,
// результат ляжет под старое поколение и больше не будет прочитан
func (c *RedisCache) Set(ctx context.Context, gen int64, date time.Time, minutes int, slots []domain.Slot) error {
	entries := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		entries = append(entries, cachedSlot{
			ID:        s.ID,
			Date:      domain.DayKey(s.Date),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			ShiftID:   s.ShiftID,
		})
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if err := c.client.Set(ctx, EntryKey(gen, date, minutes), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}

	return nil
}

// Invalidate делает все закешированные слоты устаревшими
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}

// Generation текущее поколение кеша
func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: generation: %v", ErrCache, err)
	}
	return gen, nil
}

// EntryKey ключ записи кеша: поколение, день, длительность
func EntryKey(generation int64, date time.Time, minutes int) string {
	return keyPrefix + ":v" + strconv.FormatInt(generation, 10) + ":" + domain.DayKey(date) + ":" + strconv.Itoa(minutes)
}

// NopCache кеш, который ничего не хранит. Используется, когда Redis выключен в конфиге
type NopCache struct{}

func (NopCache) Generation(context.Context) (int64, error) { return 0, nil }

func (NopCache) Get(context.Context, int64, time.Time, int) ([]domain.Slot, bool, error) {
	return nil, false, nil
}

func (NopCache) Set(context.Context, int64, time.Time, int, []domain.Slot) error { return nil }

func (NopCache) Invalidate(context.Context) error { return nil }
