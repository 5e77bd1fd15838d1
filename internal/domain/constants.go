package domain

// Параметры движка доступности по умолчанию
const (
	DefaultTravelBufferMinutes  = 30  // время на дорогу после каждой работы
	DefaultCandidateStepMinutes = 30  // шаг перебора начала слота
	DefaultAnchorMinMinutes     = 90  // минимальный полезный промежуток между работами
	DefaultLookaheadDays        = 30  // на сколько дней вперёд показываем слоты
	DefaultServiceHours         = 2.0 // длительность услуги, если не указана
)

// Ограничения бизнес-валидации
const (
	MaxServiceHours      = 12
	MaxServiceTypeLength = 100
	MaxAddOns            = 20
	MaxNameLength        = 200
	MaxAddressLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
