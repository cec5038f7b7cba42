// Package i18n хранит подключаемые таблицы подписей: статусы, цвета, тексты нарушений.
// Бизнес-правила от локали не зависят.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

// Поддерживаемые встроенные локали.
const (
	LocaleVI = "vi"
	LocaleEN = "en"
)

//go:embed locales/*.yaml
var builtinLocales embed.FS

// ErrUnknownLocale — встроенной таблицы для локали нет.
var ErrUnknownLocale = errors.New("unknown locale")

// violationKeys связывает правила валидации с ключами таблицы.
var violationKeys = map[error]string{
	domain.ErrOrderIDInvalid:      "order_id",
	domain.ErrCustomerIDInvalid:   "customer_id",
	domain.ErrCustomerNameInvalid: "customer_name",
	domain.ErrOrderDateInvalid:    "order_date",
	domain.ErrStatusInvalid:       "status",
	domain.ErrItemsInvalid:        "items",
	domain.ErrTotalMismatch:       "total",
}

// StatusLabel — подпись и цвет статуса.
type StatusLabel struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Labels — таблица подписей одной локали.
type Labels struct {
	Locale     string                             `yaml:"locale"`
	Statuses   map[domain.OrderStatus]StatusLabel `yaml:"statuses"`
	Unknown    StatusLabel                        `yaml:"unknown"`
	Violations map[string]string                  `yaml:"violations"`
	Texts      map[string]string                  `yaml:"texts"`
}

// Builtin возвращает встроенную таблицу для локали.
func Builtin(locale string) (*Labels, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	data, err := builtinLocales.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	return Parse(data)
}

// MustBuiltin — Builtin для известных на этапе компиляции локалей.
func MustBuiltin(locale string) *Labels {
	labels, err := Builtin(locale)
	if err != nil {
		panic(err)
	}
	return labels
}

// LoadFile читает таблицу из YAML-файла.
func LoadFile(path string) (*Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read labels file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает YAML-таблицу.
func Parse(data []byte) (*Labels, error) {
	var labels Labels
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	return &labels, nil
}

// StatusName возвращает подпись статуса, для неизвестного подпись Unknown или сам код.
func (l *Labels) StatusName(status domain.OrderStatus) string {
	if label, ok := l.Statuses[status]; ok && label.Name != "" {
		return label.Name
	}
	if l.Unknown.Name != "" {
		return l.Unknown.Name
	}
	return string(status)
}

// StatusColor возвращает цвет статуса в виде #rrggbb.
func (l *Labels) StatusColor(status domain.OrderStatus) string {
	if label, ok := l.Statuses[status]; ok && label.Color != "" {
		return label.Color
	}
	return l.Unknown.Color
}

// Message переводит нарушение валидации. Совместим с domain.MessageFunc.
func (l *Labels) Message(violation error) string {
	if key, ok := violationKeys[violation]; ok {
		if msg, ok := l.Violations[key]; ok && msg != "" {
			return msg
		}
	}
	return domain.DefaultMessage(violation)
}

// Text возвращает строку интерфейса по ключу; отсутствующий ключ возвращается как есть.
func (l *Labels) Text(key string) string {
	if text, ok := l.Texts[key]; ok && text != "" {
		return text
	}
	return key
}
