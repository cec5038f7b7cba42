package i18n

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

func TestBuiltin_StatusLabels(t *testing.T) {
	tests := []struct {
		locale string
		status domain.OrderStatus
		name   string
		color  string
	}{
		{LocaleVI, domain.OrderStatusPending, "Chờ xác nhận", "#faad14"},
		{LocaleVI, domain.OrderStatusShipping, "Đang giao", "#1890ff"},
		{LocaleVI, domain.OrderStatusCompleted, "Hoàn thành", "#52c41a"},
		{LocaleVI, domain.OrderStatusCancelled, "Đã hủy", "#ff4d4f"},
		{LocaleVI, "archived", "Không xác định", "#d9d9d9"},
		{LocaleEN, domain.OrderStatusPending, "Pending", "#faad14"},
		{LocaleEN, "archived", "Unknown", "#d9d9d9"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+string(tt.status), func(t *testing.T) {
			labels, err := Builtin(tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.name, labels.StatusName(tt.status))
			assert.Equal(t, tt.color, labels.StatusColor(tt.status))
		})
	}
}

func TestBuiltin_EveryRuleHasMessage(t *testing.T) {
	for _, locale := range []string{LocaleVI, LocaleEN} {
		labels := MustBuiltin(locale)
		for _, key := range violationKeys {
			assert.Containsf(t, labels.Violations, key, "locale %s misses %s", locale, key)
		}
	}
}

func TestBuiltin_UnknownLocale(t *testing.T) {
	_, err := Builtin("fr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLocale))
	assert.Panics(t, func() { MustBuiltin("fr") })
}

func TestLabels_MessagePlugsIntoValidation(t *testing.T) {
	labels := MustBuiltin(" VI ")

	result := domain.ValidateOrderWith(domain.Order{}, time.Now(), labels.Message)
	require.False(t, result.Valid)
	assert.Equal(t, "Mã đơn hàng không hợp lệ (DH + ít nhất 3 chữ số).", result.Errors[0])

	other := errors.New("something else")
	assert.Equal(t, "something else", labels.Message(other))
}

func TestLabels_Fallbacks(t *testing.T) {
	labels, err := Parse([]byte("locale: xx\n"))
	require.NoError(t, err)

	assert.Equal(t, "pending", labels.StatusName(domain.OrderStatusPending))
	assert.Equal(t, "", labels.StatusColor(domain.OrderStatusPending))
	assert.Equal(t, domain.DefaultMessage(domain.ErrTotalMismatch), labels.Message(domain.ErrTotalMismatch))
	assert.Equal(t, "revenue", labels.Text("revenue"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
locale: custom
statuses:
  pending: {name: Waiting, color: "#000000"}
texts:
  revenue: Income
`), 0o600))

	labels, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", labels.Locale)
	assert.Equal(t, "Waiting", labels.StatusName(domain.OrderStatusPending))
	assert.Equal(t, "Income", labels.Text("revenue"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("statuses: [broken"), 0o600))
	_, err = LoadFile(path)
	require.Error(t, err)
}
