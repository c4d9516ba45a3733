package metrics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrInvalidIntervalFormat 表示周期描述符不符合 <整数><单位> 格式。
	ErrInvalidIntervalFormat = errors.New("invalid interval format")
	// ErrUnsupportedIntervalUnit 表示周期单位不在支持范围内。
	ErrUnsupportedIntervalUnit = errors.New("unsupported interval unit")
)

// 按非闰年计算。
const (
	hoursPerYear = 8760
	daysPerYear  = 365
)

// PeriodsPerYear 将周期描述符(如 "1h"、"4h"、"1d")换算为年内周期数。
// 单位不区分大小写，仅支持 h 与 d。
func PeriodsPerYear(interval string) (float64, error) {
	trimmed := strings.TrimSpace(interval)

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIntervalFormat, interval)
	}

	n, err := strconv.Atoi(trimmed[:digits])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIntervalFormat, interval)
	}

	unit := strings.ToLower(strings.TrimSpace(trimmed[digits:]))
	if unit == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIntervalFormat, interval)
	}
	for _, r := range unit {
		if !unicode.IsLetter(r) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidIntervalFormat, interval)
		}
	}

	switch unit {
	case "h":
		return hoursPerYear / float64(n), nil
	case "d":
		return daysPerYear / float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedIntervalUnit, unit)
	}
}

// AnnualizationFactor 返回年化因子。override 大于0时无条件覆盖默认值，
// 否则取 sqrt(periodsPerYear)。
func AnnualizationFactor(periodsPerYear, override float64) float64 {
	if override > 0 {
		return override
	}
	return math.Sqrt(periodsPerYear)
}
