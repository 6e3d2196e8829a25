package rangefilter

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParser_Parse(t *testing.T) {
	p := NewParser("g")

	tests := []struct {
		name string
		raw  string
		low  string
		high string
	}{
		{"上限带单位", "10-30g", "10", "30"},
		{"大写单位", "10-30G", "10", "30"},
		{"上下限同单位", "10g-30G", "10", "30"},
		{"无单位", "5-8", "5", "8"},
		{"小数", "0.5-1.25g", "0.5", "1.25"},
		{"逗号小数点", "0,5-7,5g", "0.5", "7.5"},
		{"空白", "  10 - 30 g ", "10", "30"},
		{"上下限相等", "20-20g", "20", "20"},
		{"零下限", "0-1g", "0", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := p.Parse(tt.raw)
			require.NoError(t, err)
			assert.True(t, dec(tt.low).Equal(v.Low()), "low: %s", v.Low())
			assert.True(t, dec(tt.high).Equal(v.High()), "high: %s", v.High())
		})
	}
}

func TestParser_ParseUnparseable(t *testing.T) {
	p := NewParser("g")

	tests := []struct {
		name   string
		raw    string
		reason Reason
	}{
		{"空字符串", "", ReasonEmpty},
		{"只有空白", "   ", ReasonEmpty},
		{"没有分隔符", "Superficie", ReasonSeparator},
		{"单个数字", "30g", ReasonSeparator},
		{"多个分隔符", "10-20-30g", ReasonSeparator},
		{"负数下限", "-5-10g", ReasonSeparator},
		{"非数字", "x1-30g", ReasonNumber},
		{"只有字母", "abc-defg", ReasonUnit},
		{"缺少上限", "10-g", ReasonNumber},
		{"缺少下限", "-30g", ReasonNumber},
		{"指数表示", "1e1-30g", ReasonNumber},
		{"未知单位", "0-1m", ReasonUnit},
		{"单位只在下限", "10g-30", ReasonUnit},
		{"单位不一致", "10g-30kg", ReasonUnit},
		{"下限大于上限", "30-10g", ReasonOrder},
		{"多个小数点", "1.2.3-4g", ReasonNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnparseable)

			var perr *UnparseableError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.reason, perr.Reason)
			assert.Equal(t, tt.raw, perr.Raw)
		})
	}
}

func TestParser_ParsePtr(t *testing.T) {
	p := NewParser("g")

	_, err := p.ParsePtr(nil)
	var perr *UnparseableError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ReasonAbsent, perr.Reason)

	raw := "10-30g"
	v, err := p.ParsePtr(&raw)
	require.NoError(t, err)
	assert.Equal(t, "10-30", v.String())
}

func TestParser_NoUnits(t *testing.T) {
	p := NewParser()

	_, err := p.Parse("10-30")
	assert.NoError(t, err)

	_, err = p.Parse("10-30g")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParser_MultipleUnits(t *testing.T) {
	p := NewParser("m", "cm")

	v, err := p.Parse("0-1m")
	require.NoError(t, err)
	assert.True(t, v.High().Equal(dec("1")))

	v, err = p.Parse("50-120CM")
	require.NoError(t, err)
	assert.True(t, v.Low().Equal(dec("50")))
}

func TestValue_Predicates(t *testing.T) {
	v, err := NewParser("g").Parse("10-30g")
	require.NoError(t, err)

	assert.True(t, v.Overlaps(dec("30"), dec("50")))
	assert.True(t, v.Overlaps(dec("0"), dec("10")))
	assert.False(t, v.Overlaps(dec("31"), dec("40")))
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"15", "15"},
		{"15g", "15"},
		{" 15 G ", "15"},
		{"0", "0"},
		{"-3", "-3"},
		{"2,5", "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d, err := ParseThreshold(tt.raw, "g")
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(d), "got %s", d)
		})
	}

	for _, raw := range []string{"", "abc", "15kg", "1e3", "--1", "1.2.3"} {
		t.Run("非法阈值 "+raw, func(t *testing.T) {
			_, err := ParseThreshold(raw, "g")
			assert.ErrorIs(t, err, ErrInvalidThreshold)
		})
	}
}
