package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout 系统统一的日期格式（ISO 8601 日历日期）
const DateLayout = "2006-01-02"

// ── 日历日期类型 ──

// Date 不含时分秒的日历日期，对应数据库 DATE 列，JSON 中为 "YYYY-MM-DD"。
type Date struct {
	time.Time
}

// NewDate 截取 t 在其所在时区的年月日
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today 返回 loc 时区下的今天
func Today(loc *time.Location) Date {
	return NewDate(time.Now().In(loc))
}

// ParseDate 解析 "YYYY-MM-DD"；其他格式（如 DD-MM-YYYY）一律拒绝
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) >= len(DateLayout) && strings.Contains(s, "T") {
		s = s[:len(DateLayout)] // 兼容前端传入的 ISO 时间戳
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// MonthRange 返回某年某月的 [月初, 次月初) 区间
func MonthRange(year int, month time.Month) (Date, Date) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Date{Time: from}, Date{Time: from.AddDate(0, 1, 0)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Equal 按日历日比较
func (d Date) Equal(o Date) bool {
	return d.String() == o.String()
}

// MarshalJSON 输出 "YYYY-MM-DD"，零值输出 null
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON 接受 "YYYY-MM-DD"、空串与 null
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value 统一以 UTC 零点写入，sqlite 下同格式文本可直接按字典序比较
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return NewDate(d.Time).Time, nil
}

// Scan 兼容驱动返回的 time.Time / 文本
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("Date.Scan: unsupported type %T", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("Date.Scan: invalid value %q", s)
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return fmt.Errorf("Date.Scan: %w", err)
	}
	*d = Date{Time: t}
	return nil
}

// GormDataType 迁移时映射为 DATE 列
func (Date) GormDataType() string { return "date" }

// ── 通用审计字段 ──

// BaseModel 所有业务模型嵌入：UUID 主键 + 创建/更新时间
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate 由应用层生成 UUID，不依赖数据库扩展
func (m *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
