package lunar

import (
	"fmt"
	"strings"
)

// Date is a date in the Chinese lunar calendar.
type Date struct {
	Year   int  `json:"year" yaml:"year"`
	Month  int  `json:"month" yaml:"month"`
	Day    int  `json:"day" yaml:"day"`
	IsLeap bool `json:"is_leap_month" yaml:"is_leap_month"`
}

var (
	digitNames = [10]string{"〇", "一", "二", "三", "四", "五", "六", "七", "八", "九"}
	monthNames = [12]string{"正", "二", "三", "四", "五", "六", "七", "八", "九", "十", "冬", "臘"}
	tensNames  = [4]string{"初", "十", "廿", "三"}
)

// MonthName returns the month in Chinese, e.g. "正月" or "閏四月".
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Sprintf("%d月", d.Month)
	}
	name := monthNames[d.Month-1] + "月"
	if d.IsLeap {
		name = "閏" + name
	}
	return name
}

// DayName returns the day in Chinese, e.g. "初一", "十五", "廿三", "三十".
func (d Date) DayName() string {
	switch {
	case d.Day < 1 || d.Day > 30:
		return fmt.Sprintf("%d日", d.Day)
	case d.Day == 10:
		return "初十"
	case d.Day == 20:
		return "二十"
	case d.Day == 30:
		return "三十"
	}
	return tensNames[d.Day/10] + digitNames[d.Day%10]
}

// YearName returns the year spelled digit by digit, e.g. "二〇一九".
func (d Date) YearName() string {
	var b strings.Builder
	for _, r := range fmt.Sprint(d.Year) {
		if r >= '0' && r <= '9' {
			b.WriteString(digitNames[r-'0'])
		}
	}
	return b.String()
}

// String renders the full date, e.g. "二〇一九年六月初五".
func (d Date) String() string {
	return d.YearName() + "年" + d.MonthName() + d.DayName()
}
