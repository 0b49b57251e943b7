package service

import "time"

// Clock 时间源
// 排班逻辑不直接读取系统时间，统一通过注入的 Clock 获取"现在"，
// 测试中可替换为固定时间
type Clock func() time.Time

// SystemClock 系统时钟
func SystemClock() Clock {
	return time.Now
}
