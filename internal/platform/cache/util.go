package cache

import (
	"time"
)

// dailyCloseHour は日足が確定する時刻（韓国時間 9 時 = UTC 0 時）です。
const dailyCloseHour = 9

var kst = time.FixedZone("KST", 9*60*60)

// TimeUntilNextDailyClose は now から次の日足確定時刻（韓国時間 9 時）までの期間を返します。
func TimeUntilNextDailyClose(now time.Time) time.Duration {
	local := now.In(kst)
	next := time.Date(local.Year(), local.Month(), local.Day(), dailyCloseHour, 0, 0, 0, kst)
	if !local.Before(next) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(local)
}
