// internal/srs/window.go
package srs

import "time"

// 「復習日」は深夜0時ではなく、切替時刻（cutover hour）から翌日の同時刻までの
// 半開区間 [cutover(d), cutover(d+1)) として扱います。
// 例: cutoverHour=2 のとき、1月10日 01:59 は「1月9日の復習日」に属します。

// WindowStart は now が属する復習日の開始時刻を返します。
// now の時刻が切替時刻より前の場合、開始時刻は前日の切替時刻になります。
// 秒未満は切り捨てられます（区間境界の比較を秒単位で厳密にするため）。
func WindowStart(now time.Time, cutoverHour int) time.Time {
	start := time.Date(now.Year(), now.Month(), now.Day(), cutoverHour, 0, 0, 0, now.Location())
	if now.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

// NextWindowStart は now の直後にくる復習日境界を返します。
// 常に WindowStart(now) のちょうど1日後です。
func NextWindowStart(now time.Time, cutoverHour int) time.Time {
	return WindowStart(now, cutoverHour).AddDate(0, 0, 1)
}

// WindowEnd は windowStart で始まる復習日の終端（翌日の切替時刻）を返します。
// 区間は半開なので、この時刻自体は当日に含まれません。
func WindowEnd(windowStart time.Time) time.Time {
	return windowStart.AddDate(0, 0, 1)
}
