// internal/srs/transition.go
package srs

import (
	"time"

	"vocab_review_keep/internal/model"
)

// 復習結果による状態遷移。item を直接書き換えます。
// 永続化は呼び出し側（サービス層）が AtomicUpdate の中で行います。

// ApplyRemembered は「思い出せた」遷移を適用します。
//  1. reviewCount / correctCount を加算
//  2. 復習前のステージで間隔を引き、now の次の復習日境界 + 間隔日数を次回復習日に設定
//  3. ステージを1段進める（上限5）
//  4. ステージ5かつ累計正解数が6以上になったら習得（mastered）
func ApplyRemembered(item *model.VocabularyItem, now time.Time, cutoverHour int) {
	prevStage := ClampStage(item.ReviewStage)

	item.ReviewCount++
	item.CorrectCount++

	next := NextWindowStart(now, cutoverHour).AddDate(0, 0, IntervalDays(prevStage))
	item.NextReviewAt = &next

	item.ReviewStage = prevStage + 1
	if item.ReviewStage > model.MaxReviewStage {
		item.ReviewStage = model.MaxReviewStage
	}

	if item.ReviewStage == model.MaxReviewStage && item.CorrectCount >= model.MasteryCorrectCount {
		item.Mastered = true
		item.FamiliarityLevel = model.MaxReviewStage
	} else {
		item.FamiliarityLevel = item.ReviewStage
	}

	reviewedAt := now
	item.LastReviewedAt = &reviewedAt
}

// ApplyForgotten は「忘れていた」遷移を適用します。
// ステージ・習熟度は0に戻り、習得フラグも解除されます。
// correctCount は減らしません（累計の正解数として保持）。
// 次回復習日は now の次の復習日境界（間隔ゼロの Remembered と同じ計算）。
func ApplyForgotten(item *model.VocabularyItem, now time.Time, cutoverHour int) {
	item.ReviewCount++

	item.ReviewStage = model.MinReviewStage
	item.FamiliarityLevel = 0
	item.Mastered = false

	next := NextWindowStart(now, cutoverHour)
	item.NextReviewAt = &next

	reviewedAt := now
	item.LastReviewedAt = &reviewedAt
}

// ApplyMarkMastered は管理用の習得フラグ上書きです。通常の復習フローの外にある
// 操作で、ステージ・各カウンタ・次回復習日には触れません。そのため
// 「mastered だが stage < 5」という、復習経由では到達しない状態を作り得ます。
// 選択処理は mastered のみを見るので、上書きされたアイテムも復習対象から外れます。
func ApplyMarkMastered(item *model.VocabularyItem) {
	item.Mastered = true
	item.FamiliarityLevel = model.MaxReviewStage
}
