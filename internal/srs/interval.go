// internal/srs/interval.go

// Package srs は間隔反復（spaced repetition）のスケジュール計算を提供します。
// このパッケージの関数はすべて純粋関数で、DBにもコンテキストにも依存しません。
package srs

import "vocab_review_keep/internal/model"

// ステージごとの復習間隔（日数）。インデックス = 復習前のステージ。
var intervalDays = [...]int{1, 2, 4, 7, 15, 30}

// IntervalDays は復習前のステージに対する復習間隔を日数で返します。
// 範囲外のステージは最長の30日として扱い、エラーにはしません
// （スケジュール計算は決して失敗させない）。
func IntervalDays(stage int) int {
	if stage < model.MinReviewStage || stage > model.MaxReviewStage {
		return intervalDays[model.MaxReviewStage]
	}
	return intervalDays[stage]
}

// ClampStage はDB上の不正なステージ値を 0〜5 に丸めます。
// スケジューラ外からの書き込みで壊れた行を読んでもクラッシュしないための措置。
func ClampStage(stage int) int {
	if stage < model.MinReviewStage {
		return model.MinReviewStage
	}
	if stage > model.MaxReviewStage {
		return model.MaxReviewStage
	}
	return stage
}
