// Package dto はboardフィーチャーのレスポンス型を定義します。
package dto

import "stockhawk/internal/feature/board/domain/entity"

// BoardResponse はリスト画面の行一覧です。
type BoardResponse struct {
	DisplayMode string       `json:"display_mode"`
	Rows        []entity.Row `json:"rows"`
}

// RefreshResponse は更新操作後の画面状態です。
type RefreshResponse struct {
	State      string `json:"state"`
	Message    string `json:"message,omitempty"`
	Persistent bool   `json:"persistent"`
}
