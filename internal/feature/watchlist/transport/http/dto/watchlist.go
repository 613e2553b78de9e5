// Package dto はwatchlistフィーチャーのリクエスト/レスポンス型を定義します。
package dto

// SymbolsResponse は監視銘柄一覧のレスポンスです。
type SymbolsResponse struct {
	Symbols []string `json:"symbols"`
}

// AddSymbolRequest は銘柄追加リクエストです。
type AddSymbolRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// AddSymbolResponse は銘柄追加の結果です。
type AddSymbolResponse struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// DisplayModeRequest は表示モード変更リクエストです。
type DisplayModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// DisplayModeResponse は現在の表示モードです。
type DisplayModeResponse struct {
	Mode string `json:"mode"`
}
