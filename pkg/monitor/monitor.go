package monitor

import "time"

// TurnRecord 代表一輪完成的問答，供監控器顯示
type TurnRecord struct {
	Timestamp time.Time
	TurnID    string
	Model     string
	Prompt    string
	Response  string
}

// Monitor 介面定義了監控器的行為
type Monitor interface {
	// Start 啟動監控器
	Start() error

	// Stop 停止監控器
	Stop() error

	// OnTurn 接收並顯示一輪完成的問答
	OnTurn(record TurnRecord)
}
