package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce 合併編輯器原子儲存（write + rename）產生的連續事件
const reloadDebounce = 500 * time.Millisecond

// WatchConfig 監看單一設定檔（system.json），每次偵測到內容變更時
// 在去抖動後送出一個通知。watcher 於背景 goroutine 執行直到 ctx 取消。
//
// Failures to watch are logged, not fatal: the file is optional and the
// engine keeps running on its current settings.
func WatchConfig(ctx context.Context, file string) <-chan struct{} {
	reloadCh := make(chan struct{}, 1) // Buffer 1 so we don't block sender

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("Failed to create fsnotify watcher", "error", err)
		return reloadCh
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		absPath = file
	}
	if err := watcher.Add(absPath); err != nil {
		slog.Warn("Could not watch configuration file", "file", file, "error", err)
	} else {
		slog.Debug("Watching configuration file", "file", absPath)
	}

	go func() {
		defer watcher.Close()
		defer close(reloadCh)

		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					slog.Info("Configuration change detected", "file", event.Name)
					select {
					case reloadCh <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("Watcher encountered an error", "error", err)
			}
		}
	}()

	return reloadCh
}
