package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// 单个日志文件的大小上限，超过后轮转
const maxLogSize = 10 * 1024 * 1024

var logFile *os.File

// InitFile 将标准日志输出重定向到文件（path 为空时保持 stderr 输出）
func InitFile(path string) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// 超过大小上限时轮转到带时间戳的备份文件
	if info, err := f.Stat(); err == nil && info.Size() > maxLogSize {
		_ = f.Close()
		backup := fmt.Sprintf("%s.%d", path, time.Now().Unix())
		_ = os.Rename(path, backup)
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	logFile = f
	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	log.Printf("[INFO] logging to %s", path)
	return nil
}

// Close 关闭日志文件
func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// LogPanic 记录 panic 和调用栈
func LogPanic(r any) {
	log.Printf("[PANIC] %v\n%s", r, debug.Stack())
}
