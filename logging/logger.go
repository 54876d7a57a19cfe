package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// 未初始化时使用 noop，保证任何时候调用 L() 都安全。
	logger     *Logger
	noopLogger = &Logger{zap.NewNop().Sugar()}

	atomicLevel zap.AtomicLevel
)

// Logger 包装 zap 的 SugaredLogger。
type Logger struct {
	*zap.SugaredLogger
}

// With 附加结构化字段并返回新的 Logger。
func (l *Logger) With(args ...interface{}) *Logger {
	if l == nil {
		return noopLogger
	}
	return &Logger{l.SugaredLogger.With(args...)}
}

// L 返回全局 logger，未初始化时返回 noop。
func L() *Logger {
	if logger == nil {
		return noopLogger
	}
	return logger
}

// Options 控制日志输出位置与格式。
type Options struct {
	// File 为空时写入 $XDG_STATE_HOME/<app>/ 或 ~/.local/state/<app>/。
	File string
	// Level: debug|info|warn|error，为空时 dev 模式默认 debug，否则 info。
	Level string
	// Dev 为 true 时使用可读的 console 编码，否则 JSON。
	Dev bool
}

// Init 初始化全局 logger 并返回实际写入的日志路径。
// TUI 占用终端，因此日志永远写文件，不写 stdout/stderr。
func Init(appName string, opts Options) string {
	path := opts.File
	if strings.TrimSpace(path) == "" {
		path = selectLogPath(appName, opts.Dev)
	} else {
		_ = os.MkdirAll(filepath.Dir(path), 0o755)
	}

	atomicLevel = zap.NewAtomicLevelAt(parseLevel(opts.Level, opts.Dev))

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if opts.Dev {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, atomicLevel)
	logger = &Logger{zap.New(core, zap.AddCaller()).Sugar()}
	logger.Infow("logger initialized", "path", path, "dev", opts.Dev)
	return path
}

// InitTest 使用写到 stdout 的开发配置，供测试使用。
func InitTest() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{"stdout"}
	raw, _ := cfg.Build(zap.AddCaller())
	logger = &Logger{raw.Sugar()}
}

// Sync 刷新缓冲的日志。
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func selectLogPath(appName string, dev bool) string {
	fileName := appName + ".log"
	if dev {
		fileName = appName + "-debug.log"
	}

	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		dir := filepath.Join(xdg, appName)
		_ = os.MkdirAll(dir, 0o755)
		return filepath.Join(dir, fileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".local", "state", appName)
		_ = os.MkdirAll(dir, 0o755)
		return filepath.Join(dir, fileName)
	}
	dir := filepath.Join(os.TempDir(), appName)
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, fileName)
}

func parseLevel(level string, dev bool) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	}
	if dev {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}
