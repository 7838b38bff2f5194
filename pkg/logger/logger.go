package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log 是一个全局的、配置好的 logrus 实例
// 未调用InitLogger之前也可以直接使用（测试、工具命令），默认输出到控制台
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// InitLogger 初始化全局的Logger实例
// level为空或无法解析时使用Info；file为空时只输出到控制台
func InitLogger(level, file string) error {
	Log = newDefault()

	// 日志将同时打印在控制台(os.Stdout)和文件(file)里
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		Log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	// 开发时可以是Debug，生产环境可以是Info
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	return nil
}
