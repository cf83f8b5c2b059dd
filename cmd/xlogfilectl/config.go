package main

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xlogfile/pkg/config/xconf"
	"github.com/omeyang/xlogfile/pkg/observability/xlogfile"
	"github.com/omeyang/xlogfile/pkg/observability/xrotate"
)

// settings run 命令的完整配置，对应配置文件结构：
//
//	writer:
//	  dir: /var/log/app/records
//	  max_records: 1000
//	  max_age: 1m
//	  header: "# v1"
//	  completed_dir: /var/log/app/ready
//	  json: false
//	log:
//	  level: info
//	  format: text
//	  file: /var/log/app/xlogfilectl.log
//	  max_size_mb: 100
//	  max_backups: 5
//	stats_interval: 0s
type settings struct {
	Writer        writerSettings `koanf:"writer"`
	Log           logSettings    `koanf:"log"`
	StatsInterval time.Duration  `koanf:"stats_interval"`
}

type writerSettings struct {
	Dir          string        `koanf:"dir"`
	MaxRecords   int           `koanf:"max_records"`
	MaxAge       time.Duration `koanf:"max_age"`
	Header       string        `koanf:"header"`
	CompletedDir string        `koanf:"completed_dir"`
	JSON         bool          `koanf:"json"`
}

type logSettings struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

func defaultSettings() settings {
	return settings{
		Writer: writerSettings{
			MaxRecords: xlogfile.DefaultMaxRecords,
			MaxAge:     xlogfile.DefaultMaxAge,
		},
		Log: logSettings{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  xrotate.DefaultMaxSizeMB,
			MaxBackups: xrotate.DefaultMaxBackups,
		},
	}
}

// loadSettings 依次叠加默认值、配置文件和显式设置的命令行参数
//
// 返回的 xconf.Config 在未指定配置文件时为 nil。
func loadSettings(cmd *cli.Command) (settings, xconf.Config, error) {
	s := defaultSettings()

	var conf xconf.Config
	if path := cmd.String("config"); path != "" {
		c, err := xconf.New(path)
		if err != nil {
			return s, nil, usagef(err, "加载配置文件 %s", path)
		}
		if err := c.Unmarshal("", &s); err != nil {
			return s, nil, usagef(err, "解析配置文件 %s", path)
		}
		conf = c
	}

	if cmd.IsSet("dir") {
		s.Writer.Dir = cmd.String("dir")
	}
	if cmd.IsSet("max-records") {
		s.Writer.MaxRecords = cmd.Int("max-records")
	}
	if cmd.IsSet("max-age") {
		s.Writer.MaxAge = cmd.Duration("max-age")
	}
	if cmd.IsSet("header") {
		s.Writer.Header = cmd.String("header")
	}
	if cmd.IsSet("completed-dir") {
		s.Writer.CompletedDir = cmd.String("completed-dir")
	}
	if cmd.IsSet("json") {
		s.Writer.JSON = cmd.Bool("json")
	}
	if cmd.IsSet("log-file") {
		s.Log.File = cmd.String("log-file")
	}
	if cmd.IsSet("log-level") {
		s.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("stats-interval") {
		s.StatsInterval = cmd.Duration("stats-interval")
	}

	if s.Writer.Dir == "" {
		return s, nil, usagef(nil, "必须通过 --dir 或配置文件 writer.dir 指定日志目录")
	}
	return s, conf, nil
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "配置文件（.yaml/.yml/.json）"},
		&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "日志目录"},
		&cli.IntFlag{Name: "max-records", Usage: "单文件记录上限", Value: xlogfile.DefaultMaxRecords},
		&cli.DurationFlag{Name: "max-age", Usage: "单文件最长存活时间", Value: xlogfile.DefaultMaxAge},
		&cli.StringFlag{Name: "header", Usage: "每个文件的第一行"},
		&cli.StringFlag{Name: "completed-dir", Usage: "完成的文件移动到该目录"},
		&cli.BoolFlag{Name: "json", Usage: "只接受 JSON 对象行"},
		&cli.StringFlag{Name: "log-file", Usage: "诊断日志文件（按大小轮转），默认 stderr"},
		&cli.StringFlag{Name: "log-level", Usage: "诊断日志级别", Value: "info"},
		&cli.DurationFlag{Name: "stats-interval", Usage: "周期输出写入统计，0 表示关闭"},
	}
}
