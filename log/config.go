package log

import (
	"time"

	"github.com/kochabx/eckit/log/writer"
)

// Config 日志配置
type Config struct {
	Level       string     `json:"level" mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Output      string     `json:"output" mapstructure:"output" validate:"omitempty,oneof=console file multi"`
	Caller      bool       `json:"caller" mapstructure:"caller"`
	Desensitize bool       `json:"desensitize" mapstructure:"desensitize"`
	File        FileConfig `json:"file" mapstructure:"file"`
}

// FileConfig 日志文件配置
type FileConfig struct {
	Filepath         string           `json:"filepath" mapstructure:"filepath"`
	Filename         string           `json:"filename" mapstructure:"filename"`
	FileExt          string           `json:"file_ext" mapstructure:"file_ext"`
	RotateMode       string           `json:"rotate_mode" mapstructure:"rotate_mode" validate:"omitempty,oneof=time size"`
	RotatelogsConfig RotatelogsConfig `json:"rotatelogs_config" mapstructure:"rotatelogs_config"`
	LumberjackConfig LumberjackConfig `json:"lumberjack_config" mapstructure:"lumberjack_config"`
}

// RotatelogsConfig 按时间轮转配置
type RotatelogsConfig struct {
	MaxAge       int `json:"max_age" mapstructure:"max_age"`             // 小时
	RotationTime int `json:"rotation_time" mapstructure:"rotation_time"` // 小时
}

// LumberjackConfig 按大小轮转配置
type LumberjackConfig struct {
	MaxSize    int  `json:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int  `json:"max_backups" mapstructure:"max_backups"`
	MaxAge     int  `json:"max_age" mapstructure:"max_age"` // 天
	Compress   bool `json:"compress" mapstructure:"compress"`
}

// withDefaults 为零值字段填充默认值
func (c FileConfig) withDefaults() FileConfig {
	setDefault(&c.Filepath, "log")
	setDefault(&c.Filename, "eccd")
	setDefault(&c.FileExt, "log")
	setDefault(&c.RotateMode, writer.RotateBySize.String())
	setDefault(&c.RotatelogsConfig.MaxAge, 24)
	setDefault(&c.RotatelogsConfig.RotationTime, 1)
	setDefault(&c.LumberjackConfig.MaxSize, 100)
	setDefault(&c.LumberjackConfig.MaxBackups, 5)
	setDefault(&c.LumberjackConfig.MaxAge, 30)
	return c
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// options 转换为 writer.FileOptions, 配置中的小时数换算为时长
func (c FileConfig) options() (writer.FileOptions, error) {
	mode, err := writer.ParseRotateMode(c.RotateMode)
	if err != nil {
		return writer.FileOptions{}, err
	}

	return writer.FileOptions{
		Dir:        c.Filepath,
		Name:       c.Filename,
		Ext:        c.FileExt,
		Mode:       mode,
		MaxSizeMB:  c.LumberjackConfig.MaxSize,
		MaxBackups: c.LumberjackConfig.MaxBackups,
		MaxAgeDays: c.LumberjackConfig.MaxAge,
		Compress:   c.LumberjackConfig.Compress,
		Retain:     time.Duration(c.RotatelogsConfig.MaxAge) * time.Hour,
		Every:      time.Duration(c.RotatelogsConfig.RotationTime) * time.Hour,
	}, nil
}
