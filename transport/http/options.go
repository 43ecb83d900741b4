package http

import "time"

type Options struct {
	Swag     SwagOption
	Metrics  MetricsOption
	Health   HealthOption
	Timeouts TimeoutOption
}

type SwagOption struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

func (s *SwagOption) init() {
	if s.Path == "" {
		s.Path = "/swagger/*any"
	}
}

type MetricsOption struct {
	Enabled                   bool   `json:"enabled" mapstructure:"enabled"`
	Path                      string `json:"path" mapstructure:"path"`
	EnabledGoCollector        bool   `json:"enabled_go_collector" mapstructure:"enabled_go_collector"`
	EnabledBuildInfoCollector bool   `json:"enabled_build_info_collector" mapstructure:"enabled_build_info_collector"`
}

func (m *MetricsOption) init() {
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

type HealthOption struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

func (h *HealthOption) init() {
	if h.Path == "" {
		h.Path = "/health"
	}
}

// TimeoutOption http.Server 的超时设置, 零值使用默认值
type TimeoutOption struct {
	ReadHeader time.Duration `json:"read_header" mapstructure:"read_header"`
	Read       time.Duration `json:"read" mapstructure:"read"`
	Write      time.Duration `json:"write" mapstructure:"write"`
	Idle       time.Duration `json:"idle" mapstructure:"idle"`
}

func (t *TimeoutOption) init() {
	if t.ReadHeader == 0 {
		t.ReadHeader = 5 * time.Second
	}
	if t.Read == 0 {
		t.Read = 30 * time.Second
	}
	if t.Write == 0 {
		t.Write = 30 * time.Second
	}
	if t.Idle == 0 {
		t.Idle = 120 * time.Second
	}
}
