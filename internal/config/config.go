package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source SourceConfig `yaml:"source"`
	UDP    UDPConfig    `yaml:"udp"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Track  TrackConfig  `yaml:"track"`
}

type SourceConfig struct {
	Type   string `yaml:"type"` // serial | file
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	Path string        `yaml:"path"`
	Pace time.Duration `yaml:"pace"`
	Loop bool          `yaml:"loop"`
}

type UDPConfig struct {
	Enable bool   `yaml:"enable"`
	Dest   string `yaml:"dest"`
}

type MQTTConfig struct {
	Enable   bool   `yaml:"enable"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

type TrackConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Source.Type == "" {
		cfg.Source.Type = "serial"
	}
	switch cfg.Source.Type {
	case "serial":
		if cfg.Source.Baud == 0 {
			cfg.Source.Baud = 9600
		}
	case "file":
		if cfg.Source.Path == "" {
			return Config{}, fmt.Errorf("source.path is required when source.type is 'file'")
		}
		if cfg.Source.Pace < 0 {
			return Config{}, fmt.Errorf("source.pace must be >= 0")
		}
	default:
		return Config{}, fmt.Errorf("source.type must be 'serial' or 'file'")
	}

	if cfg.UDP.Enable && cfg.UDP.Dest == "" {
		return Config{}, fmt.Errorf("udp.dest is required when udp.enable is true")
	}

	if cfg.MQTT.Enable {
		if cfg.MQTT.Broker == "" {
			return Config{}, fmt.Errorf("mqtt.broker is required when mqtt.enable is true")
		}
		if cfg.MQTT.ClientID == "" {
			cfg.MQTT.ClientID = "gnssmon"
		}
		if cfg.MQTT.Topic == "" {
			cfg.MQTT.Topic = "gnss/fix"
		}
	}

	if cfg.Track.Enable && cfg.Track.Path == "" {
		return Config{}, fmt.Errorf("track.path is required when track.enable is true")
	}

	return cfg, nil
}
