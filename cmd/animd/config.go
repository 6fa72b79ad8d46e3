package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topic    string `yaml:"topic"`
		QoS      byte   `yaml:"qos"`
	} `yaml:"mqtt"`

	// Scene is the path of a declarative animation scene.
	Scene         string        `yaml:"scene"`
	FrameInterval time.Duration `yaml:"frameInterval"`
	ClearWhenIdle bool          `yaml:"clearWhenIdle"`
	LogLevel      string        `yaml:"logLevel"`
}

func defaultConfig() Config {
	var c Config
	c.Mqtt.URL = "tcp://localhost:1883"
	c.Mqtt.ClientID = "animd"
	c.Mqtt.Topic = "anim/properties"
	c.FrameInterval = time.Second / 60
	c.LogLevel = "info"
	return c
}

func readConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (Config, error) {
	c := defaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, c.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Mqtt.URL == "" {
		errs = append(errs, errors.New("mqtt.url is required"))
	}
	if c.Mqtt.Topic == "" {
		errs = append(errs, errors.New("mqtt.topic is required"))
	}
	if c.Mqtt.QoS > 2 {
		errs = append(errs, fmt.Errorf("mqtt.qos %d out of range", c.Mqtt.QoS))
	}
	if c.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("frameInterval %s must be positive", c.FrameInterval))
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("logLevel: %w", err)
	}
	return l, nil
}
