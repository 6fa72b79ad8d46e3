// Command animd plays a declarative animation scene and publishes sampled
// property snapshots to an MQTT topic once per frame.
//
// With -listen it instead subscribes to the topic and logs every snapshot it
// receives.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/plus3/animstore/anim"
	"github.com/plus3/animstore/anim/decl"
	"github.com/plus3/animstore/anim/mqttrender"
)

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	listen := flag.Bool("listen", false, "Log received snapshots instead of publishing.")
	flag.Parse()

	cfg, err := readConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	level, _ := cfg.level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	anim.SetLogger(logger)
	mqtt.ERROR = log.New(os.Stderr, "mqtt: ", 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *listen {
		err = runListener(ctx, cfg, logger)
	} else {
		err = runPublisher(ctx, cfg, logger)
	}
	if err != nil && ctx.Err() == nil {
		logger.Error("animd failed", "error", err)
		os.Exit(1)
	}
}

func connect(cfg Config, clientID string, logger *slog.Logger) (mqtt.Client, error) {
	options := mqtt.NewClientOptions().
		AddBroker(cfg.Mqtt.URL).
		SetClientID(clientID).
		SetUsername(cfg.Mqtt.Username).
		SetPassword(cfg.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			logger.Info("connected", "broker", cfg.Mqtt.URL)
		})
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Mqtt.URL, token.Error())
	}
	return client, nil
}

func runPublisher(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if cfg.Scene == "" {
		return fmt.Errorf("no scene configured")
	}
	f, err := os.Open(cfg.Scene)
	if err != nil {
		return err
	}
	scene, err := decl.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("scene %s: %w", cfg.Scene, err)
	}

	store := anim.NewStore()
	if err := scene.Install(store, time.Now()); err != nil {
		return fmt.Errorf("scene %s: %w", cfg.Scene, err)
	}
	logger.Info("scene installed", "path", cfg.Scene, "entities", store.Len())

	client, err := connect(cfg, cfg.Mqtt.ClientID, logger)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	publisher := mqttrender.NewPublisher(client, cfg.Mqtt.Topic, cfg.Mqtt.QoS)
	driver := anim.NewDriver(store, publisher)
	driver.ClearWhenIdle = cfg.ClearWhenIdle

	err = driver.Run(ctx, cfg.FrameInterval)

	stats := driver.Stats()
	published, suppressed := publisher.Counts()
	logger.Info("driver stopped",
		"frames", stats.Frames,
		"activeFrames", stats.ActiveFrames,
		"published", published,
		"suppressed", suppressed,
		"publishErrors", stats.PublishErrors)
	return err
}

func runListener(ctx context.Context, cfg Config, logger *slog.Logger) error {
	client, err := connect(cfg, cfg.Mqtt.ClientID+"-listen", logger)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	err = mqttrender.Subscribe(client, cfg.Mqtt.Topic, cfg.Mqtt.QoS, func(snap anim.Snapshot, err error) {
		if err != nil {
			logger.Warn("bad snapshot", "error", err)
			return
		}
		logger.Info("snapshot",
			"transforms", len(snap.Transforms),
			"opacities", len(snap.Opacities),
			"colors", len(snap.Colors))
		for _, o := range snap.Opacities {
			logger.Debug("opacity", "id", o.Id, "value", o.Opacity)
		}
		for _, c := range snap.Colors {
			logger.Debug("color", "id", c.Id, "rgba", fmt.Sprintf("%08x", c.Color))
		}
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}
