package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"gnssmon/internal/config"
	"gnssmon/internal/gps"
	"gnssmon/internal/mqttpub"
	"gnssmon/internal/nmea"
	"gnssmon/internal/track"
	"gnssmon/internal/udp"
)

type sink struct {
	name string
	send func(nmea.Fix) error
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./gnssmon.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var sinks []sink

	if cfg.UDP.Enable {
		b, err := udp.NewBroadcaster(cfg.UDP.Dest)
		if err != nil {
			log.Fatalf("udp broadcaster init failed: %v", err)
		}
		defer b.Close()
		sinks = append(sinks, sink{name: "udp", send: b.SendFix})
		log.Printf("udp sink dest=%s", cfg.UDP.Dest)
	}

	if cfg.MQTT.Enable {
		p, err := mqttpub.New(mqttpub.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
		})
		if err != nil {
			log.Fatalf("mqtt publisher init failed: %v", err)
		}
		defer p.Close()
		sinks = append(sinks, sink{name: "mqtt", send: p.PublishFix})
		log.Printf("mqtt sink broker=%s topic=%s", cfg.MQTT.Broker, cfg.MQTT.Topic)
	}

	if cfg.Track.Enable {
		store := track.New(cfg.Track.Path)
		defer store.Close()
		sinks = append(sinks, sink{name: "track", send: func(fix nmea.Fix) error {
			return store.WriteFix(ctx, fix)
		}})
		log.Printf("track sink path=%s", cfg.Track.Path)
	}

	svc := gps.New(gps.Config{
		Enable: true,
		Source: cfg.Source.Type,
		Device: cfg.Source.Device,
		Baud:   cfg.Source.Baud,
		Path:   cfg.Source.Path,
		Pace:   cfg.Source.Pace,
		Loop:   cfg.Source.Loop,
	})
	if err := svc.Start(ctx); err != nil {
		log.Fatalf("gps service start failed: %v", err)
	}
	defer svc.Close()

	log.Printf("gnssmon starting source=%s", cfg.Source.Type)

	var published uint64
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case fix, ok := <-svc.Fixes():
			if !ok {
				break loop
			}
			for _, sk := range sinks {
				if err := sk.send(fix); err != nil {
					log.Printf("%s sink: %v", sk.name, err)
				}
			}
			published++
		}
	}

	log.Printf("gnssmon stopping: %s", summary(svc.Snapshot(), published))
}

func summary(snap gps.Snapshot, published uint64) string {
	return fmt.Sprintf("%s sentences, %s parse errors, %s fixes published, %s dropped",
		humanize.Comma(int64(snap.Sentences)),
		humanize.Comma(int64(snap.ParseErrors)),
		humanize.Comma(int64(published)),
		humanize.Comma(int64(snap.Dropped)))
}
