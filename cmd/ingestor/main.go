package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/app"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/config"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	app.SetupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcs, cleanup, err := app.Build(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer cleanup()

	preloadCtx, cancel := context.WithTimeout(ctx, config.AccelPreloadTimeout())
	ready := svcs.PreloadAcceleration(preloadCtx)
	cancel()
	log.Info().Bool("accelerated", ready).Str("kernel", svcs.Accel.Implementation()).Msg("statistics kernels")

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(config.MetricsAddr(), mux); err != nil {
			log.Error().Err(err).Msg("metrics server exit")
		}
	}()

	opts := mqtt.NewClientOptions().
		AddBroker(config.MQTTBroker()).
		SetClientID("aquaculture-ingestor").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		if err := svcs.Readings.FromMQTT(msg.Topic(), msg.Payload()); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("ingest failed")
		}
	}

	topics := map[string]byte{
		config.MQTTTopic():        0,
		config.MQTTTopic() + "/+": 0,
	}
	if token := client.SubscribeMultiple(topics, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Str("topic", config.MQTTTopic()).Msg("ingestor running; Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("ingestor stopping")
}
