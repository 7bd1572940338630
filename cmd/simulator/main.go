package main

import (
	"encoding/json"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/config"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/simulate"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("aquaculture-simulator")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	// Simulated hours start in the past so a full forecast window exists early.
	hours := config.SimHours()
	start := time.Now().Truncate(time.Hour).Add(-time.Duration(hours) * time.Hour)

	var gens []*simulate.Generator
	for i, id := range config.SimFarmIDs() {
		if id = strings.TrimSpace(id); id != "" {
			gens = append(gens, simulate.NewGenerator(id, start, 30, time.Now().UnixNano()+int64(i)))
		}
	}

	for h := 0; h < hours; h++ {
		for _, g := range gens {
			r := g.Next()
			payload, err := json.Marshal(r)
			if err != nil {
				log.Error().Err(err).Msg("encode reading")
				continue
			}
			token := client.Publish(config.MQTTTopic(), 0, false, payload)
			token.Wait()
			if err := token.Error(); err != nil {
				log.Error().Err(err).Str("farm_id", r.FarmID).Msg("publish failed")
			}
		}
		time.Sleep(config.SimInterval())
	}
	log.Info().Int("hours", hours).Int("farms", len(gens)).Msg("simulation done")
}
