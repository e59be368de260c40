package main

import (
	"context"
	"math/rand"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"restaurant-seating/internal/config"
	"restaurant-seating/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(logCfg); err != nil {
		panic(err)
	}
	cfg, err := config.LoadSim()
	if err != nil {
		log.Fatal().Err(err).Msg("load sim config failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newSimClient(cfg.BaseURL, 5*time.Second)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	var wg sync.WaitGroup

	for i := 0; i < cfg.Parties; i++ {
		if !sleepCtx(ctx, time.Duration(cfg.ArrivalMS)*time.Millisecond) {
			break
		}
		plan := nextVisit(rnd, cfg)
		party, err := c.arrive(ctx, plan.size)
		if err != nil {
			log.Warn().Err(err).Int("party_size", plan.size).Msg("arrive failed")
			continue
		}
		log.Info().Str("party_id", party.PartyID).Int("party_size", party.Size).Str("status", party.Status).Str("table_id", party.TableID).Msg("party arrived")

		wg.Add(1)
		go func(partyID string, plan visit) {
			defer wg.Done()
			if !sleepCtx(ctx, plan.stay) {
				return
			}
			if err := c.leave(ctx, partyID); err != nil {
				log.Warn().Err(err).Str("party_id", partyID).Msg("leave failed")
				return
			}
			log.Info().Str("party_id", partyID).Bool("abandon", plan.abandon).Msg("party left")
		}(party.PartyID, plan)
	}
	wg.Wait()

	summary, err := c.floor(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("floor summary failed")
	}
	log.Info().Int("seats", summary.Seats).Int("occupied_seats", summary.OccupiedSeats).Int("queue_size", summary.QueueSize).Msg("simulation finished")
}

type visit struct {
	size    int
	stay    time.Duration
	abandon bool
}

// nextVisit draws a party size and how long the party stays. Abandoning
// parties give up after the minimum stay whether or not they were seated.
func nextVisit(rnd *rand.Rand, cfg config.SimConfig) visit {
	maxSize := cfg.MaxSize
	if maxSize < 1 {
		maxSize = 1
	}
	v := visit{size: 1 + rnd.Intn(maxSize)}
	minStay, maxStay := cfg.StayMinMS, cfg.StayMaxMS
	if maxStay < minStay {
		maxStay = minStay
	}
	if cfg.AbandonRate > 0 && rnd.Intn(100) < cfg.AbandonRate {
		v.abandon = true
		v.stay = time.Duration(minStay) * time.Millisecond
		return v
	}
	v.stay = time.Duration(minStay+rnd.Intn(maxStay-minStay+1)) * time.Millisecond
	return v
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
