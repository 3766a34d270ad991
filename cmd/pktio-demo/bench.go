package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/openpktio/pktio/ethdev"
	"github.com/openpktio/pktio/ethdev/ethringdev"
	"github.com/openpktio/pktio/pktmbuf"
	"github.com/urfave/cli/v2"
)

func init() {
	var (
		nQueues  int
		pktLen   int
		duration time.Duration
	)
	defineCommand(&cli.Command{
		Name:  "bench",
		Usage: "Run traffic between a pair of ring-backed ports.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "queues",
				Usage:       "`number` of queues per port",
				Value:       1,
				Destination: &nQueues,
			},
			&cli.IntFlag{
				Name:        "pktlen",
				Usage:       "payload `length` of generated packets",
				Value:       64,
				Destination: &pktLen,
			},
			&cli.DurationFlag{
				Name:        "duration",
				Usage:       "how `long` to run",
				Value:       2 * time.Second,
				Destination: &duration,
			},
		},
		Action: func(c *cli.Context) error {
			pair, e := ethringdev.NewPair(ethringdev.PairConfig{
				NQueues: nQueues,
				RxPool:  rxPool,
			})
			if e != nil {
				return e
			}
			defer pair.Close()
			if e := pair.Launch(); e != nil {
				return e
			}

			payload := make([]byte, pktLen)
			rand.Read(payload)
			quit := make(chan struct{})
			for q := 0; q < nQueues; q++ {
				go transmitLoop(pair.PortB.TxQueues()[q], payload, quit)
				go receiveLoop(pair.PortA.RxQueues()[q], quit)
			}
			time.Sleep(duration)
			close(quit)
			time.Sleep(10 * time.Millisecond)

			return printStats(pair.PortA, pair.PortB)
		},
	})
}

func transmitLoop(txq ethdev.TxQueue, payload []byte, quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		default:
		}
		vec := rxPool.AllocBurst(8)
		for _, pkt := range vec {
			pkt.AppendBytes(payload)
		}
		sent := txq.TxBurst(vec)
		vec[sent:].Close()
	}
}

func receiveLoop(rxq ethdev.RxQueue, quit <-chan struct{}) {
	vec := make(pktmbuf.Vector, 16)
	for {
		select {
		case <-quit:
			return
		default:
		}
		n := rxq.RxBurst(vec)
		vec[:n].Close()
	}
}

func printStats(ports ...ethdev.EthDev) error {
	for _, port := range ports {
		link, _ := port.LinkNowait()
		j, e := json.Marshal(struct {
			Port  string           `json:"port"`
			Link  ethdev.LinkState `json:"link"`
			Stats ethdev.Stats     `json:"stats"`
		}{
			Port:  port.Name(),
			Link:  link,
			Stats: port.Stats(),
		})
		if e != nil {
			return e
		}
		fmt.Println(string(j))
	}
	return nil
}
