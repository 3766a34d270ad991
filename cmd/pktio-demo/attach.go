package main

import (
	"fmt"
	"time"

	"github.com/openpktio/pktio/ethdev"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
	"github.com/urfave/cli/v2"
)

func init() {
	var (
		devargs string
		count   int
	)
	defineCommand(&cli.Command{
		Name:  "loopback",
		Usage: "Attach a device by devargs and loop packets through it.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "devargs",
				Usage:       "device `arguments`, e.g. net_ring0,queues=2",
				Value:       "net_ring0",
				Destination: &devargs,
			},
			&cli.IntFlag{
				Name:        "count",
				Usage:       "`number` of packets to send",
				Value:       64,
				Destination: &count,
			},
		},
		Action: func(c *cli.Context) error {
			port, e := ethdev.Attach(devargs)
			if e != nil {
				return e
			}
			defer port.Detach()
			if e := port.Configure(1, 1, ethdev.Config{}); e != nil {
				return e
			}
			if e := port.RxQueueSetup(0, 64, numa.Socket{}, ethdev.RxQueueConf{}, rxPool); e != nil {
				return e
			}
			if e := port.TxQueueSetup(0, 64, numa.Socket{}, ethdev.TxQueueConf{}); e != nil {
				return e
			}
			if e := port.Start(); e != nil {
				return e
			}
			defer func() {
				port.Stop()
				port.Close()
			}()

			txq, rxq := port.TxQueues()[0], port.RxQueues()[0]
			b := ethdev.NewTxBuffer(16)
			policy := &ethdev.CountPolicy{}
			b.SetErrorPolicy(policy)

			nReceived := 0
			deadline := time.Now().Add(time.Second)
			for sent := 0; sent < count; sent++ {
				pkt, e := rxPool.Alloc(1)
				if e != nil {
					return e
				}
				pkt[0].AppendBytes([]byte("pktio"))
				b.Append(txq, pkt[0])
				nReceived += drain(rxq)
			}
			b.Flush(txq)
			for nReceived < count-int(policy.Dropped()) && time.Now().Before(deadline) {
				nReceived += drain(rxq)
			}

			fmt.Printf("sent=%d received=%d dropped=%d\n", count, nReceived, policy.Dropped())
			return printStats(port)
		},
	})
}

func drain(rxq ethdev.RxQueue) int {
	vec := make(pktmbuf.Vector, 16)
	n := rxq.RxBurst(vec)
	vec[:n].Close()
	return n
}
