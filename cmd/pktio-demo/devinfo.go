package main

import (
	"encoding/json"
	"fmt"

	"github.com/openpktio/pktio/ethdev"
	"github.com/urfave/cli/v2"
)

func init() {
	defineCommand(&cli.Command{
		Name:  "devinfo",
		Usage: "Show device information of an attached devargs string.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "devargs",
				Value: "net_ring0",
			},
		},
		Action: func(c *cli.Context) error {
			port, e := ethdev.Attach(c.String("devargs"))
			if e != nil {
				return e
			}
			defer port.Detach()
			info, e := port.DevInfo()
			if e != nil {
				return e
			}
			addr, _ := port.MacAddr()
			j, _ := json.MarshalIndent(struct {
				ID      int            `json:"id"`
				Name    string         `json:"name"`
				MacAddr string         `json:"macAddr"`
				Info    ethdev.DevInfo `json:"devInfo"`
			}{port.ID(), port.Name(), addr.String(), info}, "", "  ")
			fmt.Println(string(j))
			return nil
		},
	})
}
