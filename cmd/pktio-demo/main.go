// Command pktio-demo exercises ports and packet pools from the command line.
package main

import (
	"log"
	"os"
	"sort"

	"github.com/openpktio/pktio/core/gqlserver"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
	"github.com/urfave/cli/v2"

	_ "github.com/openpktio/pktio/ethdev/ethringdev"
)

var rxPool *pktmbuf.Pool

var app = &cli.App{
	Version: gqlserver.Version,
	Usage:   "Packet I/O library demo.",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "gqlserver",
			Usage: "serve GraphQL introspection endpoint",
		},
		&cli.IntFlag{
			Name:  "socket",
			Usage: "NUMA `socket` for data structures",
			Value: -1,
		},
	},
	Before: func(c *cli.Context) error {
		if c.Bool("gqlserver") {
			gqlserver.Start()
		}
		socket := numa.Socket{}
		if id := c.Int("socket"); id >= 0 {
			socket = numa.FromID(id)
		}
		rxPool = pktmbuf.Direct.Get(socket)
		return nil
	},
}

func defineCommand(command *cli.Command) {
	app.Commands = append(app.Commands, command)
}

func main() {
	sort.Sort(cli.CommandsByName(app.Commands))
	if e := app.Run(os.Args); e != nil {
		log.Fatal(e)
	}
}
