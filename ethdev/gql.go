package ethdev

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/openpktio/pktio/core/gqlserver"
)

// GqlEthDevType is the GraphQL type of EthDev.
var GqlEthDevType *graphql.Object

func retrievePort(id any) (EthDev, error) {
	nid, e := strconv.Atoi(id.(string))
	if e != nil {
		return EthDev{}, e
	}
	port := FromID(nid)
	if !port.Valid() {
		return EthDev{}, ErrInvalidPort
	}
	return port, nil
}

func init() {
	GqlEthDevType = graphql.NewObject(graphql.ObjectConfig{
		Name: "EthDev",
		Fields: graphql.Fields{
			"nid": &graphql.Field{
				Type:        gqlserver.NonNullInt,
				Description: "Port identifier.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					return port.ID(), nil
				},
			},
			"name": &graphql.Field{
				Type:        gqlserver.NonNullString,
				Description: "Port name.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					return port.Name(), nil
				},
			},
			"state": &graphql.Field{
				Type:        gqlserver.NonNullString,
				Description: "Port state.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					return port.State().String(), nil
				},
			},
			"numaSocket": &graphql.Field{
				Type:        gqlserver.JSON,
				Description: "NUMA socket.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					return port.NumaSocket(), nil
				},
			},
			"devInfo": &graphql.Field{
				Type:        gqlserver.JSON,
				Description: "Device information.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					info, e := port.DevInfo()
					return info, e
				},
			},
			"macAddr": &graphql.Field{
				Type:        gqlserver.NonNullString,
				Description: "MAC address.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					addr, e := port.MacAddr()
					if e != nil {
						return nil, e
					}
					return addr.String(), nil
				},
			},
			"mtu": &graphql.Field{
				Type:        gqlserver.NonNullInt,
				Description: "Maximum Transmission Unit (MTU).",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					return port.MTU()
				},
			},
			"isDown": &graphql.Field{
				Type:        gqlserver.NonNullBoolean,
				Description: "Whether the port link is down.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					return port.IsDown(), nil
				},
			},
			"link": &graphql.Field{
				Type:        gqlserver.JSON,
				Description: "Link status.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					return port.LinkNowait()
				},
			},
			"stats": &graphql.Field{
				Type:        gqlserver.JSON,
				Description: "Port statistics.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					port := p.Source.(EthDev)
					return port.Stats(), nil
				},
			},
		},
	})

	gqlserver.AddQuery(&graphql.Field{
		Name:        "ethDevs",
		Description: "List of Ethernet devices.",
		Type:        graphql.NewList(graphql.NewNonNull(GqlEthDevType)),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return List(), nil
		},
	})

	gqlserver.AddMutation(&graphql.Field{
		Name:        "resetEthStats",
		Description: "Reset statistics of an Ethernet device.",
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{
				Type: gqlserver.NonNullID,
			},
		},
		Type: GqlEthDevType,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			port, e := retrievePort(p.Args["id"])
			if e != nil {
				return nil, e
			}
			port.ResetStats()
			return port, nil
		},
	})
}
