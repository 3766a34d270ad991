// Package gqlserver provides a GraphQL server.
// It is a singleton and is populated via init() functions.
package gqlserver

import (
	"net/http"
	"os"

	"github.com/bhoriuchi/graphql-go-tools/handler"
	"github.com/graphql-go/graphql"
	"github.com/openpktio/pktio/core/logging"
	"go.uber.org/zap"
)

var logger = logging.New("gqlserver")

// Schema is the singleton of graphql.SchemaConfig.
var Schema = graphql.SchemaConfig{
	Query: graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: graphql.Fields{},
	}),
	Mutation: graphql.NewObject(graphql.ObjectConfig{
		Name:   "Mutation",
		Fields: graphql.Fields{},
	}),
}

// Version is the library version reported by the version query.
const Version = "0.1.0"

func init() {
	AddQuery(&graphql.Field{
		Name: "version",
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return Version, nil
		},
	})
}

// AddQuery adds a top-level query field.
func AddQuery(f *graphql.Field) {
	Schema.Query.AddFieldConfig(f.Name, f)
}

// AddMutation adds a top-level mutation field.
func AddMutation(f *graphql.Field) {
	Schema.Mutation.AddFieldConfig(f.Name, f)
}

// Prepare compiles the schema.
func Prepare() (graphql.Schema, error) {
	return graphql.NewSchema(Schema)
}

// Start starts the server.
func Start() {
	sch, e := Prepare()
	if e != nil {
		logger.Panic("graphql.NewSchema", zap.Error(e))
	}

	go startHTTP(&sch)
}

func startHTTP(sch *graphql.Schema) {
	addr := os.Getenv("PKTIO_GQLSERVER")
	switch addr {
	case "0":
		logger.Warn("GraphQL HTTP server disabled")
		return
	case "":
		addr = "127.0.0.1:3030"
	}

	h := handler.New(&handler.Config{
		Schema:           sch,
		Pretty:           true,
		PlaygroundConfig: handler.NewDefaultPlaygroundConfig(),
	})
	logger.Info("GraphQL HTTP server starting", zap.String("addr", addr))

	var mux http.ServeMux
	mux.Handle("/", h)
	http.ListenAndServe(addr, &mux)
}
