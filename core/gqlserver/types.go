package gqlserver

import (
	"encoding/json"
	"fmt"
	"reflect"

	go2gql_scalars "github.com/EGT-Ukraine/go2gql/api/scalars"
	tools_scalars "github.com/bhoriuchi/graphql-go-tools/scalars"
	"github.com/graphql-go/graphql"
)

// Scalar types.
var (
	JSON   = tools_scalars.ScalarJSON
	Uint64 = go2gql_scalars.GraphQLUInt64Scalar

	NonNullJSON    = graphql.NewNonNull(JSON)
	NonNullUint64  = graphql.NewNonNull(Uint64)
	NonNullID      = graphql.NewNonNull(graphql.ID)
	NonNullBoolean = graphql.NewNonNull(graphql.Boolean)
	NonNullInt     = graphql.NewNonNull(graphql.Int)
	NonNullString  = graphql.NewNonNull(graphql.String)
)

// DecodeJSON decodes JSON argument into pointer.
func DecodeJSON(arg any, ptr any) error {
	j, e := json.Marshal(arg)
	if e != nil {
		return fmt.Errorf("json.Marshal %w", e)
	}
	return json.Unmarshal(j, ptr)
}

// Optional turns zero value to nil.
func Optional(value any) any {
	if reflect.ValueOf(value).IsZero() {
		return nil
	}
	return value
}
