package graphql

import graphqlgo "github.com/graph-gophers/graphql-go"

// Schema define la superficie GraphQL del servicio.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		users: [User!]!
		user(id: ID!): User
		me: User
	}

	type Mutation {
		createUser(name: String!, email: String!, password: String!): User!
		login(email: String!, password: String!): AuthPayload!
	}

	type User {
		id: ID!
		name: String!
		email: String!
		createdAt: String!
	}

	type AuthPayload {
		token: String!
		user: User!
	}
`

// ParseSchema compila el esquema contra el resolver raíz.
func ParseSchema(resolver *Resolver) (*graphqlgo.Schema, error) {
	return graphqlgo.ParseSchema(Schema, resolver)
}
