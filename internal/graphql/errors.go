package graphql

// resolverError es un error de resolver con código de extensión GraphQL.
// El conjunto de códigos es cerrado: UNAUTHENTICATED, BAD_USER_INPUT,
// RATE_LIMITED e INTERNAL.
type resolverError struct {
	code    string
	message string
}

func (e resolverError) Error() string {
	return e.message
}

func (e resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

var (
	// Mismo mensaje para email desconocido y password errado: no se
	// revela cuál de los dos factores falló.
	errInvalidCredentials = resolverError{code: "UNAUTHENTICATED", message: "Invalid credentials"}
	errEmailTaken         = resolverError{code: "BAD_USER_INPUT", message: "Email already registered"}
	errInvalidEmail       = resolverError{code: "BAD_USER_INPUT", message: "Invalid email"}
	errRateLimited        = resolverError{code: "RATE_LIMITED", message: "Too many attempts"}
	errInternal           = resolverError{code: "INTERNAL", message: "Internal server error"}
)
