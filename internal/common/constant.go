package common

// AuthorizationHeader is the HTTP header carrying the bearer credential on
// authenticated requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix is the scheme prefix expected in AuthorizationHeader values.
const BearerPrefix = "Bearer "
