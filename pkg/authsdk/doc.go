// Package authsdk is a small Go client for the LIKESTEM authentication
// service. It covers the public credential endpoints (register, login, MFA
// verification, password reset) and the bearer-authenticated account
// endpoints, and doubles as the canonical home of the service's wire types.
package authsdk
